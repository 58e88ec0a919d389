/*
 * Copyright 2025 Routelab.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/routelab/netbridge/pkg/ingest/diode"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Demo and smoke-test helpers",
}

var demoSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Push a demo interface entity to a Diode ingestion endpoint",
	Long: `Submit a known-good demo payload (one enabled switch interface on a
lab device) to verify a Diode ingestion endpoint end to end.

Credentials are taken from DIODE_CLIENT_ID and DIODE_CLIENT_SECRET.`,
	RunE: runDemoSeed,
}

func init() {
	demoSeedCmd.Flags().String("target", "grpc://localhost:8080/diode", "Diode ingestion endpoint")
	_ = viper.BindPFlag("diode.target", demoSeedCmd.Flags().Lookup("target")) //nolint:errcheck

	demoCmd.AddCommand(demoSeedCmd)
}

func runDemoSeed(cmd *cobra.Command, _ []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}

	client, err := diode.NewClient(&diode.ClientConfig{
		Target:       viper.GetString("diode.target"),
		AppName:      "netbridge/demo-seed",
		AppVersion:   Version,
		ClientID:     viper.GetString("diode.client_id"),
		ClientSecret: viper.GetString("diode.client_secret"),
	}, log)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }() //nolint:errcheck

	entities := diode.SeedEntities()

	result, err := client.Ingest(cmd.Context(), entities)
	if err != nil {
		return fmt.Errorf("ingest demo entities: %w", err)
	}

	if len(result.Errors) > 0 {
		for _, msg := range result.Errors {
			log.Error().Str("detail", msg).Msg("Ingestion error")
		}

		return fmt.Errorf("ingestion rejected with %d errors", len(result.Errors))
	}

	fmt.Printf("Seeded %d entities to %s\n", len(entities), viper.GetString("diode.target"))

	return nil
}
