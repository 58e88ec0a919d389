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
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/routelab/netbridge/pkg/logger"
	"github.com/routelab/netbridge/pkg/netbox"
	"github.com/routelab/netbridge/pkg/provision"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var errNetBoxNotConfigured = errors.New("NetBox URL and token are required (set --netbox-url/--netbox-token or NETBOX_URL/NETBOX_TOKEN)")

var rootCmd = &cobra.Command{
	Use:   "netbridge",
	Short: "Provision devices and addresses in NetBox",
	Long: `Netbridge drives a NetBox instance from the command line: create
devices with an automatically allocated primary address, assign the next
free address from a prefix to an interface, and seed a Diode ingestion
endpoint with demo entities.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("netbox-url", "", "NetBox base URL (e.g. https://netbox.example.com)")
	rootCmd.PersistentFlags().String("netbox-token", "", "NetBox API token")
	rootCmd.PersistentFlags().Bool("insecure", false, "skip TLS certificate verification")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (trace, debug, info, warn, error)")

	// These should never fail as flags are defined above
	_ = viper.BindPFlag("netbox.url", rootCmd.PersistentFlags().Lookup("netbox-url"))     //nolint:errcheck
	_ = viper.BindPFlag("netbox.token", rootCmd.PersistentFlags().Lookup("netbox-token")) //nolint:errcheck
	_ = viper.BindPFlag("netbox.insecure", rootCmd.PersistentFlags().Lookup("insecure"))  //nolint:errcheck
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))       //nolint:errcheck

	_ = viper.BindEnv("netbox.url", "NETBOX_URL")                   //nolint:errcheck
	_ = viper.BindEnv("netbox.token", "NETBOX_TOKEN")               //nolint:errcheck
	_ = viper.BindEnv("diode.target", "DIODE_TARGET")               //nolint:errcheck
	_ = viper.BindEnv("diode.client_id", "DIODE_CLIENT_ID")         //nolint:errcheck
	_ = viper.BindEnv("diode.client_secret", "DIODE_CLIENT_SECRET") //nolint:errcheck

	rootCmd.AddCommand(deviceCmd)
	rootCmd.AddCommand(ipCmd)
	rootCmd.AddCommand(demoCmd)
}

func newLogger() (logger.Logger, error) {
	cfg := logger.DefaultConfig()
	cfg.Level = viper.GetString("log.level")

	return logger.New(cfg)
}

func newNetBoxClient(log logger.Logger) (*netbox.Client, error) {
	url := viper.GetString("netbox.url")
	token := viper.GetString("netbox.token")

	if url == "" || token == "" {
		return nil, errNetBoxNotConfigured
	}

	return netbox.NewClient(&netbox.Config{
		Endpoint:           url,
		Token:              token,
		InsecureSkipVerify: viper.GetBool("netbox.insecure"),
	}, log), nil
}

// printMessages renders a run's output the way the platform's script
// runner displays it.
func printMessages(messages []provision.Message) {
	for _, m := range messages {
		fmt.Printf("[%s] %s\n", m.Level, m.Text)
	}
}
