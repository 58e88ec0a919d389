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

	"github.com/routelab/netbridge/pkg/provision"
)

var ipCmd = &cobra.Command{
	Use:   "ip",
	Short: "Manage NetBox IP addresses",
}

var ipAssignReq provision.AssignRequest

var ipAssignCmd = &cobra.Command{
	Use:   "assign",
	Short: "Assign the next free address from a prefix to an interface",
	Long: `Allocate the next available address from a prefix and assign it to
an interface on an existing active device. Without --commit the run is a
dry run: the address is computed and reported but nothing is persisted.

Examples:
  # Preview the assignment
  netbridge ip assign --device sw1 --prefix 192.0.2.0/24 --interface Gi1/0/1

  # Apply it
  netbridge ip assign --device sw1 --prefix 192.0.2.0/24 --interface Gi1/0/1 --commit`,
	RunE: runIPAssign,
}

func init() {
	flags := ipAssignCmd.Flags()
	flags.StringVar(&ipAssignReq.Device, "device", "", "device name")
	flags.StringVar(&ipAssignReq.Prefix, "prefix", "", "prefix to allocate from (CIDR)")
	flags.StringVar(&ipAssignReq.Interface, "interface", "", "interface name")
	flags.BoolVar(&ipAssignReq.Commit, "commit", false, "persist the assignment (default is a dry run)")

	for _, name := range []string{"device", "prefix", "interface"} {
		_ = ipAssignCmd.MarkFlagRequired(name) //nolint:errcheck
	}

	ipCmd.AddCommand(ipAssignCmd)
}

func runIPAssign(cmd *cobra.Command, _ []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}

	client, err := newNetBoxClient(log)
	if err != nil {
		return err
	}

	rec := provision.NewRecorder(log)
	runner := provision.NewInterfaceAssigner(client, rec)

	result, err := runner.Run(cmd.Context(), &ipAssignReq)

	printMessages(rec.Messages())

	if err != nil {
		return err
	}

	if rec.Failed() {
		return errProvisioningFailed
	}

	if result != "" {
		fmt.Println(result)
	}

	return nil
}
