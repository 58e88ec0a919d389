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

	"github.com/routelab/netbridge/pkg/provision"
)

var errProvisioningFailed = errors.New("provisioning failed")

var deviceCmd = &cobra.Command{
	Use:   "device",
	Short: "Manage NetBox devices",
}

var deviceCreateReq provision.DeviceRequest

var deviceCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a device with an auto-allocated primary address",
	Long: `Create a device in NetBox, allocate the next available address from
the given prefix, assign it to an interface on the new device, and promote
it to the device's primary address.

Examples:
  # Create a switch and give it an address from the management prefix
  netbridge device create --name sw5 --site "Default Site" --role switch \
    --type C9KV-UADP-8P --prefix 192.0.2.0/24 --interface GigabitEthernet1/0/1`,
	RunE: runDeviceCreate,
}

func init() {
	flags := deviceCreateCmd.Flags()
	flags.StringVar(&deviceCreateReq.Name, "name", "", "device name")
	flags.StringVar(&deviceCreateReq.Site, "site", "", "site name or slug")
	flags.StringVar(&deviceCreateReq.Role, "role", "", "device role name or slug")
	flags.StringVar(&deviceCreateReq.DeviceType, "type", "", "device type model")
	flags.StringVar(&deviceCreateReq.Status, "status", "active", "device status")
	flags.StringVar(&deviceCreateReq.Prefix, "prefix", "", "prefix to allocate the address from (CIDR)")
	flags.StringVar(&deviceCreateReq.Interface, "interface", "", "interface to assign the address to (optional; the address is created unassigned when omitted)")
	flags.StringVar(&deviceCreateReq.IPStatus, "ip-status", "active", "status of the created address")

	for _, name := range []string{"name", "site", "role", "type", "prefix"} {
		_ = deviceCreateCmd.MarkFlagRequired(name) //nolint:errcheck
	}

	deviceCmd.AddCommand(deviceCreateCmd)
}

func runDeviceCreate(cmd *cobra.Command, _ []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}

	client, err := newNetBoxClient(log)
	if err != nil {
		return err
	}

	rec := provision.NewRecorder(log)
	runner := provision.NewDeviceProvisioner(client, rec)

	result, err := runner.Run(cmd.Context(), &deviceCreateReq)

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
