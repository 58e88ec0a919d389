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

package provision

import (
	"context"
	"errors"
	"fmt"

	"github.com/routelab/netbridge/pkg/netbox"
)

const statusActive = "active"

// AssignRequest describes an interactive address-assignment run against an
// existing device.
type AssignRequest struct {
	Device    string
	Prefix    string
	Interface string
	Commit    bool
}

// InterfaceAssigner assigns the next available address from a prefix to a
// named interface on an existing active device.
type InterfaceAssigner struct {
	api API
	rec *Recorder
}

func NewInterfaceAssigner(api API, rec *Recorder) *InterfaceAssigner {
	return &InterfaceAssigner{api: api, rec: rec}
}

// Run executes the assignment flow. With Commit false the address is built
// and reported but never persisted.
func (a *InterfaceAssigner) Run(ctx context.Context, req *AssignRequest) (string, error) {
	device, err := a.api.FindDevice(ctx, req.Device, statusActive)
	if err != nil {
		a.rec.Failure("Device %s not found or not active", req.Device)
		return "", err
	}

	prefix, err := a.api.FindPrefix(ctx, req.Prefix, statusActive)
	if err != nil {
		a.rec.Failure("Prefix %s not found or not active", req.Prefix)
		return "", err
	}

	iface, err := a.api.GetInterface(ctx, device.ID, req.Interface)
	if err != nil {
		if errors.Is(err, netbox.ErrNotFound) {
			a.rec.Failure("Interface '%s' not found on device %s", req.Interface, device.Name)
			a.listEnabledInterfaces(ctx, device)

			return "", nil
		}

		return "", err
	}

	if !iface.Enabled {
		a.rec.Warning("Interface %s is disabled", iface.Name)
	}

	a.warnExistingIPs(ctx, iface)

	available, err := a.api.NextAvailableIP(ctx, prefix.ID)
	if err != nil {
		if errors.Is(err, netbox.ErrPoolExhausted) {
			a.rec.Failure("No available IPs in prefix %s", prefix.Prefix)
			return "", nil
		}

		return "", err
	}

	create := a.buildIP(available, device, prefix, iface)

	if !req.Commit {
		a.rec.Info("[DRY RUN] Would assign %s to %s - %s", create.Address, device.Name, iface.Name)
		return fmt.Sprintf("IP %s assigned to interface %s", create.Address, iface.Name), nil
	}

	ip, err := a.api.CreateIPAddress(ctx, create)
	if err != nil {
		a.rec.Failure("Failed to assign %s: %v", create.Address, err)
		return "", err
	}

	a.rec.Success("Successfully assigned %s to %s - %s", ip.Address, device.Name, iface.Name)

	return fmt.Sprintf("IP %s assigned to interface %s", ip.Address, iface.Name), nil
}

func (a *InterfaceAssigner) listEnabledInterfaces(ctx context.Context, device *netbox.Device) {
	interfaces, err := a.api.ListInterfaces(ctx, device.ID, true)
	if err != nil {
		return
	}

	a.rec.Info("Available interfaces on %s:", device.Name)

	for i := range interfaces {
		a.rec.Info("  - %s (%s)", interfaces[i].Name, interfaces[i].Type.Value)
	}
}

func (a *InterfaceAssigner) warnExistingIPs(ctx context.Context, iface *netbox.Interface) {
	existing, err := a.api.ListIPAddresses(ctx, iface.ID)
	if err != nil || len(existing) == 0 {
		return
	}

	a.rec.Warning("Interface already has IP addresses:")

	for i := range existing {
		a.rec.Warning("  - %s", existing[i].Address)
	}
}

// buildIP inherits the routing domain from the prefix and the tenant from
// the device.
func (*InterfaceAssigner) buildIP(address string, device *netbox.Device, prefix *netbox.Prefix, iface *netbox.Interface) *netbox.IPAddressCreate {
	create := &netbox.IPAddressCreate{
		Address:            address,
		Status:             statusActive,
		AssignedObjectType: "dcim.interface",
		AssignedObjectID:   &iface.ID,
		Description:        fmt.Sprintf("Auto-assigned to %s - %s", device.Name, iface.Name),
	}

	if prefix.VRF != nil {
		create.VRF = &prefix.VRF.ID
	}

	if device.Tenant != nil {
		create.Tenant = &device.Tenant.ID
	}

	return create
}
