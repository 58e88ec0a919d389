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
	"strings"

	"github.com/routelab/netbridge/pkg/netbox"
)

// DeviceRequest describes a device-and-address provisioning run.
type DeviceRequest struct {
	Name       string
	Site       string
	Role       string
	DeviceType string
	Status     string
	Prefix     string
	Interface  string // template interface name, optional
	IPStatus   string
}

// DeviceProvisioner creates a device, allocates the next available address
// from a prefix, and assigns it to an interface on the new device.
type DeviceProvisioner struct {
	api API
	rec *Recorder
}

func NewDeviceProvisioner(api API, rec *Recorder) *DeviceProvisioner {
	return &DeviceProvisioner{api: api, rec: rec}
}

// Run executes the provisioning flow. Creation side effects are visible as
// soon as each step executes; a failure after device creation leaves the
// device in place without an address.
func (p *DeviceProvisioner) Run(ctx context.Context, req *DeviceRequest) (string, error) {
	device, err := p.createDevice(ctx, req)
	if err != nil {
		return "", err
	}

	prefix, err := p.api.FindPrefix(ctx, req.Prefix, "")
	if err != nil {
		p.rec.Failure("Prefix %s not found", req.Prefix)
		return "", err
	}

	available, err := p.api.NextAvailableIP(ctx, prefix.ID)
	if err != nil {
		if errors.Is(err, netbox.ErrPoolExhausted) {
			p.rec.Failure("No available IP addresses in prefix %s", prefix.Prefix)
			return "", nil
		}

		return "", err
	}

	p.rec.Info("Next available IP in %s: %s", prefix.Prefix, available)

	target := p.resolveInterface(ctx, device, req.Interface)

	ip, err := p.createIP(ctx, available, req.IPStatus, target)
	if err != nil {
		return "", err
	}

	if target != nil {
		p.rec.Success("Created IP %s and assigned to interface %s on device %s",
			ip.Address, target.Name, device.Name)

		if err := p.promoteToPrimary(ctx, device, ip); err != nil {
			return "", err
		}
	} else {
		p.rec.Success("Created IP %s (no interface assignment)", ip.Address)
	}

	return fmt.Sprintf("Device '%s' created with IP %s", device.Name, ip.Address), nil
}

func (p *DeviceProvisioner) createDevice(ctx context.Context, req *DeviceRequest) (*netbox.Device, error) {
	site, err := p.api.FindSite(ctx, req.Site)
	if err != nil {
		p.rec.Failure("Site %s not found", req.Site)
		return nil, err
	}

	role, err := p.api.FindDeviceRole(ctx, req.Role)
	if err != nil {
		p.rec.Failure("Device role %s not found", req.Role)
		return nil, err
	}

	deviceType, err := p.api.FindDeviceType(ctx, req.DeviceType)
	if err != nil {
		p.rec.Failure("Device type %s not found", req.DeviceType)
		return nil, err
	}

	device, err := p.api.CreateDevice(ctx, &netbox.DeviceCreate{
		Name:       req.Name,
		Site:       site.ID,
		Role:       role.ID,
		DeviceType: deviceType.ID,
		Status:     req.Status,
	})
	if err != nil {
		// Validation failures end the run with the platform's error.
		p.rec.Failure("Failed to create device %s: %v", req.Name, err)
		return nil, err
	}

	p.rec.Success("Created device %s", device.Name)

	return device, nil
}

// resolveInterface finds the interface the address should be bound to.
// NetBox creates interfaces on the new device from the device type's
// templates, so a name match should exist; the fallback covers re-runs
// where the selected interface already belongs to the device.
func (p *DeviceProvisioner) resolveInterface(ctx context.Context, device *netbox.Device, name string) *netbox.Interface {
	if name == "" {
		return nil
	}

	target, err := p.api.GetInterface(ctx, device.ID, name)
	if err == nil {
		return target
	}

	selected, selErr := p.api.FindInterfaceByName(ctx, name)
	if selErr == nil && selected.Device.ID == device.ID {
		return selected
	}

	p.rec.Warning("Interface %s was not found on device %s. The IP will be created without an interface assignment.",
		name, device.Name)

	return nil
}

func (p *DeviceProvisioner) createIP(ctx context.Context, address, status string, target *netbox.Interface) (*netbox.IPAddress, error) {
	create := &netbox.IPAddressCreate{
		Address: address,
		Status:  status,
	}

	if target != nil {
		create.AssignedObjectType = "dcim.interface"
		create.AssignedObjectID = &target.ID
	}

	ip, err := p.api.CreateIPAddress(ctx, create)
	if err != nil {
		p.rec.Failure("Failed to create IP %s: %v", address, err)
		return nil, err
	}

	return ip, nil
}

func (p *DeviceProvisioner) promoteToPrimary(ctx context.Context, device *netbox.Device, ip *netbox.IPAddress) error {
	family := 4
	if strings.Contains(ip.Address, ":") {
		family = 6
	}

	if err := p.api.SetPrimaryIP(ctx, device.ID, ip.ID, family); err != nil {
		p.rec.Failure("Failed to set primary IP on device %s: %v", device.Name, err)
		return err
	}

	p.rec.Info("Set %s as the primary IPv%d address for device %s", ip.Address, family, device.Name)

	return nil
}
