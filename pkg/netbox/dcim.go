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

package netbox

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// CreateDevice creates a device record. NetBox materializes interfaces from
// the device type's component templates as part of the save.
func (c *Client) CreateDevice(ctx context.Context, req *DeviceCreate) (*Device, error) {
	var device Device

	if err := c.post(ctx, "/api/dcim/devices/", req, &device); err != nil {
		return nil, fmt.Errorf("create device %q: %w", req.Name, err)
	}

	return &device, nil
}

// FindDevice looks up a device by exact name. An empty status matches any
// status.
func (c *Client) FindDevice(ctx context.Context, name, status string) (*Device, error) {
	query := url.Values{"name": {name}}
	if status != "" {
		query.Set("status", status)
	}

	var list deviceList
	if err := c.get(ctx, "/api/dcim/devices/", query, &list); err != nil {
		return nil, err
	}

	if len(list.Results) == 0 {
		return nil, fmt.Errorf("device %q: %w", name, ErrNotFound)
	}

	return &list.Results[0], nil
}

// SetPrimaryIP promotes an address to the device's primary for the given
// family (4 or 6), overwriting any prior primary of that family.
func (c *Client) SetPrimaryIP(ctx context.Context, deviceID, ipID, family int) error {
	field := "primary_ip4"
	if family == 6 {
		field = "primary_ip6"
	}

	body := map[string]int{field: ipID}

	path := fmt.Sprintf("/api/dcim/devices/%d/", deviceID)
	if err := c.patch(ctx, path, body, nil); err != nil {
		return fmt.Errorf("set %s on device %d: %w", field, deviceID, err)
	}

	return nil
}

// GetInterface finds an interface by exact (device, name) match.
func (c *Client) GetInterface(ctx context.Context, deviceID int, name string) (*Interface, error) {
	query := url.Values{
		"device_id": {strconv.Itoa(deviceID)},
		"name":      {name},
	}

	var list interfaceList
	if err := c.get(ctx, "/api/dcim/interfaces/", query, &list); err != nil {
		return nil, err
	}

	if len(list.Results) == 0 {
		return nil, fmt.Errorf("interface %q on device %d: %w", name, deviceID, ErrNotFound)
	}

	return &list.Results[0], nil
}

// FindInterfaceByName finds the first interface with the given name on any
// device. Used as a fallback when a template interface was selected before
// its device existed.
func (c *Client) FindInterfaceByName(ctx context.Context, name string) (*Interface, error) {
	var list interfaceList
	if err := c.get(ctx, "/api/dcim/interfaces/", url.Values{"name": {name}}, &list); err != nil {
		return nil, err
	}

	if len(list.Results) == 0 {
		return nil, fmt.Errorf("interface %q: %w", name, ErrNotFound)
	}

	return &list.Results[0], nil
}

// ListInterfaces returns a device's interfaces, optionally only enabled
// ones.
func (c *Client) ListInterfaces(ctx context.Context, deviceID int, enabledOnly bool) ([]Interface, error) {
	query := url.Values{"device_id": {strconv.Itoa(deviceID)}}
	if enabledOnly {
		query.Set("enabled", "true")
	}

	var list interfaceList
	if err := c.get(ctx, "/api/dcim/interfaces/", query, &list); err != nil {
		return nil, err
	}

	return list.Results, nil
}

// FindSite resolves a site by name, falling back to a slug match.
func (c *Client) FindSite(ctx context.Context, name string) (*Ref, error) {
	return c.findRef(ctx, "/api/dcim/sites/", "site", name)
}

// FindDeviceRole resolves a device role by name, falling back to a slug
// match.
func (c *Client) FindDeviceRole(ctx context.Context, name string) (*Ref, error) {
	return c.findRef(ctx, "/api/dcim/device-roles/", "device role", name)
}

// FindDeviceType resolves a hardware model by its model name.
func (c *Client) FindDeviceType(ctx context.Context, model string) (*DeviceType, error) {
	var list deviceTypeList
	if err := c.get(ctx, "/api/dcim/device-types/", url.Values{"model": {model}}, &list); err != nil {
		return nil, err
	}

	if len(list.Results) == 0 {
		return nil, fmt.Errorf("device type %q: %w", model, ErrNotFound)
	}

	return &list.Results[0], nil
}

func (c *Client) findRef(ctx context.Context, path, kind, name string) (*Ref, error) {
	var list refList
	if err := c.get(ctx, path, url.Values{"name": {name}}, &list); err != nil {
		return nil, err
	}

	if len(list.Results) == 0 {
		if err := c.get(ctx, path, url.Values{"slug": {name}}, &list); err != nil {
			return nil, err
		}
	}

	if len(list.Results) == 0 {
		return nil, fmt.Errorf("%s %q: %w", kind, name, ErrNotFound)
	}

	return &list.Results[0], nil
}
