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

	"github.com/routelab/netbridge/pkg/netbox"
)

//go:generate mockgen -destination=mock_provision.go -package=provision github.com/routelab/netbridge/pkg/provision API

// API is the slice of the NetBox client the provisioning runs use. It is a
// local interface so runs can be tested without a NetBox instance.
type API interface {
	CreateDevice(ctx context.Context, req *netbox.DeviceCreate) (*netbox.Device, error)
	FindDevice(ctx context.Context, name, status string) (*netbox.Device, error)
	FindSite(ctx context.Context, name string) (*netbox.Ref, error)
	FindDeviceRole(ctx context.Context, name string) (*netbox.Ref, error)
	FindDeviceType(ctx context.Context, model string) (*netbox.DeviceType, error)
	GetInterface(ctx context.Context, deviceID int, name string) (*netbox.Interface, error)
	FindInterfaceByName(ctx context.Context, name string) (*netbox.Interface, error)
	ListInterfaces(ctx context.Context, deviceID int, enabledOnly bool) ([]netbox.Interface, error)
	FindPrefix(ctx context.Context, cidr, status string) (*netbox.Prefix, error)
	NextAvailableIP(ctx context.Context, prefixID int) (string, error)
	CreateIPAddress(ctx context.Context, req *netbox.IPAddressCreate) (*netbox.IPAddress, error)
	ListIPAddresses(ctx context.Context, interfaceID int) ([]netbox.IPAddress, error)
	SetPrimaryIP(ctx context.Context, deviceID, ipID, family int) error
}
