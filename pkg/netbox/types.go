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

// Ref is a nested reference as NetBox embeds related objects.
type Ref struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}

// Status is NetBox's value/label pair for status fields.
type Status struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Device represents a NetBox device as returned by the API.
type Device struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	DeviceType struct {
		ID           int    `json:"id"`
		Model        string `json:"model"`
		Manufacturer Ref    `json:"manufacturer"`
	} `json:"device_type"`
	Role       Ref     `json:"role"`
	Site       Ref     `json:"site"`
	Tenant     *Ref    `json:"tenant"`
	Status     Status  `json:"status"`
	PrimaryIP4 *IPRef  `json:"primary_ip4"`
	PrimaryIP6 *IPRef  `json:"primary_ip6"`
	Serial     string  `json:"serial"`
	Platform   *Ref    `json:"platform"`
	Comments   string  `json:"comments,omitempty"`
}

// IPRef is the embedded form of an IP address on a device.
type IPRef struct {
	ID      int    `json:"id"`
	Address string `json:"address"`
}

// Interface represents a device interface.
type Interface struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Device  Ref    `json:"device"`
	Enabled bool   `json:"enabled"`
	Type    struct {
		Value string `json:"value"`
		Label string `json:"label"`
	} `json:"type"`
}

// Prefix represents an address pool from which addresses are allocated.
type Prefix struct {
	ID     int    `json:"id"`
	Prefix string `json:"prefix"`
	Status Status `json:"status"`
	VRF    *Ref   `json:"vrf"`
	Tenant *Ref   `json:"tenant"`
}

// IPAddress represents a NetBox IP address.
type IPAddress struct {
	ID      int    `json:"id"`
	Address string `json:"address"`
	Status  Status `json:"status"`
	Family  struct {
		Value int    `json:"value"`
		Label string `json:"label"`
	} `json:"family"`
	Description string `json:"description,omitempty"`
}

// AvailableIP is one entry of a prefix's available-ips listing.
type AvailableIP struct {
	Family  int    `json:"family"`
	Address string `json:"address"`
	VRF     *Ref   `json:"vrf"`
}

// DeviceType represents a hardware model.
type DeviceType struct {
	ID           int    `json:"id"`
	Model        string `json:"model"`
	Slug         string `json:"slug"`
	Manufacturer Ref    `json:"manufacturer"`
}

// DeviceCreate is the request body for creating a device.
type DeviceCreate struct {
	Name       string `json:"name"`
	Site       int    `json:"site"`
	Role       int    `json:"role"`
	DeviceType int    `json:"device_type"`
	Status     string `json:"status,omitempty"`
}

// IPAddressCreate is the request body for creating an IP address.
type IPAddressCreate struct {
	Address            string `json:"address"`
	Status             string `json:"status,omitempty"`
	VRF                *int   `json:"vrf,omitempty"`
	Tenant             *int   `json:"tenant,omitempty"`
	AssignedObjectType string `json:"assigned_object_type,omitempty"`
	AssignedObjectID   *int   `json:"assigned_object_id,omitempty"`
	Description        string `json:"description,omitempty"`
}

type deviceList struct {
	Count    int      `json:"count"`
	Next     string   `json:"next"`
	Previous string   `json:"previous"`
	Results  []Device `json:"results"`
}

type interfaceList struct {
	Count   int         `json:"count"`
	Results []Interface `json:"results"`
}

type prefixList struct {
	Count   int      `json:"count"`
	Results []Prefix `json:"results"`
}

type ipAddressList struct {
	Count   int         `json:"count"`
	Results []IPAddress `json:"results"`
}

type refList struct {
	Count   int   `json:"count"`
	Results []Ref `json:"results"`
}

type deviceTypeList struct {
	Count   int          `json:"count"`
	Results []DeviceType `json:"results"`
}
