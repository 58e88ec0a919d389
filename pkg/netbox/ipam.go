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

// FindPrefix looks up a prefix by its CIDR. An empty status matches any
// status.
func (c *Client) FindPrefix(ctx context.Context, cidr, status string) (*Prefix, error) {
	query := url.Values{"prefix": {cidr}}
	if status != "" {
		query.Set("status", status)
	}

	var list prefixList
	if err := c.get(ctx, "/api/ipam/prefixes/", query, &list); err != nil {
		return nil, err
	}

	if len(list.Results) == 0 {
		return nil, fmt.Errorf("prefix %q: %w", cidr, ErrNotFound)
	}

	return &list.Results[0], nil
}

// NextAvailableIP returns the first available address in the prefix,
// including its mask length. The allocation bookkeeping is NetBox's; this
// call does not reserve the address.
func (c *Client) NextAvailableIP(ctx context.Context, prefixID int) (string, error) {
	path := fmt.Sprintf("/api/ipam/prefixes/%d/available-ips/", prefixID)

	var available []AvailableIP
	if err := c.get(ctx, path, url.Values{"limit": {"1"}}, &available); err != nil {
		return "", err
	}

	if len(available) == 0 {
		return "", fmt.Errorf("prefix %d: %w", prefixID, ErrPoolExhausted)
	}

	return available[0].Address, nil
}

// CreateIPAddress creates an IP address record, optionally bound to an
// interface.
func (c *Client) CreateIPAddress(ctx context.Context, req *IPAddressCreate) (*IPAddress, error) {
	var ip IPAddress

	if err := c.post(ctx, "/api/ipam/ip-addresses/", req, &ip); err != nil {
		return nil, fmt.Errorf("create ip %q: %w", req.Address, err)
	}

	return &ip, nil
}

// ListIPAddresses returns the addresses already assigned to an interface.
func (c *Client) ListIPAddresses(ctx context.Context, interfaceID int) ([]IPAddress, error) {
	query := url.Values{"interface_id": {strconv.Itoa(interfaceID)}}

	var list ipAddressList
	if err := c.get(ctx, "/api/ipam/ip-addresses/", query, &list); err != nil {
		return nil, err
	}

	return list.Results, nil
}
