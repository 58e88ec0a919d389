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

// Package netbox is a thin client for the NetBox REST API, covering the
// handful of DCIM and IPAM operations the provisioning helpers need. The
// data model and allocation bookkeeping live entirely in NetBox; this
// client only reads and writes records through the API.
package netbox

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/routelab/netbridge/pkg/logger"
)

var (
	errUnexpectedStatusCode = errors.New("unexpected status code")

	// ErrNotFound indicates a lookup matched no records.
	ErrNotFound = errors.New("not found")

	// ErrPoolExhausted indicates a prefix has no available addresses left.
	ErrPoolExhausted = errors.New("no available addresses in prefix")
)

const defaultTimeout = 30 * time.Second

// Config holds NetBox connection settings.
type Config struct {
	Endpoint           string        `json:"endpoint"`
	Token              string        `json:"token"`
	InsecureSkipVerify bool          `json:"insecure_skip_verify"`
	Timeout            time.Duration `json:"timeout"`
}

// Client talks to a single NetBox instance.
type Client struct {
	endpoint string
	token    string
	http     *http.Client
	logger   logger.Logger
}

// NewClient creates a NetBox API client.
func NewClient(cfg *Config, log logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	//nolint:gosec // InsecureSkipVerify is an explicit operator opt-in for lab instances
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: cfg.InsecureSkipVerify,
		},
	}

	return &Client{
		endpoint: strings.TrimSuffix(cfg.Endpoint, "/"),
		token:    cfg.Token,
		http: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		logger: log,
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	u := c.endpoint + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return err
	}

	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	return c.write(ctx, http.MethodPost, path, body, out)
}

func (c *Client) patch(ctx context.Context, path string, body, out interface{}) error {
	return c.write(ctx, http.MethodPatch, path, body, out)
}

func (c *Client) write(ctx context.Context, method, path string, body, out interface{}) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, bytes.NewReader(encoded))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	req.Header.Set("Authorization", "Token "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer c.closeResponse(resp)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		// NetBox returns validation details in the body; surface them.
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

		return fmt.Errorf("%w: %d: %s", errUnexpectedStatusCode, resp.StatusCode,
			strings.TrimSpace(string(detail)))
	}

	if out == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) closeResponse(resp *http.Response) {
	if err := resp.Body.Close(); err != nil && c.logger != nil {
		c.logger.Warn().Err(err).Msg("Failed to close response body")
	}
}
