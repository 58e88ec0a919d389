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

// Package diode wraps the Diode ingestion SDK behind a local interface so
// the pipeline and its tests depend on one narrow boundary.
package diode

import (
	"context"
	"fmt"

	dsdk "github.com/netboxlabs/diode-sdk-go/diode"

	"github.com/routelab/netbridge/pkg/logger"
)

//go:generate mockgen -destination=mock_client.go -package=diode github.com/routelab/netbridge/pkg/ingest/diode Client

// Result is the outcome of one batch submission. A non-empty Errors list
// is a partial failure.
type Result struct {
	Errors []string
}

// Client is the boundary to the ingestion endpoint.
type Client interface {
	Ingest(ctx context.Context, entities []dsdk.Entity) (*Result, error)
	Close() error
}

// ClientConfig holds the ingestion endpoint settings.
type ClientConfig struct {
	Target       string
	AppName      string
	AppVersion   string
	ClientID     string
	ClientSecret string
}

type client struct {
	sdk    dsdk.Client
	logger logger.Logger
}

// NewClient dials the ingestion endpoint using OAuth2 client credentials.
func NewClient(cfg *ClientConfig, log logger.Logger) (Client, error) {
	sdk, err := dsdk.NewClient(
		cfg.Target,
		cfg.AppName,
		cfg.AppVersion,
		dsdk.WithClientID(cfg.ClientID),
		dsdk.WithClientSecret(cfg.ClientSecret),
	)
	if err != nil {
		return nil, fmt.Errorf("create diode client: %w", err)
	}

	return &client{sdk: sdk, logger: log}, nil
}

func (c *client) Ingest(ctx context.Context, entities []dsdk.Entity) (*Result, error) {
	resp, err := c.sdk.Ingest(ctx, entities)
	if err != nil {
		return nil, err
	}

	result := &Result{}

	if resp != nil {
		for _, e := range resp.GetErrors() {
			result.Errors = append(result.Errors, fmt.Sprintf("%v", e))
		}
	}

	return result, nil
}

func (c *client) Close() error {
	return c.sdk.Close()
}
