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

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routelab/netbridge/pkg/models"
)

type testConfig struct {
	WatchDir     string          `json:"watch_dir"`
	Target       string          `json:"diode_target"`
	PollInterval models.Duration `json:"poll_interval"`
	Insecure     bool            `json:"insecure"`

	validateCalled bool
	validateErr    error
}

func (c *testConfig) Validate() error {
	c.validateCalled = true
	return c.validateErr
}

func TestLoadAndValidateFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ingester.json")
	data := `{"watch_dir": "/srv/export", "diode_target": "grpc://diode:8080/diode", "poll_interval": "30s"}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	var cfg testConfig

	loader := NewConfig(nil)
	require.NoError(t, loader.LoadAndValidate(context.Background(), path, &cfg))

	assert.Equal(t, "/srv/export", cfg.WatchDir)
	assert.Equal(t, "grpc://diode:8080/diode", cfg.Target)
	assert.Equal(t, 30*time.Second, time.Duration(cfg.PollInterval))
	assert.True(t, cfg.validateCalled)
}

func TestLoadAndValidateFromEnv(t *testing.T) {
	t.Setenv("WATCH_DIR", "/opt/orb/output")
	t.Setenv("DIODE_TARGET", "grpc://localhost:8080/diode")
	t.Setenv("POLL_INTERVAL", "10")
	t.Setenv("INSECURE", "true")

	var cfg testConfig

	loader := NewConfig(nil)
	require.NoError(t, loader.LoadAndValidate(context.Background(), "", &cfg))

	assert.Equal(t, "/opt/orb/output", cfg.WatchDir)
	assert.Equal(t, "grpc://localhost:8080/diode", cfg.Target)
	assert.Equal(t, 10*time.Second, time.Duration(cfg.PollInterval))
	assert.True(t, cfg.Insecure)
}

func TestLoadAndValidatePropagatesValidationError(t *testing.T) {
	t.Setenv("WATCH_DIR", "/opt/orb/output")

	wantErr := errors.New("missing credentials")
	cfg := testConfig{validateErr: wantErr}

	loader := NewConfig(nil)
	err := loader.LoadAndValidate(context.Background(), "", &cfg)
	require.ErrorIs(t, err, wantErr)
}

func TestLoadAndValidateRejectsBadSource(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "consul")

	var cfg testConfig

	loader := NewConfig(nil)
	err := loader.LoadAndValidate(context.Background(), "", &cfg)
	require.ErrorIs(t, err, errInvalidConfigSource)
}

func TestLoadAndValidateMissingFile(t *testing.T) {
	var cfg testConfig

	loader := NewConfig(nil)
	err := loader.LoadAndValidate(context.Background(), filepath.Join(t.TempDir(), "absent.json"), &cfg)
	require.Error(t, err)
}
