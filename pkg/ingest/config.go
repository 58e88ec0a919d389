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

package ingest

import (
	"errors"
	"path/filepath"
	"time"

	"github.com/routelab/netbridge/pkg/logger"
	"github.com/routelab/netbridge/pkg/models"
)

const (
	defaultWatchDir     = "/opt/orb/output"
	defaultTarget       = "grpc://localhost:8080/diode"
	defaultPollInterval = 10 * time.Second
	defaultFilePattern  = "*.json"
	defaultAppName      = "orb/device-discovery"
	defaultAppVersion   = "1.0.0"
)

var errMissingCredentials = errors.New("diode_client_id and diode_client_secret are required")

// Config holds the watcher's tunables. Every field maps to an environment
// variable through its json tag (WATCH_DIR, DIODE_TARGET, ...).
type Config struct {
	WatchDir     string          `json:"watch_dir"`
	ProcessedDir string          `json:"processed_dir"`
	FilePattern  string          `json:"file_pattern"`
	Target       string          `json:"diode_target"`
	ClientID     string          `json:"diode_client_id"`
	ClientSecret string          `json:"diode_client_secret"`
	PollInterval models.Duration `json:"poll_interval"`
	AppName      string          `json:"app_name"`
	AppVersion   string          `json:"app_version"`
	Logging      *logger.Config  `json:"logging"`
}

// Validate defaults the optional fields and rejects a config without
// ingestion credentials.
func (c *Config) Validate() error {
	if c.ClientID == "" || c.ClientSecret == "" {
		return errMissingCredentials
	}

	if c.WatchDir == "" {
		c.WatchDir = defaultWatchDir
	}

	if c.ProcessedDir == "" {
		c.ProcessedDir = filepath.Join(c.WatchDir, "processed")
	}

	if c.FilePattern == "" {
		c.FilePattern = defaultFilePattern
	}

	if c.Target == "" {
		c.Target = defaultTarget
	}

	if time.Duration(c.PollInterval) == 0 {
		c.PollInterval = models.Duration(defaultPollInterval)
	}

	if c.AppName == "" {
		c.AppName = defaultAppName
	}

	if c.AppVersion == "" {
		c.AppVersion = defaultAppVersion
	}

	return nil
}
