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

package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/routelab/netbridge/pkg/config"
	"github.com/routelab/netbridge/pkg/ingest"
	"github.com/routelab/netbridge/pkg/ingest/diode"
	"github.com/routelab/netbridge/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (env-only config when empty)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfgLoader := config.NewConfig(nil)

	var cfg ingest.Config

	if err := cfgLoader.LoadAndValidate(ctx, *configPath, &cfg); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logCfg := cfg.Logging
	if logCfg == nil {
		logCfg = logger.DefaultConfig()
	}

	lg, err := logger.New(logCfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	client, err := diode.NewClient(&diode.ClientConfig{
		Target:       cfg.Target,
		AppName:      cfg.AppName,
		AppVersion:   cfg.AppVersion,
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
	}, lg)
	if err != nil {
		lg.Fatal().Err(err).Msg("Failed to create ingestion client")
	}

	defer func() {
		if err := client.Close(); err != nil {
			lg.Warn().Err(err).Msg("Failed to close ingestion client")
		}
	}()

	watcher, err := ingest.NewWatcher(&cfg, client, lg)
	if err != nil {
		lg.Fatal().Err(err).Msg("Failed to create watcher")
	}

	if err := watcher.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		lg.Fatal().Err(err).Msg("Watcher failed")
	}

	lg.Info().Msg("Shutdown complete")
}
