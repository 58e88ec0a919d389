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

// Package ingest watches a directory for exported entity files and
// forwards their contents to a Diode ingestion endpoint.
package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	dsdk "github.com/netboxlabs/diode-sdk-go/diode"
	"github.com/rs/zerolog"

	"github.com/routelab/netbridge/pkg/ingest/diode"
	"github.com/routelab/netbridge/pkg/logger"
)

const (
	archiveTimeFormat = "20060102_150405"
	maxLoggedErrors   = 5
)

// Watcher polls the watch directory and submits each file's entities as
// one batch. Files are only moved to the processed directory after a
// fully successful submission, so a failed file is retried on every
// subsequent cycle.
type Watcher struct {
	config    *Config
	client    diode.Client
	clock     Clock
	logger    logger.Logger
	done      chan struct{}
	closeOnce sync.Once
}

// NewWatcher creates a directory watcher over the given ingestion client.
func NewWatcher(config *Config, client diode.Client, log logger.Logger) (*Watcher, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Watcher{
		config: config,
		client: client,
		clock:  realClock{},
		logger: log,
		done:   make(chan struct{}),
	}, nil
}

// Start runs the poll loop until the context is canceled or Stop is
// called. A scan runs immediately on startup so files accumulated while
// the watcher was down are picked up without waiting a full interval.
func (w *Watcher) Start(ctx context.Context) error {
	if err := os.MkdirAll(w.config.ProcessedDir, 0o750); err != nil {
		return fmt.Errorf("create processed dir: %w", err)
	}

	interval := time.Duration(w.config.PollInterval)

	w.logger.Info().
		Str("watch_dir", w.config.WatchDir).
		Str("pattern", w.config.FilePattern).
		Dur("interval", interval).
		Msg("Starting directory watcher")

	w.Scan(ctx)

	ticker := w.clock.Ticker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.done:
			return nil
		case <-ticker.Chan():
			w.Scan(ctx)
		}
	}
}

// Stop terminates the poll loop. Safe to call more than once.
func (w *Watcher) Stop() {
	w.closeOnce.Do(func() {
		close(w.done)
	})
}

// Scan processes every pending file once, oldest first. Failures leave
// the file in place for the next cycle.
func (w *Watcher) Scan(ctx context.Context) {
	files, err := w.pendingFiles()
	if err != nil {
		w.logger.Error().Err(err).Msg("Failed to list watch directory")
		return
	}

	for _, path := range files {
		if ctx.Err() != nil {
			return
		}

		log := w.logger.WithFields(map[string]interface{}{
			"file":     filepath.Base(path),
			"batch_id": uuid.New().String(),
		})

		if err := w.processFile(ctx, path, log); err != nil {
			log.Error().Err(err).Msg("File left in place for retry")
		}
	}
}

func (w *Watcher) processFile(ctx context.Context, path string, log zerolog.Logger) error {
	records, err := LoadRecords(path)
	if err != nil {
		return err
	}

	entities := BuildEntities(records, log)

	if err := w.submit(ctx, entities, log); err != nil {
		return err
	}

	return w.archive(path, log)
}

// submit sends one batch. An empty batch is a success and touches
// neither the network nor the endpoint.
func (w *Watcher) submit(ctx context.Context, entities []dsdk.Entity, log zerolog.Logger) error {
	if len(entities) == 0 {
		log.Info().Msg("No entities to ingest")
		return nil
	}

	result, err := w.client.Ingest(ctx, entities)
	if err != nil {
		return fmt.Errorf("ingest %d entities: %w", len(entities), err)
	}

	if len(result.Errors) > 0 {
		for i, msg := range result.Errors {
			if i == maxLoggedErrors {
				log.Error().Int("remaining", len(result.Errors)-maxLoggedErrors).Msg("Further ingestion errors suppressed")
				break
			}

			log.Error().Str("detail", msg).Msg("Ingestion error")
		}

		return fmt.Errorf("ingestion rejected with %d errors", len(result.Errors))
	}

	log.Info().Int("entities", len(entities)).Msg("Batch ingested")

	return nil
}

// archive moves a processed file into the processed directory under a
// timestamped name so repeated exports of the same file never collide.
func (w *Watcher) archive(path string, log zerolog.Logger) error {
	name := w.clock.Now().Format(archiveTimeFormat) + "_" + filepath.Base(path)
	dest := filepath.Join(w.config.ProcessedDir, name)

	if err := os.Rename(path, dest); err != nil {
		return fmt.Errorf("archive %s: %w", path, err)
	}

	log.Debug().Str("archived_as", name).Msg("File archived")

	return nil
}

// pendingFiles lists matching files oldest first, so a backlog drains in
// the order it was produced.
func (w *Watcher) pendingFiles() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(w.config.WatchDir, w.config.FilePattern))
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", w.config.FilePattern, err)
	}

	type entry struct {
		path    string
		modTime time.Time
	}

	entries := make([]entry, 0, len(matches))

	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}

		entries = append(entries, entry{path: path, modTime: info.ModTime()})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].modTime.Before(entries[j].modTime)
	})

	files := make([]string, len(entries))
	for i, e := range entries {
		files[i] = e.path
	}

	return files, nil
}
