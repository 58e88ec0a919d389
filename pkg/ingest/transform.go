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
	dsdk "github.com/netboxlabs/diode-sdk-go/diode"
	"github.com/rs/zerolog"
)

// BuildEntities classifies raw records and converts the forwarded kinds
// into ingestion entities. Interface, ip_address and vlan records are
// skipped (interfaces reference devices the endpoint resolves on its own
// schedule), timestamp-only records are dropped silently, and unrecognized
// records are logged with their offending keys. A failure on one record
// never aborts the batch.
func BuildEntities(records []RawRecord, log zerolog.Logger) []dsdk.Entity {
	entities := make([]dsdk.Entity, 0, len(records))

	for _, raw := range records {
		classified, err := Classify(raw)
		if err != nil {
			log.Error().Err(err).Msg("Failed to decode record")
			continue
		}

		switch classified.Kind {
		case KindDevice:
			entities = append(entities, buildDevice(classified.Device))
			log.Debug().Str("device", classified.Label).Msg("Created device entity")

		case KindInterface:
			log.Info().Str("interface", classified.Label).Msg("Skipping interface")

		case KindIPAddress:
			log.Info().Str("ip_address", classified.Label).Msg("Skipping ip_address")

		case KindPrefix:
			entities = append(entities, &dsdk.Prefix{
				Prefix: optString(classified.Prefix.Prefix),
			})
			log.Debug().Str("prefix", classified.Label).Msg("Created prefix entity")

		case KindSite:
			entities = append(entities, buildSite(classified.Site))
			log.Debug().Str("site", classified.Label).Msg("Created site entity")

		case KindVLAN:
			log.Info().Msg("Skipping vlan")

		case KindTimestamp:
			// Heartbeat records carry no entity.

		case KindUnknown:
			log.Warn().Strs("keys", classified.UnknownKeys).Msg("Unknown entity type")
		}
	}

	return entities
}

func buildDevice(d *DeviceRecord) *dsdk.Device {
	device := &dsdk.Device{
		Name:        optString(d.Name),
		Serial:      optString(d.Serial),
		Status:      optString(d.Status),
		Description: optString(d.Description),
		Comments:    optString(d.Comments),
	}

	if d.DeviceType != nil {
		device.DeviceType = &dsdk.DeviceType{
			Model:        optString(d.DeviceType.Model),
			Manufacturer: buildManufacturer(d.DeviceType.Manufacturer),
		}
	}

	if d.Role != nil {
		device.Role = &dsdk.DeviceRole{Name: optString(d.Role.Name)}
	}

	if d.Platform != nil {
		device.Platform = &dsdk.Platform{
			Name:         optString(d.Platform.Name),
			Manufacturer: buildManufacturer(d.Platform.Manufacturer),
		}
	}

	if d.Site != nil {
		device.Site = &dsdk.Site{Name: optString(d.Site.Name)}
	}

	return device
}

func buildSite(s *SiteRecord) *dsdk.Site {
	return &dsdk.Site{
		Name:        optString(s.Name),
		Status:      optString(s.Status),
		Description: optString(s.Description),
	}
}

func buildManufacturer(m *NameRecord) *dsdk.Manufacturer {
	if m == nil {
		return nil
	}

	return &dsdk.Manufacturer{Name: optString(m.Name)}
}

// optString leaves absent fields unset instead of sending empty strings.
func optString(s string) *string {
	if s == "" {
		return nil
	}

	return dsdk.String(s)
}
