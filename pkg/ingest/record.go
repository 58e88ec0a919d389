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
	"encoding/json"
	"fmt"
	"sort"
)

// RawRecord is one undecoded entity description from an export file.
type RawRecord map[string]json.RawMessage

// Kind tags a classified record. Exactly one payload field of Classified
// is set for the kinds that carry one.
type Kind string

const (
	KindDevice    Kind = "device"
	KindInterface Kind = "interface"
	KindIPAddress Kind = "ip_address"
	KindPrefix    Kind = "prefix"
	KindSite      Kind = "site"
	KindVLAN      Kind = "vlan"
	KindTimestamp Kind = "timestamp"
	KindUnknown   Kind = "unknown"
)

// NameRecord is a nested sub-record carrying only a name.
type NameRecord struct {
	Name string `json:"name"`
}

// DeviceTypeRecord is the nested hardware model of a device record.
type DeviceTypeRecord struct {
	Model        string      `json:"model"`
	Manufacturer *NameRecord `json:"manufacturer"`
}

// PlatformRecord is the nested platform of a device record.
type PlatformRecord struct {
	Name         string      `json:"name"`
	Manufacturer *NameRecord `json:"manufacturer"`
}

// DeviceRecord is the decoded form of a device entity description.
type DeviceRecord struct {
	Name        string            `json:"name"`
	DeviceType  *DeviceTypeRecord `json:"device_type"`
	Role        *NameRecord       `json:"role"`
	Platform    *PlatformRecord   `json:"platform"`
	Serial      string            `json:"serial"`
	Site        *NameRecord       `json:"site"`
	Status      string            `json:"status"`
	Description string            `json:"description"`
	Comments    string            `json:"comments"`
}

// PrefixRecord is the decoded form of a prefix entity description.
type PrefixRecord struct {
	Prefix string `json:"prefix"`
}

// SiteRecord is the decoded form of a site entity description.
type SiteRecord struct {
	Name        string `json:"name"`
	Status      string `json:"status"`
	Description string `json:"description"`
}

// Classified is the tagged form of a raw record. The skip kinds carry only
// a label for logging.
type Classified struct {
	Kind        Kind
	Device      *DeviceRecord
	Prefix      *PrefixRecord
	Site        *SiteRecord
	Label       string
	UnknownKeys []string
}

// Classify inspects a record's keys and decodes the matching payload.
// Precedence follows the exporter's shapes: a record carrying both a
// device and an interface (or ip_address) key describes the interface, not
// the device.
func Classify(raw RawRecord) (*Classified, error) {
	_, hasDevice := raw["device"]
	_, hasInterface := raw["interface"]
	_, hasIPAddress := raw["ip_address"]

	switch {
	case hasDevice && !hasInterface && !hasIPAddress:
		var device DeviceRecord
		if err := json.Unmarshal(raw["device"], &device); err != nil {
			return nil, fmt.Errorf("decode device record: %w", err)
		}

		return &Classified{Kind: KindDevice, Device: &device, Label: device.Name}, nil

	case hasInterface:
		return &Classified{Kind: KindInterface, Label: nestedName(raw["interface"])}, nil

	case hasIPAddress:
		return &Classified{Kind: KindIPAddress, Label: nestedAddress(raw["ip_address"])}, nil

	default:
		return classifyRemaining(raw)
	}
}

func classifyRemaining(raw RawRecord) (*Classified, error) {
	if payload, ok := raw["prefix"]; ok {
		var prefix PrefixRecord
		if err := json.Unmarshal(payload, &prefix); err != nil {
			return nil, fmt.Errorf("decode prefix record: %w", err)
		}

		return &Classified{Kind: KindPrefix, Prefix: &prefix, Label: prefix.Prefix}, nil
	}

	if payload, ok := raw["site"]; ok {
		var site SiteRecord
		if err := json.Unmarshal(payload, &site); err != nil {
			return nil, fmt.Errorf("decode site record: %w", err)
		}

		return &Classified{Kind: KindSite, Site: &site, Label: site.Name}, nil
	}

	if _, ok := raw["vlan"]; ok {
		return &Classified{Kind: KindVLAN}, nil
	}

	keys := make([]string, 0, len(raw))

	for k := range raw {
		if k != "timestamp" {
			keys = append(keys, k)
		}
	}

	if len(keys) == 0 {
		return &Classified{Kind: KindTimestamp}, nil
	}

	sort.Strings(keys)

	return &Classified{Kind: KindUnknown, UnknownKeys: keys}, nil
}

func nestedName(payload json.RawMessage) string {
	var rec NameRecord

	_ = json.Unmarshal(payload, &rec)

	return rec.Name
}

func nestedAddress(payload json.RawMessage) string {
	var rec struct {
		Address string `json:"address"`
	}

	_ = json.Unmarshal(payload, &rec)

	return rec.Address
}
