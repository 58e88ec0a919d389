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

package diode

import (
	dsdk "github.com/netboxlabs/diode-sdk-go/diode"
)

// SeedEntities is the demo payload used to verify an ingestion endpoint
// end to end: a single enabled switch interface on a lab device.
func SeedEntities() []dsdk.Entity {
	return []dsdk.Entity{
		&dsdk.Interface{
			Device: &dsdk.Device{
				Name: dsdk.String("sw4"),
				DeviceType: &dsdk.DeviceType{
					Model: dsdk.String("C9KV-UADP-8P"),
					Manufacturer: &dsdk.Manufacturer{
						Name: dsdk.String("Cisco"),
					},
				},
				Platform: &dsdk.Platform{
					Name: dsdk.String("IOS-XE 17.12.1prd9"),
					Manufacturer: &dsdk.Manufacturer{
						Name: dsdk.String("Cisco"),
					},
				},
				Serial: dsdk.String("CML54321"),
				Site: &dsdk.Site{
					Name: dsdk.String("Default Site"),
				},
				Status: dsdk.String("active"),
			},
			Name:    dsdk.String("GigabitEthernet1/0/2"),
			Enabled: dsdk.Bool(true),
			Mtu:     dsdk.Int64(1500),
			PrimaryMacAddress: &dsdk.MACAddress{
				MacAddress: dsdk.String("52:54:00:0F:1C:09"),
			},
			Speed: dsdk.Int64(1000000),
		},
	}
}
