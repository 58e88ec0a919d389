package ingest

import (
	"bytes"
	"testing"

	dsdk "github.com/netboxlabs/diode-sdk-go/diode"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildEntitiesDevice(t *testing.T) {
	records := []RawRecord{rawRecord(t, `{
		"device": {
			"name": "sw1",
			"device_type": {"model": "C9KV-UADP-8P", "manufacturer": {"name": "Cisco"}},
			"role": {"name": "switch"},
			"platform": {"name": "IOS-XE 17.12.1prd9", "manufacturer": {"name": "Cisco"}},
			"serial": "CML12345",
			"site": {"name": "Default Site"},
			"status": "active"
		}
	}`)}

	entities := BuildEntities(records, zerolog.Nop())
	require.Len(t, entities, 1)

	device, ok := entities[0].(*dsdk.Device)
	require.True(t, ok)
	assert.Equal(t, "sw1", *device.Name)
	assert.Equal(t, "C9KV-UADP-8P", *device.DeviceType.Model)
	assert.Equal(t, "Cisco", *device.DeviceType.Manufacturer.Name)
	assert.Equal(t, "switch", *device.Role.Name)
	assert.Equal(t, "IOS-XE 17.12.1prd9", *device.Platform.Name)
	assert.Equal(t, "CML12345", *device.Serial)
	assert.Equal(t, "Default Site", *device.Site.Name)
	assert.Equal(t, "active", *device.Status)
}

func TestBuildEntitiesOmitsEmptyFields(t *testing.T) {
	records := []RawRecord{rawRecord(t, `{"device": {"name": "sw2"}}`)}

	entities := BuildEntities(records, zerolog.Nop())
	require.Len(t, entities, 1)

	device := entities[0].(*dsdk.Device)
	assert.Equal(t, "sw2", *device.Name)
	assert.Nil(t, device.Serial)
	assert.Nil(t, device.Status)
	assert.Nil(t, device.DeviceType)
	assert.Nil(t, device.Site)
}

func TestBuildEntitiesSkipsInterfacesAndAddresses(t *testing.T) {
	var buf bytes.Buffer

	records := []RawRecord{
		rawRecord(t, `{"device": {"name": "sw1"}, "interface": {"name": "Gi1/0/1"}}`),
		rawRecord(t, `{"ip_address": {"address": "192.0.2.10/24"}}`),
		rawRecord(t, `{"vlan": {"vid": 100}}`),
		rawRecord(t, `{"timestamp": 1700000000}`),
	}

	entities := BuildEntities(records, zerolog.New(&buf))
	assert.Empty(t, entities)

	// Skip kinds are known; they must never be reported as unknown.
	assert.NotContains(t, buf.String(), "Unknown entity type")
}

func TestBuildEntitiesPrefixAndSite(t *testing.T) {
	records := []RawRecord{
		rawRecord(t, `{"prefix": {"prefix": "192.0.2.0/24"}}`),
		rawRecord(t, `{"site": {"name": "HQ", "status": "active", "description": "head office"}}`),
	}

	entities := BuildEntities(records, zerolog.Nop())
	require.Len(t, entities, 2)

	prefix := entities[0].(*dsdk.Prefix)
	assert.Equal(t, "192.0.2.0/24", *prefix.Prefix)

	site := entities[1].(*dsdk.Site)
	assert.Equal(t, "HQ", *site.Name)
	assert.Equal(t, "head office", *site.Description)
}

func TestBuildEntitiesWarnsOnUnknownKind(t *testing.T) {
	var buf bytes.Buffer

	records := []RawRecord{rawRecord(t, `{"widget": {}, "timestamp": 1}`)}

	entities := BuildEntities(records, zerolog.New(&buf))
	assert.Empty(t, entities)
	assert.Contains(t, buf.String(), "Unknown entity type")
	assert.Contains(t, buf.String(), "widget")
}

func TestBuildEntitiesContinuesPastBadRecord(t *testing.T) {
	records := []RawRecord{
		rawRecord(t, `{"device": "broken"}`),
		rawRecord(t, `{"device": {"name": "sw1"}}`),
	}

	entities := BuildEntities(records, zerolog.Nop())
	require.Len(t, entities, 1)
	assert.Equal(t, "sw1", *entities[0].(*dsdk.Device).Name)
}
