package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadRecordsTopLevelList(t *testing.T) {
	path := writeFile(t, t.TempDir(), "export.json",
		`[{"device": {"name": "sw1"}}, {"timestamp": 1}]`)

	records, err := LoadRecords(path)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestLoadRecordsEntitiesWrapper(t *testing.T) {
	path := writeFile(t, t.TempDir(), "export.json",
		`{"entities": [{"site": {"name": "HQ"}}]}`)

	records, err := LoadRecords(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Contains(t, records[0], "site")
}

func TestLoadRecordsSingleObject(t *testing.T) {
	path := writeFile(t, t.TempDir(), "export.json",
		`{"device": {"name": "sw1"}}`)

	records, err := LoadRecords(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Contains(t, records[0], "device")
}

func TestLoadRecordsLeadingWhitespace(t *testing.T) {
	path := writeFile(t, t.TempDir(), "export.json",
		"\n\t [{\"timestamp\": 1}]")

	records, err := LoadRecords(path)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestLoadRecordsInvalidJSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "export.json", `{broken`)

	_, err := LoadRecords(path)
	assert.Error(t, err)
}

func TestLoadRecordsMissingFile(t *testing.T) {
	_, err := LoadRecords(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
