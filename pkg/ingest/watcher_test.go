package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	dsdk "github.com/netboxlabs/diode-sdk-go/diode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/routelab/netbridge/pkg/ingest/diode"
	"github.com/routelab/netbridge/pkg/logger"
	"github.com/routelab/netbridge/pkg/models"
)

var archiveTestTime = time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)

func newTestWatcher(t *testing.T, client diode.Client, clock Clock) *Watcher {
	t.Helper()

	watchDir := t.TempDir()
	cfg := &Config{
		WatchDir:     watchDir,
		ProcessedDir: filepath.Join(watchDir, "processed"),
		ClientID:     "id",
		ClientSecret: "secret",
		PollInterval: models.Duration(time.Second),
	}

	w, err := NewWatcher(cfg, client, logger.NewTestLogger())
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(cfg.ProcessedDir, 0o750))

	w.clock = clock

	return w
}

func TestNewWatcherRejectsMissingCredentials(t *testing.T) {
	_, err := NewWatcher(&Config{}, nil, logger.NewTestLogger())
	assert.ErrorIs(t, err, errMissingCredentials)
}

func TestScanIngestsAndArchivesDeviceFile(t *testing.T) {
	ctrl := gomock.NewController(t)

	client := diode.NewMockClient(ctrl)
	client.EXPECT().Ingest(gomock.Any(), gomock.Len(1)).Return(&diode.Result{}, nil)

	clock := NewMockClock(ctrl)
	clock.EXPECT().Now().Return(archiveTestTime).AnyTimes()

	w := newTestWatcher(t, client, clock)
	writeFile(t, w.config.WatchDir, "export.json",
		`[{"device": {"name": "sw1", "site": {"name": "HQ"}}}, {"timestamp": "2024-01-01T00:00:00Z"}]`)

	w.Scan(context.Background())

	assert.NoFileExists(t, filepath.Join(w.config.WatchDir, "export.json"))
	assert.FileExists(t, filepath.Join(w.config.ProcessedDir, "20260102_150405_export.json"))
}

func TestScanArchivesEmptyBatchWithoutIngest(t *testing.T) {
	ctrl := gomock.NewController(t)

	// No Ingest expectation: a file with only skip kinds must not touch
	// the endpoint.
	client := diode.NewMockClient(ctrl)

	clock := NewMockClock(ctrl)
	clock.EXPECT().Now().Return(archiveTestTime).AnyTimes()

	w := newTestWatcher(t, client, clock)
	writeFile(t, w.config.WatchDir, "ifaces.json",
		`[{"device": {"name": "sw1"}, "interface": {"name": "Gi1/0/1"}}, {"timestamp": 1}]`)

	w.Scan(context.Background())

	assert.FileExists(t, filepath.Join(w.config.ProcessedDir, "20260102_150405_ifaces.json"))
}

func TestScanLeavesFileOnTransportError(t *testing.T) {
	ctrl := gomock.NewController(t)

	client := diode.NewMockClient(ctrl)
	client.EXPECT().Ingest(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused"))

	clock := NewMockClock(ctrl)

	w := newTestWatcher(t, client, clock)
	path := writeFile(t, w.config.WatchDir, "export.json", `{"device": {"name": "sw1"}}`)

	w.Scan(context.Background())

	assert.FileExists(t, path)
}

func TestScanLeavesFileOnIngestionErrors(t *testing.T) {
	ctrl := gomock.NewController(t)

	client := diode.NewMockClient(ctrl)
	client.EXPECT().Ingest(gomock.Any(), gomock.Any()).
		Return(&diode.Result{Errors: []string{"device: site not found"}}, nil)

	clock := NewMockClock(ctrl)

	w := newTestWatcher(t, client, clock)
	path := writeFile(t, w.config.WatchDir, "export.json", `{"device": {"name": "sw1"}}`)

	w.Scan(context.Background())

	assert.FileExists(t, path)
}

func TestScanLeavesMalformedFileInPlace(t *testing.T) {
	ctrl := gomock.NewController(t)

	client := diode.NewMockClient(ctrl)
	clock := NewMockClock(ctrl)

	w := newTestWatcher(t, client, clock)
	path := writeFile(t, w.config.WatchDir, "broken.json", `{not json`)

	w.Scan(context.Background())

	assert.FileExists(t, path)
}

func TestScanProcessesOldestFirst(t *testing.T) {
	ctrl := gomock.NewController(t)

	var order []string

	client := diode.NewMockClient(ctrl)
	client.EXPECT().Ingest(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, entities []dsdk.Entity) (*diode.Result, error) {
			order = append(order, *entities[0].(*dsdk.Device).Name)
			return &diode.Result{}, nil
		}).Times(2)

	clock := NewMockClock(ctrl)
	clock.EXPECT().Now().Return(archiveTestTime).AnyTimes()

	w := newTestWatcher(t, client, clock)

	older := writeFile(t, w.config.WatchDir, "b.json", `{"device": {"name": "first"}}`)
	newer := writeFile(t, w.config.WatchDir, "a.json", `{"device": {"name": "second"}}`)

	base := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(older, base, base))
	require.NoError(t, os.Chtimes(newer, base.Add(time.Minute), base.Add(time.Minute)))

	w.Scan(context.Background())

	assert.Equal(t, []string{"first", "second"}, order)
}

func TestStartStopsOnContextCancel(t *testing.T) {
	ctrl := gomock.NewController(t)

	client := diode.NewMockClient(ctrl)

	ticker := NewMockTicker(ctrl)
	ticker.EXPECT().Chan().Return((<-chan time.Time)(make(chan time.Time))).AnyTimes()
	ticker.EXPECT().Stop()

	clock := NewMockClock(ctrl)
	clock.EXPECT().Ticker(time.Second).Return(ticker)

	w := newTestWatcher(t, client, clock)

	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() {
		errCh <- w.Start(ctx)
	}()

	cancel()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop on context cancel")
	}
}

func TestStartStopsOnStop(t *testing.T) {
	ctrl := gomock.NewController(t)

	client := diode.NewMockClient(ctrl)

	ticker := NewMockTicker(ctrl)
	ticker.EXPECT().Chan().Return((<-chan time.Time)(make(chan time.Time))).AnyTimes()
	ticker.EXPECT().Stop()

	clock := NewMockClock(ctrl)
	clock.EXPECT().Ticker(time.Second).Return(ticker)

	w := newTestWatcher(t, client, clock)

	errCh := make(chan error, 1)
	go func() {
		errCh <- w.Start(context.Background())
	}()

	time.Sleep(10 * time.Millisecond)
	w.Stop()
	w.Stop() // idempotent

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestStartRunsScanOnTick(t *testing.T) {
	ctrl := gomock.NewController(t)

	client := diode.NewMockClient(ctrl)

	ingested := make(chan struct{})
	client.EXPECT().Ingest(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, []dsdk.Entity) (*diode.Result, error) {
			close(ingested)
			return &diode.Result{}, nil
		})

	tickCh := make(chan time.Time, 1)
	ticker := NewMockTicker(ctrl)
	ticker.EXPECT().Chan().Return((<-chan time.Time)(tickCh)).AnyTimes()
	ticker.EXPECT().Stop()

	clock := NewMockClock(ctrl)
	clock.EXPECT().Ticker(time.Second).Return(ticker)
	clock.EXPECT().Now().Return(archiveTestTime).AnyTimes()

	w := newTestWatcher(t, client, clock)

	errCh := make(chan error, 1)
	go func() {
		errCh <- w.Start(context.Background())
	}()

	// The file appears after startup; only the tick's scan can see it.
	time.Sleep(10 * time.Millisecond)
	writeFile(t, w.config.WatchDir, "late.json", `{"device": {"name": "sw9"}}`)
	tickCh <- time.Now()

	select {
	case <-ingested:
	case <-time.After(time.Second):
		t.Fatal("tick did not trigger a scan")
	}

	w.Stop()
	require.NoError(t, <-errCh)
}
