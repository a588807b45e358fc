package framestore

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/eastside-atlas/velocity/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleViews() []schema.RegionView {
	return []schema.RegionView{
		{
			Region:  "Holly",
			Year:    2023,
			MapFill: "#f97316",
			Current: &schema.SocioSnapshot{
				Region: "Holly", Year: 2023, IncomeAdj: 61000, HomeValue: 540000,
				PctBachelors: 0.41, PctCostBurdened: 0.33, Confidence: schema.HighConfidence,
			},
			Classification: schema.Classification{
				DVI: 48, Band: schema.ActiveDisplacementBand,
				BandColor: schema.ActiveDisplacementColor, RampColor: "#f97316",
			},
		},
		{
			Region:  "The Domain",
			Year:    2023,
			MapFill: schema.GreenfieldFillColor,
			Classification: schema.Classification{
				NewDevelopment: true, Band: schema.NewDevelopmentBand,
				BandColor: schema.NewDevelopmentLabelColor, RampColor: schema.GreenfieldFillColor,
			},
		},
	}
}

func newSQLiteStore(t *testing.T) *FrameStoreImpl {
	t.Helper()
	store, err := NewFrameStore(schema.SQLiteBackend, filepath.Join(t.TempDir(), "frames.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.(*FrameStoreImpl)
}

func TestFrameStore_NoneBackend(t *testing.T) {
	store, err := NewFrameStore(schema.NoneBackend, "")
	require.NoError(t, err)

	runID, err := store.BeginRun(time.Now(), 2023, map[string]any{"year": 2023})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), runID)
	assert.NoError(t, store.RecordRegionView(runID, sampleViews()[0]))
	assert.NoError(t, store.EndRun(runID, time.Now(), 1))

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, string(schema.NoneBackend), status.Backend)
	assert.False(t, status.Connected)

	runs, err := store.GetAllRuns()
	assert.NoError(t, err)
	assert.Empty(t, runs)
	assert.NoError(t, store.Close())
}

func TestFrameStore_SQLiteRoundTrip(t *testing.T) {
	store := newSQLiteStore(t)
	start := time.UnixMilli(1_700_000_000_000)
	clock := []time.Time{start, start.Add(25 * time.Millisecond)}
	now := func() time.Time {
		ts := clock[0]
		clock = clock[1:]
		return ts
	}

	runID, err := ArchiveFrame(store, 2023, sampleViews(), map[string]any{"year": 2023}, now)
	require.NoError(t, err)
	assert.Greater(t, runID, int64(0))

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	run := runs[0]
	assert.Equal(t, runID, run.RunID)
	assert.Equal(t, 2023, run.FrameYear)
	assert.Equal(t, 2, run.TotalRegions)
	assert.True(t, start.Equal(run.StartTime))
	require.NotNil(t, run.RunDurationMs)
	assert.Equal(t, int64(25), *run.RunDurationMs)
	require.NotNil(t, run.ConfigParams)
	assert.JSONEq(t, `{"year":2023}`, *run.ConfigParams)

	frames, err := store.GetAllRegionFrames()
	require.NoError(t, err)
	require.Len(t, frames, 2)

	holly := frames[0]
	assert.Equal(t, "Holly", holly.Region)
	assert.InDelta(t, 48.0, holly.DVI, 1e-9)
	assert.Equal(t, string(schema.ActiveDisplacementBand), holly.Band)
	require.NotNil(t, holly.IncomeAdj)
	assert.InDelta(t, 61000.0, *holly.IncomeAdj, 1e-9)
	require.NotNil(t, holly.Confidence)
	assert.Equal(t, string(schema.HighConfidence), *holly.Confidence)
	assert.False(t, holly.NewDevelopment)

	domain := frames[1]
	assert.Equal(t, "The Domain", domain.Region)
	assert.True(t, domain.NewDevelopment)
	assert.Nil(t, domain.IncomeAdj)
	assert.Nil(t, domain.Confidence)
}

func TestFrameStore_Status(t *testing.T) {
	store := newSQLiteStore(t)
	for _, year := range []int{2010, 2023} {
		_, err := ArchiveFrame(store, year, sampleViews(), nil, time.Now)
		require.NoError(t, err)
	}

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, 2, status.TotalRuns)
	assert.Equal(t, 4, status.TotalFrames)
	assert.Equal(t, int64(2), status.TableSizes[frameRunsTable])
	assert.False(t, status.LastRunTime.Before(status.OldestRunTime))

	var buf bytes.Buffer
	PrintStoreStatus(&buf, status)
	out := buf.String()
	assert.Contains(t, out, "Store Backend: sqlite")
	assert.Contains(t, out, "Total Runs: 2")
	assert.Contains(t, out, "velocity_region_frames: 4 rows")
}

func TestFrameStore_DuplicateRegionRejected(t *testing.T) {
	store := newSQLiteStore(t)
	runID, err := store.BeginRun(time.Now(), 2023, nil)
	require.NoError(t, err)
	view := sampleViews()[0]
	require.NoError(t, store.RecordRegionView(runID, view))
	assert.Error(t, store.RecordRegionView(runID, view))
}

func TestPrintStoreStatus_Disconnected(t *testing.T) {
	var buf bytes.Buffer
	PrintStoreStatus(&buf, schema.StoreStatus{Backend: "none"})
	assert.Equal(t, "Store Backend: none\nConnected: false\n", buf.String())
}

func TestExportFrames(t *testing.T) {
	store := newSQLiteStore(t)
	var buf bytes.Buffer

	err := ExportFrames(&buf, store, filepath.Join(t.TempDir(), "out"))
	require.Error(t, err, "an empty archive has nothing to export")

	_, err = ArchiveFrame(store, 2023, sampleViews(), nil, time.Now)
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "out")
	require.NoError(t, ExportFrames(&buf, store, out))
	for _, suffix := range []string{".frame_runs.parquet", ".region_frames.parquet"} {
		info, err := os.Stat(out + suffix)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
	assert.Contains(t, buf.String(), "Exported 2 region frames")

	assert.Error(t, ExportFrames(&buf, store, ""))
}

func TestClearStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "frames.db")
	store, err := NewFrameStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	require.NoError(t, ClearStore(schema.SQLiteBackend, dbPath, ""))
	_, err = os.Stat(dbPath)
	assert.True(t, os.IsNotExist(err))

	// Clearing twice is fine.
	assert.NoError(t, ClearStore(schema.SQLiteBackend, dbPath, ""))
	assert.NoError(t, ClearStore(schema.NoneBackend, "", ""))
	assert.Error(t, ClearStore(schema.SQLiteBackend, "", ""))
	assert.Error(t, ClearStore("bogus", "", ""))
}

func TestDescribeLocation(t *testing.T) {
	tests := []struct {
		backend schema.DatabaseBackend
		connStr string
		want    string
	}{
		{schema.SQLiteBackend, "/tmp/frames.db", "/tmp/frames.db"},
		{schema.MySQLBackend, "user:pass@tcp(localhost:3306)/velocity", "velocity"},
		{schema.PostgreSQLBackend, "host=localhost user=postgres dbname=frames", "frames"},
		{schema.MySQLBackend, "not a dsn", ""},
	}
	for _, tt := range tests {
		t.Run(string(tt.backend)+"/"+tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, describeLocation(tt.backend, tt.connStr))
		})
	}
}

func TestMigrationVersion(t *testing.T) {
	assert.Equal(t, 1, migrationVersion("1_create_frame_runs.up.sql"))
	assert.Equal(t, 12, migrationVersion("12_later.up.sql"))
	assert.Equal(t, 0, migrationVersion("readme.md"))
}

func TestManager_DefaultsToDiscardingStore(t *testing.T) {
	m := &StoreManagerImpl{}
	store := m.GetFrameStore()
	require.NotNil(t, store)
	runID, err := store.BeginRun(time.Now(), 2023, nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), runID)
}
