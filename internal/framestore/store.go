// Package framestore archives computed map frames in SQLite, MySQL or PostgreSQL.
package framestore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/eastside-atlas/velocity/internal/contract"
	"github.com/eastside-atlas/velocity/schema"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// Table names for the frame archive.
const (
	frameRunsTable    = "velocity_frame_runs"
	regionFramesTable = "velocity_region_frames"
)

// FrameStoreImpl implements the FrameStore interface.
type FrameStoreImpl struct {
	db       *sqlx.DB
	backend  schema.DatabaseBackend
	location string
}

var _ contract.FrameStore = &FrameStoreImpl{} // Compile-time check

func init() {
	// sqlx does not know the modernc driver name; it uses ? placeholders.
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// frameRunRow mirrors velocity_frame_runs; timestamps are unix milliseconds.
type frameRunRow struct {
	RunID         int64          `db:"run_id"`
	StartTimeMs   int64          `db:"start_time_ms"`
	EndTimeMs     sql.NullInt64  `db:"end_time_ms"`
	RunDurationMs sql.NullInt64  `db:"run_duration_ms"`
	FrameYear     int            `db:"frame_year"`
	TotalRegions  int            `db:"total_regions"`
	ConfigParams  sql.NullString `db:"config_params"`
}

// driverName maps a backend to its database/sql driver.
func driverName(backend schema.DatabaseBackend) (string, error) {
	switch backend {
	case schema.SQLiteBackend:
		return "sqlite", nil
	case schema.MySQLBackend:
		return "mysql", nil
	case schema.PostgreSQLBackend:
		return "pgx", nil
	default:
		return "", fmt.Errorf("unsupported backend: %s", backend)
	}
}

// openDB opens and pings a connection for the backend.
func openDB(backend schema.DatabaseBackend, connStr string) (*sqlx.DB, error) {
	driver, err := driverName(backend)
	if err != nil {
		return nil, err
	}
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetStoreDBFilePath()
	}

	db, err := sqlx.Open(driver, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", backend, err)
	}
	if backend == schema.SQLiteBackend {
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		var connDetail string
		switch backend {
		case schema.MySQLBackend:
			connDetail = "Check that MySQL is running and the connection string is correct. Ensure user/password are valid."
		case schema.PostgreSQLBackend:
			connDetail = "Check that PostgreSQL is running and the connection string is correct. Ensure user/password are valid."
		default:
			connDetail = "Check that the directory is writable."
		}
		return nil, fmt.Errorf("failed to connect to %s database: %w. %s", backend, err, connDetail)
	}
	return db, nil
}

// NewFrameStore creates a new FrameStore with the specified backend.
// The none backend yields a store that accepts and discards everything.
func NewFrameStore(backend schema.DatabaseBackend, connStr string) (contract.FrameStore, error) {
	if backend == schema.NoneBackend {
		return &FrameStoreImpl{backend: backend}, nil
	}

	db, err := openDB(backend, connStr)
	if err != nil {
		return nil, err
	}
	if err := createTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create frame tables: %w", err)
	}

	return &FrameStoreImpl{
		db:       db,
		backend:  backend,
		location: describeLocation(backend, connStr),
	}, nil
}

// createTables applies every embedded up migration of the backend.
// The statements are idempotent, so this is safe on a migrated database.
func createTables(db *sqlx.DB, backend schema.DatabaseBackend) error {
	sub, err := fs.Sub(migrationsFS, "migrations/"+string(backend))
	if err != nil {
		return err
	}
	files, err := fs.Glob(sub, "*.up.sql")
	if err != nil {
		return err
	}
	sort.Slice(files, func(i, j int) bool { return migrationVersion(files[i]) < migrationVersion(files[j]) })

	for _, name := range files {
		query, err := fs.ReadFile(sub, name)
		if err != nil {
			return err
		}
		if _, err := db.Exec(string(query)); err != nil {
			return fmt.Errorf("failed to apply %s: %w", name, err)
		}
	}
	return nil
}

// migrationVersion extracts the numeric prefix of a migration file name.
func migrationVersion(name string) int {
	var v int
	_, _ = fmt.Sscanf(name, "%d_", &v)
	return v
}

// describeLocation returns the database name or file path behind a connection string.
func describeLocation(backend schema.DatabaseBackend, connStr string) string {
	switch backend {
	case schema.SQLiteBackend:
		if connStr == "" {
			return contract.GetStoreDBFilePath()
		}
		return connStr
	case schema.MySQLBackend:
		if cfg, err := mysql.ParseDSN(connStr); err == nil {
			return cfg.DBName
		}
	case schema.PostgreSQLBackend:
		if cfg, err := pgx.ParseConfig(connStr); err == nil {
			return cfg.Database
		}
	}
	return ""
}

// disabled reports whether the store discards all writes.
func (s *FrameStoreImpl) disabled() bool {
	return s.backend == schema.NoneBackend || s.db == nil
}

// BeginRun creates a new archive run and returns its unique ID.
func (s *FrameStoreImpl) BeginRun(startTime time.Time, frameYear int, configParams map[string]any) (int64, error) {
	if s.disabled() {
		return 0, nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	var runID int64
	switch s.backend {
	case schema.PostgreSQLBackend:
		query := s.db.Rebind(fmt.Sprintf(`INSERT INTO %s (start_time_ms, frame_year, config_params) VALUES (?, ?, ?) RETURNING run_id`, frameRunsTable))
		err = s.db.QueryRowx(query, startTime.UnixMilli(), frameYear, string(configJSON)).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (start_time_ms, frame_year, config_params) VALUES (?, ?, ?)`, frameRunsTable)
		var result sql.Result
		result, err = s.db.Exec(query, startTime.UnixMilli(), frameYear, string(configJSON))
		if err != nil {
			return 0, fmt.Errorf("failed to insert frame run: %w", err)
		}
		runID, err = result.LastInsertId()
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert frame run: %w", err)
	}
	return runID, nil
}

// EndRun updates the run with completion data.
func (s *FrameStoreImpl) EndRun(runID int64, endTime time.Time, totalRegions int) error {
	if s.disabled() {
		return nil
	}

	var startMs int64
	query := s.db.Rebind(fmt.Sprintf(`SELECT start_time_ms FROM %s WHERE run_id = ?`, frameRunsTable))
	if err := s.db.Get(&startMs, query, runID); err != nil {
		return fmt.Errorf("failed to get start time for run %d: %w", runID, err)
	}

	endMs := endTime.UnixMilli()
	update := s.db.Rebind(fmt.Sprintf(`UPDATE %s SET end_time_ms = ?, run_duration_ms = ?, total_regions = ? WHERE run_id = ?`, frameRunsTable))
	if _, err := s.db.Exec(update, endMs, endMs-startMs, totalRegions, runID); err != nil {
		return fmt.Errorf("failed to update frame run: %w", err)
	}
	return nil
}

// RecordRegionView stores one region view under a run.
func (s *FrameStoreImpl) RecordRegionView(runID int64, view schema.RegionView) error {
	if s.disabled() {
		return nil
	}

	rec := view.Record(runID)
	query := fmt.Sprintf(`
		INSERT INTO %s (run_id, region, frame_year, dvi, band, band_color, ramp_color, map_fill,
		                new_development, income_adj, home_value, pct_bachelors, pct_cost_burdened, confidence)
		VALUES (:run_id, :region, :frame_year, :dvi, :band, :band_color, :ramp_color, :map_fill,
		        :new_development, :income_adj, :home_value, :pct_bachelors, :pct_cost_burdened, :confidence)
	`, regionFramesTable)
	if _, err := s.db.NamedExec(query, rec); err != nil {
		return fmt.Errorf("failed to insert region frame for %q: %w", view.Region, err)
	}
	return nil
}

// Close closes the underlying connection.
func (s *FrameStoreImpl) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// GetStatus returns status information about the archive.
func (s *FrameStoreImpl) GetStatus() (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:    string(s.backend),
		Location:   s.location,
		Connected:  s.db != nil,
		TableSizes: make(map[string]int64),
	}
	if s.disabled() {
		return status, nil
	}

	if err := s.db.Get(&status.TotalRuns, fmt.Sprintf("SELECT COUNT(*) FROM %s", frameRunsTable)); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		var last struct {
			RunID       int64 `db:"run_id"`
			StartTimeMs int64 `db:"start_time_ms"`
		}
		if err := s.db.Get(&last, fmt.Sprintf("SELECT run_id, start_time_ms FROM %s ORDER BY run_id DESC LIMIT 1", frameRunsTable)); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}
		status.LastRunID = last.RunID
		status.LastRunTime = time.UnixMilli(last.StartTimeMs)

		var oldestMs int64
		if err := s.db.Get(&oldestMs, fmt.Sprintf("SELECT start_time_ms FROM %s ORDER BY run_id ASC LIMIT 1", frameRunsTable)); err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		status.OldestRunTime = time.UnixMilli(oldestMs)
	}

	for _, table := range []string{frameRunsTable, regionFramesTable} {
		var count int64
		if err := s.db.Get(&count, fmt.Sprintf("SELECT COUNT(*) FROM %s", table)); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}
	status.TotalFrames = int(status.TableSizes[regionFramesTable])
	return status, nil
}

// GetAllRuns retrieves all runs from the archive.
func (s *FrameStoreImpl) GetAllRuns() ([]schema.FrameRunRecord, error) {
	if s.disabled() {
		return nil, nil
	}

	var rows []frameRunRow
	query := fmt.Sprintf(`SELECT run_id, start_time_ms, end_time_ms, run_duration_ms, frame_year, total_regions, config_params FROM %s ORDER BY run_id`, frameRunsTable)
	if err := s.db.Select(&rows, query); err != nil {
		return nil, fmt.Errorf("failed to query frame runs: %w", err)
	}

	results := make([]schema.FrameRunRecord, 0, len(rows))
	for _, r := range rows {
		rec := schema.FrameRunRecord{
			RunID:        r.RunID,
			StartTime:    time.UnixMilli(r.StartTimeMs),
			FrameYear:    r.FrameYear,
			TotalRegions: r.TotalRegions,
		}
		if r.EndTimeMs.Valid {
			end := time.UnixMilli(r.EndTimeMs.Int64)
			rec.EndTime = &end
		}
		if r.RunDurationMs.Valid {
			d := r.RunDurationMs.Int64
			rec.RunDurationMs = &d
		}
		if r.ConfigParams.Valid {
			p := r.ConfigParams.String
			rec.ConfigParams = &p
		}
		results = append(results, rec)
	}
	return results, nil
}

// GetAllRegionFrames retrieves all region frames from the archive.
func (s *FrameStoreImpl) GetAllRegionFrames() ([]schema.RegionFrameRecord, error) {
	if s.disabled() {
		return nil, nil
	}

	var records []schema.RegionFrameRecord
	query := fmt.Sprintf(`
		SELECT run_id, region, frame_year, dvi, band, band_color, ramp_color, map_fill,
		       new_development, income_adj, home_value, pct_bachelors, pct_cost_burdened, confidence
		FROM %s ORDER BY run_id, region
	`, regionFramesTable)
	if err := s.db.Select(&records, strings.TrimSpace(query)); err != nil {
		return nil, fmt.Errorf("failed to query region frames: %w", err)
	}
	return records, nil
}
