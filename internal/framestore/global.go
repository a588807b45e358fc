package framestore

import (
	"fmt"
	"os"
	"sync"

	"github.com/eastside-atlas/velocity/internal/contract"
	"github.com/eastside-atlas/velocity/schema"
)

// StoreManagerImpl holds the process-wide frame store.
type StoreManagerImpl struct {
	sync.Mutex
	store contract.FrameStore
}

var _ contract.StoreManager = &StoreManagerImpl{} // Compile-time check

// GetFrameStore returns the frame store, or a discarding store before InitStore.
func (m *StoreManagerImpl) GetFrameStore() contract.FrameStore {
	m.Lock()
	defer m.Unlock()
	if m.store == nil {
		return &FrameStoreImpl{backend: schema.NoneBackend}
	}
	return m.store
}

// Global Manager instance for main logic.
var (
	Manager   = &StoreManagerImpl{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// InitStore initializes the global frame store exactly once.
func InitStore(backend schema.DatabaseBackend, connStr string) error {
	var initErr error
	initOnce.Do(func() {
		store, err := NewFrameStore(backend, connStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize frame store: %w", err)
			return
		}
		Manager.Lock()
		Manager.store = store
		Manager.Unlock()
	})
	return initErr
}

// CloseStore should be called on application shutdown.
func CloseStore() {
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.store != nil {
			_ = Manager.store.Close()
		}
	})
}

// ClearStore removes all archived frames.
// For SQLite, it deletes the database file.
// For MySQL and PostgreSQL, it drops the archive tables.
// For NoneBackend, it does nothing.
func ClearStore(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		if dbFilePath == "" {
			return fmt.Errorf("dbFilePath cannot be empty for SQLite backend")
		}
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
		}
		return nil

	case schema.MySQLBackend, schema.PostgreSQLBackend:
		db, err := openDB(backend, connStr)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()
		for _, table := range []string{regionFramesTable, frameRunsTable, migrationsTable} {
			if _, err := db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", table)); err != nil {
				return fmt.Errorf("failed to drop table %s: %w", table, err)
			}
		}
		return nil

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported store backend for clearing: %s", backend)
	}
}
