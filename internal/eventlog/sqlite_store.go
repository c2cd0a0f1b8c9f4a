package eventlog

import (
	"context"
	"database/sql"
	"time"

	"github.com/jharju/stm/pkg/api"
)

// SQLiteStore stores transaction events in SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// Ensure SQLiteStore implements the interface.
var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a store over db and initializes its schema. The
// caller owns db; pass a database opened with the modernc.org/sqlite driver.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS tx_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			tx_id INTEGER NOT NULL,
			at INTEGER NOT NULL,
			type TEXT NOT NULL,
			mode TEXT NOT NULL DEFAULT '',
			attempt INTEGER NOT NULL DEFAULT 0,
			cells_read INTEGER NOT NULL DEFAULT 0,
			cells_written INTEGER NOT NULL DEFAULT 0,
			detail TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS idx_tx_events_tx_id ON tx_events(tx_id, id);
	`)
	return err
}

func (s *SQLiteStore) AppendEvent(ctx context.Context, ev api.TxEvent) error {
	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tx_events (tx_id, at, type, mode, attempt, cells_read, cells_written, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.TxID,
		at.UnixNano(),
		string(ev.Type),
		string(ev.Mode),
		ev.Attempt,
		ev.CellsRead,
		ev.CellsWritten,
		ev.Detail,
	)
	return err
}

func (s *SQLiteStore) ListEvents(ctx context.Context, txID uint64) ([]api.TxEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT tx_id, at, type, mode, attempt, cells_read, cells_written, detail
		FROM tx_events
		WHERE tx_id = ?
		ORDER BY id ASC`, txID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []api.TxEvent
	for rows.Next() {
		var (
			id           uint64
			atN          int64
			typ          string
			mode         string
			attempt      int
			cellsRead    int
			cellsWritten int
			detail       string
		)
		if err := rows.Scan(&id, &atN, &typ, &mode, &attempt, &cellsRead, &cellsWritten, &detail); err != nil {
			return nil, err
		}
		out = append(out, api.TxEvent{
			TxID:         id,
			At:           time.Unix(0, atN),
			Type:         api.EventType(typ),
			Mode:         api.TxMode(mode),
			Attempt:      attempt,
			CellsRead:    cellsRead,
			CellsWritten: cellsWritten,
			Detail:       detail,
		})
	}
	return out, rows.Err()
}
