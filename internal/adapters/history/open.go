package history

import (
	"database/sql"
	"fmt"
	"survey-transform-service/internal/platform/db"
	"survey-transform-service/internal/ports"
)

// Store is an opened run history and the handle to release it.
type Store struct {
	ports.RunRecorder
	conn *sql.DB
}

func (s *Store) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

// Open connects the history store selected by dialect and makes sure the
// schema exists. An empty dialect returns a store that discards runs.
func Open(dialect, dsn string) (*Store, error) {
	if dialect == "" {
		return &Store{RunRecorder: Nop{}}, nil
	}

	conn, err := db.OpenDialect(dialect, dsn)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}

	if err := InitSchema(conn, dialect); err != nil {
		conn.Close()
		return nil, fmt.Errorf("open history: %w", err)
	}

	var rec ports.RunRecorder
	switch dialect {
	case db.DialectSQLite:
		rec = NewSqliteRunLog(conn)
	default:
		rec = NewSQLRunLog(conn)
	}
	return &Store{RunRecorder: rec, conn: conn}, nil
}
