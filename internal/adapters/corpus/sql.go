package corpus

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	_ "github.com/lib/pq"           // Postgres driver
	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/0xcro3dile/faqbot-go/internal/domain/entities"
	"github.com/0xcro3dile/faqbot-go/internal/domain/ports"
)

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// SQLSource reads Q&A records from a table with question and answer
// columns, ordered by id. Read-only; the table is maintained elsewhere.
type SQLSource struct {
	db     *sql.DB
	driver string
	table  string
	owned  bool
}

// OpenSQLSource opens a database with driver ("sqlite3" or "postgres")
// and dsn. The returned source owns the connection.
func OpenSQLSource(driver, dsn, table string) (*SQLSource, error) {
	if driver != "sqlite3" && driver != "postgres" {
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	s, err := NewSQLSource(db, driver, table)
	if err != nil {
		db.Close()
		return nil, err
	}
	s.owned = true
	return s, nil
}

// NewSQLSource wraps an existing connection. The caller keeps ownership.
func NewSQLSource(db *sql.DB, driver, table string) (*SQLSource, error) {
	if table == "" {
		table = "qa_pairs"
	}
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &SQLSource{db: db, driver: driver, table: table}, nil
}

// Describe returns driver and table.
func (s *SQLSource) Describe() string {
	return s.driver + ":" + s.table
}

// Load reads every row in id order. Rows with a NULL or blank column are
// rejected individually.
func (s *SQLSource) Load(ctx context.Context) (*entities.Dataset, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT question, answer FROM "+s.table+" ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("%w: querying %s: %w", ports.ErrDatasetUnavailable, s.Describe(), err)
	}
	defer rows.Close()

	ds := &entities.Dataset{Source: s.Describe()}
	for pos := 0; rows.Next(); pos++ {
		var question, answer sql.NullString
		if err := rows.Scan(&question, &answer); err != nil {
			return nil, fmt.Errorf("%w: scanning row: %w", ports.ErrDatasetUnavailable, err)
		}
		ds.Add(pos, entities.RawRecord{
			Question: nullable(question),
			Answer:   nullable(answer),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading rows: %w", ports.ErrDatasetUnavailable, err)
	}
	return ds, nil
}

// Close closes the connection if the source opened it.
func (s *SQLSource) Close() error {
	if !s.owned {
		return nil
	}
	return s.db.Close()
}

func nullable(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
