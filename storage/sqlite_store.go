package storage

import (
	"database/sql"
	"fmt"

	"github.com/KimDantic/Worklog/worklog"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

type CategoryCount struct {
	Category string
	Records  int
}

type TokenCount struct {
	Token string
	Count int
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ensureSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS records (
	row_id INTEGER PRIMARY KEY,
	source_name TEXT NOT NULL,
	source_id TEXT NOT NULL,
	composite_id TEXT NOT NULL,
	entry_id TEXT NOT NULL,
	full_name TEXT NOT NULL,
	task TEXT NOT NULL,
	started_at TEXT NOT NULL,
	week TEXT NOT NULL,
	month TEXT NOT NULL,
	year TEXT NOT NULL,
	year_month TEXT NOT NULL,
	minutes NUMERIC NOT NULL,
	hours NUMERIC NOT NULL
);
CREATE TABLE IF NOT EXISTS record_categories (
	row_id INTEGER NOT NULL REFERENCES records(row_id),
	category TEXT NOT NULL,
	PRIMARY KEY (row_id, category)
);
CREATE TABLE IF NOT EXISTS record_tokens (
	row_id INTEGER NOT NULL REFERENCES records(row_id),
	position INTEGER NOT NULL,
	token TEXT NOT NULL,
	PRIMARY KEY (row_id, position)
);
CREATE INDEX IF NOT EXISTS idx_records_composite_id ON records(composite_id);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// SaveSnapshot replaces the stored table with table in one transaction and
// returns the number of records written.
func (s *SQLiteStore) SaveSnapshot(table worklog.Table) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}

	for _, stmt := range []string{`DELETE FROM record_tokens;`, `DELETE FROM record_categories;`, `DELETE FROM records;`} {
		if _, err := tx.Exec(stmt); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("clear snapshot: %w", err)
		}
	}

	const insertRecord = `
INSERT INTO records (
	row_id,
	source_name,
	source_id,
	composite_id,
	entry_id,
	full_name,
	task,
	started_at,
	week,
	month,
	year,
	year_month,
	minutes,
	hours
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`

	recordStmt, err := tx.Prepare(insertRecord)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("prepare record statement: %w", err)
	}
	defer recordStmt.Close()

	categoryStmt, err := tx.Prepare(`INSERT INTO record_categories (row_id, category) VALUES (?, ?);`)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("prepare category statement: %w", err)
	}
	defer categoryStmt.Close()

	tokenStmt, err := tx.Prepare(`INSERT INTO record_tokens (row_id, position, token) VALUES (?, ?, ?);`)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("prepare token statement: %w", err)
	}
	defer tokenStmt.Close()

	for i, record := range table.Records {
		rowID := i + 1
		if _, err := recordStmt.Exec(
			rowID,
			record.SourceName,
			record.SourceID,
			record.CompositeID,
			record.EntryID,
			record.FullName,
			record.Text(worklog.ColumnTask),
			record.StartedAt.String(),
			record.Calendar.WeekLabel(),
			record.Calendar.MonthLabel(),
			record.Calendar.YearLabel(),
			record.Calendar.YearMonthLabel(),
			quantityValue(record.Minutes),
			quantityValue(record.Hours),
		); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("insert record %s: %w", record.CompositeID, err)
		}

		for _, category := range record.Categories {
			if _, err := categoryStmt.Exec(rowID, category); err != nil {
				_ = tx.Rollback()
				return 0, fmt.Errorf("insert category for %s: %w", record.CompositeID, err)
			}
		}
		for position, token := range record.Tokens {
			if _, err := tokenStmt.Exec(rowID, position, token); err != nil {
				_ = tx.Rollback()
				return 0, fmt.Errorf("insert token for %s: %w", record.CompositeID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}

	return table.Len(), nil
}

func (s *SQLiteStore) CountRecords() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM records;`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return count, nil
}

// CategoryCounts returns how many records carry each category, most common first.
func (s *SQLiteStore) CategoryCounts() ([]CategoryCount, error) {
	rows, err := s.db.Query(`
SELECT category, COUNT(*) AS records
FROM record_categories
GROUP BY category
ORDER BY records DESC, category;`)
	if err != nil {
		return nil, fmt.Errorf("query category counts: %w", err)
	}
	defer rows.Close()

	counts := make([]CategoryCount, 0, 16)
	for rows.Next() {
		var count CategoryCount
		if err := rows.Scan(&count.Category, &count.Records); err != nil {
			return nil, fmt.Errorf("scan category count: %w", err)
		}
		counts = append(counts, count)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category counts: %w", err)
	}
	return counts, nil
}

// TopTokens returns the limit most frequent tokens. Ties keep first appearance order.
func (s *SQLiteStore) TopTokens(limit int) ([]TokenCount, error) {
	if limit <= 0 {
		return []TokenCount{}, nil
	}

	rows, err := s.db.Query(`
SELECT token, COUNT(*) AS occurrences, MIN(row_id * 1000000 + position) AS first_seen
FROM record_tokens
GROUP BY token
ORDER BY occurrences DESC, first_seen
LIMIT ?;`, limit)
	if err != nil {
		return nil, fmt.Errorf("query token counts: %w", err)
	}
	defer rows.Close()

	counts := make([]TokenCount, 0, limit)
	for rows.Next() {
		var (
			count     TokenCount
			firstSeen int64
		)
		if err := rows.Scan(&count.Token, &count.Count, &firstSeen); err != nil {
			return nil, fmt.Errorf("scan token count: %w", err)
		}
		counts = append(counts, count)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate token counts: %w", err)
	}
	return counts, nil
}

func quantityValue(q worklog.Quantity) any {
	if !q.Known {
		return worklog.Unknown
	}
	return q.Value
}
