package book

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"agenda-cli/internal/model"

	_ "modernc.org/sqlite"
)

// startColumnLayout mirrors the JSON wire encoding so a row is readable with
// any sqlite client and round-trips exactly.
const startColumnLayout = "2006-01-02T15:04:05"

// SQLiteBackend persists the collection in a single-table SQLite database.
// Writes use a replace-all transaction: the collection is small and the
// store's in-memory state is the source of truth for the running session.
type SQLiteBackend struct {
	Path string
}

func (b *SQLiteBackend) Load() ([]model.Appointment, bool, error) {
	if _, err := os.Stat(b.Path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, true, &IOError{Op: "read", Err: err}
	}

	db, err := b.open()
	if err != nil {
		return nil, true, &IOError{Op: "read", Err: err}
	}
	defer db.Close()

	rows, err := db.Query(`SELECT title, start_at, duration_min FROM appointments ORDER BY id`)
	if err != nil {
		return nil, true, &IOError{Op: "read", Err: err}
	}
	defer rows.Close()

	var appts []model.Appointment
	for rows.Next() {
		var (
			title   string
			startAt string
			minutes int
		)
		if err := rows.Scan(&title, &startAt, &minutes); err != nil {
			return nil, true, &model.FormatError{Reason: "malformed appointment row", Err: err}
		}
		start, err := time.Parse(startColumnLayout, startAt)
		if err != nil {
			return nil, true, &model.FormatError{Reason: fmt.Sprintf("appointment row has unparseable start %q", startAt), Err: err}
		}
		a, err := model.New(title, start, minutes)
		if err != nil {
			return nil, true, &model.FormatError{Reason: "appointment row failed validation", Err: err}
		}
		appts = append(appts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, true, &IOError{Op: "read", Err: err}
	}
	return appts, true, nil
}

func (b *SQLiteBackend) Save(appts []model.Appointment) error {
	db, err := b.open()
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM appointments`); err != nil {
		return err
	}
	for _, a := range appts {
		if _, err := tx.Exec(
			`INSERT INTO appointments(title, start_at, duration_min) VALUES(?, ?, ?)`,
			a.Title, a.Start.Format(startColumnLayout), a.Duration,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (b *SQLiteBackend) open() (*sql.DB, error) {
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", b.Path)
	if err != nil {
		return nil, err
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS appointments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		start_at TEXT NOT NULL,
		duration_min INTEGER NOT NULL
	);`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
