package book

import (
	"path/filepath"
	"strings"

	"agenda-cli/internal/model"
)

// Backend is a durable storage target for the appointment collection.
//
// Load returns (nil, false, nil) when the target does not exist yet; a
// missing target is not an error. Save replaces the target's contents with
// the full collection.
type Backend interface {
	Load() (appts []model.Appointment, exists bool, err error)
	Save(appts []model.Appointment) error
}

// BackendForPath picks a backend by file extension: .db/.sqlite/.sqlite3 get
// the SQLite backend, everything else the JSON file backend.
func BackendForPath(path string) Backend {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return &SQLiteBackend{Path: path}
	default:
		return &FileBackend{Path: path}
	}
}
