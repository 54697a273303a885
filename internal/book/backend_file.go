package book

import (
	"encoding/json"
	"errors"
	"os"

	"agenda-cli/internal/model"
)

// FileBackend persists the collection as a JSON array, byte-compatible with
// existing appointments.json files:
//
//	[
//	  { "titolo": "Dentist", "data_ora": "2024-03-15T09:00:00", "durata": 30 }
//	]
type FileBackend struct {
	Path string
}

func (b *FileBackend) Load() ([]model.Appointment, bool, error) {
	raw, err := os.ReadFile(b.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, true, &IOError{Op: "read", Err: err}
	}
	var appts []model.Appointment
	if err := json.Unmarshal(raw, &appts); err != nil {
		var ferr *model.FormatError
		if errors.As(err, &ferr) {
			return nil, true, ferr
		}
		return nil, true, &model.FormatError{Reason: "malformed appointments file", Err: err}
	}
	return appts, true, nil
}

func (b *FileBackend) Save(appts []model.Appointment) error {
	if appts == nil {
		appts = []model.Appointment{}
	}
	raw, err := json.MarshalIndent(appts, "", "  ")
	if err != nil {
		return err
	}
	raw = append(raw, '\n')
	return os.WriteFile(b.Path, raw, 0o644)
}
