package notify

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// FilePersister mirrors a notification log to a JSON file. Missing or corrupt
// files read as an empty log.
type FilePersister struct {
	path string
}

func NewFilePersister(path string) *FilePersister {
	return &FilePersister{path: path}
}

func (p *FilePersister) Load() ([]Notification, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []Notification
	if err := json.Unmarshal(data, &entries); err != nil {
		// Corrupt state is treated as empty, not fatal.
		return nil, nil
	}
	return entries, nil
}

func (p *FilePersister) Save(entries []Notification) error {
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return err
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}

	tmp := p.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, p.path)
}
