package watcher

import (
	"encoding/json"
	"os"
	"path/filepath"

	"fitplan_backend/internal/models"
)

// SnapshotStore persists the last-observed plan status per item between
// refresh cycles and process restarts.
type SnapshotStore interface {
	Load() (map[string]models.PlanStatus, error)
	Save(snapshot map[string]models.PlanStatus) error
}

// FileSnapshotStore keeps the snapshot in a JSON file. Missing or corrupt
// state reads as an empty snapshot.
type FileSnapshotStore struct {
	path string
}

func NewFileSnapshotStore(path string) *FileSnapshotStore {
	return &FileSnapshotStore{path: path}
}

func (s *FileSnapshotStore) Load() (map[string]models.PlanStatus, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]models.PlanStatus{}, nil
		}
		return nil, err
	}

	snapshot := map[string]models.PlanStatus{}
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return map[string]models.PlanStatus{}, nil
	}
	return snapshot, nil
}

func (s *FileSnapshotStore) Save(snapshot map[string]models.PlanStatus) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
