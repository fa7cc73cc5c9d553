package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/orbitx-mcn/orbitx-go/internal/model"
)

const (
	creatorsFile = "creators.json"
	logsFile     = "logs.json"
)

// FileStore persists the creator and audit collections as two flat JSON
// files under a data directory. Every save rewrites the whole file.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Dir returns the data directory.
func (s *FileStore) Dir() string {
	return s.dir
}

// EnsureDataDir creates the data directory if it does not exist yet.
func (s *FileStore) EnsureDataDir() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	return nil
}

// LoadCreators reads the creators file. A missing or unparsable file yields
// the seed roster; LoadCreators never fails.
func (s *FileStore) LoadCreators() []model.Creator {
	var creators []model.Creator
	if err := s.readJSON(creatorsFile, &creators); err != nil || creators == nil {
		return SeedCreators()
	}
	return creators
}

// SaveCreators overwrites the creators file with the full list.
func (s *FileStore) SaveCreators(creators []model.Creator) error {
	if creators == nil {
		creators = []model.Creator{}
	}
	return s.writeJSON(creatorsFile, creators)
}

// LoadLogs reads the audit log file, defaulting to an empty list.
func (s *FileStore) LoadLogs() []model.AuditLogEntry {
	var logs []model.AuditLogEntry
	if err := s.readJSON(logsFile, &logs); err != nil || logs == nil {
		return []model.AuditLogEntry{}
	}
	return logs
}

// SaveLogs overwrites the audit log file with the full list.
func (s *FileStore) SaveLogs(logs []model.AuditLogEntry) error {
	if logs == nil {
		logs = []model.AuditLogEntry{}
	}
	return s.writeJSON(logsFile, logs)
}

func (s *FileStore) readJSON(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// writeJSON writes to a temp file in the same directory and renames it over
// the target so readers never observe a half-written file.
func (s *FileStore) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}

	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmpName, filepath.Join(s.dir, name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
