// Package store persists small named string lists: the deactivated-chord
// set and user-saved custom progressions. Backends are interchangeable;
// the engine never touches storage directly.
package store

import (
	"encoding/json"
	"fmt"
	"os"
)

// Well-known list names.
const (
	DeactivatedChordsKey  = "deactivated_chords"
	CustomProgressionsKey = "custom_progressions"
)

// Store reads and writes named string lists.
type Store interface {
	LoadList(key string) ([]string, error)
	SaveList(key string, items []string) error
}

// FileStore keeps every list in one JSON document on disk.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (s *FileStore) readAll() (map[string][]string, error) {
	data, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return map[string][]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read store file: %w", err)
	}

	lists := make(map[string][]string)
	if err := json.Unmarshal(data, &lists); err != nil {
		return nil, fmt.Errorf("could not parse store file: %w", err)
	}
	return lists, nil
}

func (s *FileStore) LoadList(key string) ([]string, error) {
	lists, err := s.readAll()
	if err != nil {
		return nil, err
	}
	return lists[key], nil
}

func (s *FileStore) SaveList(key string, items []string) error {
	lists, err := s.readAll()
	if err != nil {
		return err
	}
	lists[key] = items

	data, err := json.MarshalIndent(lists, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode store file: %w", err)
	}
	if err := os.WriteFile(s.Path, data, 0644); err != nil {
		return fmt.Errorf("could not write store file: %w", err)
	}
	return nil
}
