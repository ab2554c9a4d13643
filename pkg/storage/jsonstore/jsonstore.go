// Package jsonstore persists a string-keyed record set as one flat JSON
// document on disk. Every mutation rewrites the file through a temp-file
// rename, so a store reopened after restart observes the last acknowledged
// write. Records cross the store boundary as JSON round-trip copies and a
// failed flush rolls the cache back, so the in-memory state never drifts
// from the document on disk.
package jsonstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

type Store[T any] struct {
	mu     sync.Mutex
	path   string
	loaded bool
	data   map[string]T
}

func New[T any](path string) *Store[T] {
	return &Store[T]{
		path: path,
		data: make(map[string]T),
	}
}

func (s *Store[T]) Load(id string) (T, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	if err := s.ensureLoaded(); err != nil {
		return zero, false, err
	}
	rec, ok := s.data[id]
	if !ok {
		return zero, false, nil
	}
	out, err := cloneRecord(rec)
	if err != nil {
		return zero, false, err
	}
	return out, true, nil
}

func (s *Store[T]) GetAll() (map[string]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}
	out := make(map[string]T, len(s.data))
	for id, rec := range s.data {
		copied, err := cloneRecord(rec)
		if err != nil {
			return nil, err
		}
		out[id] = copied
	}
	return out, nil
}

func (s *Store[T]) Save(id string, rec T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(); err != nil {
		return err
	}
	stored, err := cloneRecord(rec)
	if err != nil {
		return err
	}
	prev, existed := s.data[id]
	s.data[id] = stored
	if err := s.flush(); err != nil {
		if existed {
			s.data[id] = prev
		} else {
			delete(s.data, id)
		}
		return err
	}
	return nil
}

func (s *Store[T]) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(); err != nil {
		return err
	}
	prev, existed := s.data[id]
	if !existed {
		return nil
	}
	delete(s.data, id)
	if err := s.flush(); err != nil {
		s.data[id] = prev
		return err
	}
	return nil
}

// cloneRecord round-trips a record through JSON so callers can mutate
// what they hold without aliasing the cached copy.
func cloneRecord[T any](rec T) (T, error) {
	var out T
	raw, err := json.Marshal(rec)
	if err != nil {
		return out, errors.Wrap(err, "jsonstore.cloneRecord.Marshal")
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, errors.Wrap(err, "jsonstore.cloneRecord.Unmarshal")
	}
	return out, nil
}

func (s *Store[T]) ensureLoaded() error {
	if s.loaded {
		return nil
	}
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.loaded = true
			return nil
		}
		return errors.Wrap(err, "jsonstore.ensureLoaded.ReadFile")
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &s.data); err != nil {
			return errors.Wrap(err, "jsonstore.ensureLoaded.Unmarshal")
		}
	}
	s.loaded = true
	return nil
}

func (s *Store[T]) flush() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return errors.Wrap(err, "jsonstore.flush.Marshal")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return errors.Wrap(err, "jsonstore.flush.MkdirAll")
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return errors.Wrap(err, "jsonstore.flush.WriteFile")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return errors.Wrap(err, "jsonstore.flush.Rename")
	}
	return nil
}
