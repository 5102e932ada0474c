package story

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/commonfire/storyshare/internal/model"
)

// ErrNotFound is returned by Get when no story has the requested id.
var ErrNotFound = errors.New("story not found")

// Store persists the story collection as a single JSON array on disk. The
// collection is rewritten in full on every append; the mutex serializes the
// read-modify-write cycle within this process. There is no cross-process
// locking.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a store backed by the JSON file at path. The file is
// created on first use.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the full story collection from disk. A missing file is
// initialized to an empty collection, which is persisted before returning.
// Existing but undecodable content is an error, propagated to the caller.
func (s *Store) Load() ([]model.Story, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load()
}

// Append adds a fully-validated story at the end of the collection and
// persists the whole updated collection.
func (s *Store) Append(story model.Story) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stories, err := s.load()
	if err != nil {
		return err
	}

	return s.persist(append(stories, story))
}

// Get returns the story with the given id, or ErrNotFound.
func (s *Store) Get(id string) (*model.Story, error) {
	stories, err := s.Load()
	if err != nil {
		return nil, err
	}

	for i := range stories {
		if stories[i].ID == id {
			return &stories[i], nil
		}
	}

	return nil, ErrNotFound
}

func (s *Store) load() ([]model.Story, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			if err := s.persist([]model.Story{}); err != nil {
				return nil, err
			}

			return []model.Story{}, nil
		}

		return nil, fmt.Errorf("read story file: %w", err)
	}

	var stories []model.Story
	if err := json.Unmarshal(data, &stories); err != nil {
		return nil, fmt.Errorf("decode story file %s: %w", s.path, err)
	}

	if stories == nil {
		stories = []model.Story{}
	}

	return stories, nil
}

// persist writes the collection to a sibling temp file and renames it over
// the data file, so a crash mid-write never leaves a truncated collection.
func (s *Store) persist(stories []model.Story) error {
	data, err := json.MarshalIndent(stories, "", "  ")
	if err != nil {
		return fmt.Errorf("encode story file: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("create story dir: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("write story file: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace story file: %w", err)
	}

	return nil
}
