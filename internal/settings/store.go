// Package settings implements the durable contact-settings cache: an
// observable store with one writer (the legacy combined fetch) and any
// number of readers. Snapshots are last-write-wins; there is no merging.
package settings

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/mirkafe/menu-web/internal/domain/menu"
)

// StorageKey names the persisted snapshot; the on-disk file is
// StorageKey + ".json" inside the configured state directory.
const StorageKey = "restaurant-settings"

// Store holds the current ContactSettings snapshot, persists every update to
// disk, and broadcasts updates to subscribers.
type Store struct {
	path string
	lg   *zap.Logger

	mu      sync.RWMutex
	current menu.ContactSettings
	subs    map[uint64]chan menu.ContactSettings
	nextSub uint64
}

// Open creates a Store backed by dir and hydrates it from a previously
// persisted snapshot when one exists. A corrupt snapshot is discarded.
func Open(dir string, lg *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create state dir")
	}
	s := &Store{
		path: filepath.Join(dir, StorageKey+".json"),
		lg:   lg,
		subs: make(map[uint64]chan menu.ContactSettings),
	}

	data, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, errors.Wrap(err, "read settings snapshot")
	default:
		if err := json.Unmarshal(data, &s.current); err != nil {
			lg.Warn("Discarding corrupt settings snapshot",
				zap.String("path", s.path),
				zap.Error(err),
			)
			s.current = menu.ContactSettings{}
		}
	}
	return s, nil
}

// Snapshot returns the current settings value.
func (s *Store) Snapshot() menu.ContactSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Update replaces the snapshot, persists it, and notifies subscribers.
// Persistence failures are logged, not propagated: a fresh fetch already
// succeeded and readers must see it either way.
func (s *Store) Update(cs menu.ContactSettings) {
	s.mu.Lock()
	s.current = cs
	for _, ch := range s.subs {
		// Never block the writer: replace a pending value instead.
		select {
		case ch <- cs:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- cs
		}
	}
	s.mu.Unlock()

	if err := s.persist(cs); err != nil {
		s.lg.Warn("Persist settings snapshot failed",
			zap.String("path", s.path),
			zap.Error(err),
		)
	}
}

// Subscribe registers for update broadcasts. The returned cancel function
// must be called when the subscriber goes away; after cancel the channel is
// closed. Each subscriber sees at least the latest update (intermediate
// values may be dropped).
func (s *Store) Subscribe() (<-chan menu.ContactSettings, func()) {
	ch := make(chan menu.ContactSettings, 1)

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

// Check verifies the snapshot location is still usable: the state directory
// exists and is a directory. Wired as a readiness check so a deleted or
// replaced state volume takes the instance out of rotation.
func (s *Store) Check(_ context.Context) error {
	dir := filepath.Dir(s.path)
	info, err := os.Stat(dir)
	if err != nil {
		return errors.Wrap(err, "state dir")
	}
	if !info.IsDir() {
		return errors.Errorf("state path %s is not a directory", dir)
	}
	return nil
}

// persist writes the snapshot atomically via a temp file rename.
func (s *Store) persist(cs menu.ContactSettings) error {
	data, err := json.Marshal(cs)
	if err != nil {
		return errors.Wrap(err, "encode settings")
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrap(err, "write temp file")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return errors.Wrap(err, "rename temp file")
	}
	return nil
}
