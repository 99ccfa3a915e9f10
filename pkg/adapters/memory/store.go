// Package memory provides an in-memory SequenceStore.
//
// It is the default store for tests and for embedding a rig whose
// sequences are generated at runtime. All methods are safe for
// concurrent use.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/miriamsimone/video-generation-pipeline/pkg/domain"
)

// Store keeps sequence manifests and frame payloads in process memory.
type Store struct {
	mu     sync.RWMutex
	seqs   map[string]*domain.Sequence
	frames map[string]map[string][]byte
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		seqs:   make(map[string]*domain.Sequence),
		frames: make(map[string]map[string][]byte),
	}
}

// Put registers a sequence and its frame payloads, replacing any
// previous entry with the same path id. The frames map is keyed by
// file name as referenced from the manifest.
func (s *Store) Put(seq *domain.Sequence, frames map[string][]byte) error {
	if seq == nil {
		return fmt.Errorf("memory: nil sequence")
	}
	if err := seq.Validate(); err != nil {
		return fmt.Errorf("memory: put %s: %w", seq.PathID, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *seq
	cp.Frames = append([]domain.Frame(nil), seq.Frames...)
	s.seqs[seq.PathID] = &cp
	fs := make(map[string][]byte, len(frames))
	for name, data := range frames {
		fs[name] = append([]byte(nil), data...)
	}
	s.frames[seq.PathID] = fs
	return nil
}

// Delete removes a sequence and its frames. Deleting an unknown path
// id is a no-op.
func (s *Store) Delete(pathID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.seqs, pathID)
	delete(s.frames, pathID)
}

// GetSequence implements ports.SequenceStore.
func (s *Store) GetSequence(ctx context.Context, pathID string) (*domain.Sequence, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	seq, ok := s.seqs[pathID]
	if !ok {
		return nil, fmt.Errorf("memory: sequence %q: %w", pathID, domain.ErrSequenceNotFound)
	}
	cp := *seq
	cp.Frames = append([]domain.Frame(nil), seq.Frames...)
	return &cp, nil
}

// GetFrame implements ports.SequenceStore.
func (s *Store) GetFrame(ctx context.Context, pathID, file string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	fs, ok := s.frames[pathID]
	if !ok {
		return nil, fmt.Errorf("memory: sequence %q: %w", pathID, domain.ErrSequenceNotFound)
	}
	data, ok := fs[file]
	if !ok {
		return nil, fmt.Errorf("memory: frame %q of %q: %w", file, pathID, domain.ErrSequenceNotFound)
	}
	return append([]byte(nil), data...), nil
}

// ListSequences implements ports.SequenceStore.
func (s *Store) ListSequences(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.seqs))
	for id := range s.seqs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
