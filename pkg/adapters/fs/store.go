// Package fs provides a SequenceStore backed by a directory of
// pre-rendered sequences.
//
// The expected layout is one subdirectory per path id:
//
//	<root>/<path_id>/manifest.json
//	<root>/<path_id>/000.png
//	<root>/<path_id>/050.png
//	<root>/<path_id>/100.png
//
// When manifest.json is absent the store reconstructs the timeline by
// scanning the frame files: a file named NNN.png is placed at t=NNN/100.
package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/miriamsimone/video-generation-pipeline/pkg/domain"
)

const manifestFile = "manifest.json"

// Store serves sequences from a local directory tree.
type Store struct {
	root string
}

// NewStore returns a store rooted at dir. The directory must exist.
func NewStore(dir string) (*Store, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("fs: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("fs: %s is not a directory", dir)
	}
	return &Store{root: dir}, nil
}

// GetSequence implements ports.SequenceStore.
func (s *Store) GetSequence(ctx context.Context, pathID string) (*domain.Sequence, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dir, err := s.sequenceDir(pathID)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(dir, manifestFile))
	switch {
	case err == nil:
		var seq domain.Sequence
		if err := json.Unmarshal(data, &seq); err != nil {
			return nil, fmt.Errorf("%w: %q manifest: %v", domain.ErrMalformedSequence, pathID, err)
		}
		if err := seq.Validate(); err != nil {
			return nil, err
		}
		return &seq, nil
	case errors.Is(err, fs.ErrNotExist):
		return s.scanSequence(pathID, dir)
	default:
		return nil, fmt.Errorf("fs: read manifest of %q: %w", pathID, err)
	}
}

// scanSequence rebuilds a manifest from numbered frame files.
func (s *Store) scanSequence(pathID, dir string) (*domain.Sequence, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("fs: scan %q: %w", pathID, err)
	}
	seq := &domain.Sequence{PathID: pathID}
	if start, end, pose, err := domain.ParsePathID(pathID); err == nil {
		seq.ExprStart, seq.ExprEnd, seq.Pose = start, end, pose
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		num, ok := frameNumber(name)
		if !ok {
			continue
		}
		seq.Frames = append(seq.Frames, domain.Frame{T: float64(num) / 100, File: name})
	}
	sort.Slice(seq.Frames, func(i, j int) bool { return seq.Frames[i].T < seq.Frames[j].T })
	if len(seq.Frames) == 0 {
		return nil, fmt.Errorf("fs: sequence %q: %w", pathID, domain.ErrSequenceNotFound)
	}
	if err := seq.Validate(); err != nil {
		return nil, err
	}
	return seq, nil
}

// frameNumber parses NNN out of a frame file named "NNN.png".
func frameNumber(name string) (int, bool) {
	base, ok := strings.CutSuffix(name, ".png")
	if !ok {
		return 0, false
	}
	num, err := strconv.Atoi(base)
	if err != nil || num < 0 || num > 100 {
		return 0, false
	}
	return num, true
}

// GetFrame implements ports.SequenceStore.
func (s *Store) GetFrame(ctx context.Context, pathID, file string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dir, err := s.sequenceDir(pathID)
	if err != nil {
		return nil, err
	}
	if file != filepath.Base(file) || file == "." || file == ".." {
		return nil, fmt.Errorf("fs: frame %q of %q: %w", file, pathID, domain.ErrSequenceNotFound)
	}
	data, err := os.ReadFile(filepath.Join(dir, file))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("fs: frame %q of %q: %w", file, pathID, domain.ErrSequenceNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("fs: read frame %q of %q: %w", file, pathID, err)
	}
	return data, nil
}

// ListSequences implements ports.SequenceStore.
func (s *Store) ListSequences(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("fs: list sequences: %w", err)
	}
	var ids []string
	for _, entry := range entries {
		if entry.IsDir() {
			ids = append(ids, entry.Name())
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// sequenceDir resolves the directory for a path id, rejecting ids that
// would escape the store root.
func (s *Store) sequenceDir(pathID string) (string, error) {
	if pathID == "" || pathID != filepath.Base(pathID) {
		return "", fmt.Errorf("fs: sequence %q: %w", pathID, domain.ErrSequenceNotFound)
	}
	dir := filepath.Join(s.root, pathID)
	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && !info.IsDir()) {
		return "", fmt.Errorf("fs: sequence %q: %w", pathID, domain.ErrSequenceNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("fs: stat %q: %w", pathID, err)
	}
	return dir, nil
}
