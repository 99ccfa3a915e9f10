package ports

import (
	"context"

	"github.com/miriamsimone/video-generation-pipeline/pkg/domain"
)

// SequenceStore provides named animation sequences and their frame images.
// Sequences are immutable once fetched; implementations may cache freely.
type SequenceStore interface {
	// GetSequence retrieves the manifest for a path id.
	// Returns domain.ErrSequenceNotFound if the id is unknown.
	GetSequence(ctx context.Context, pathID string) (*domain.Sequence, error)

	// GetFrame retrieves the encoded image bytes for one frame file of a
	// sequence. Returns domain.ErrSequenceNotFound if either part of the
	// address is unknown.
	GetFrame(ctx context.Context, pathID, file string) ([]byte, error)

	// ListSequences returns all available path ids, sorted.
	ListSequences(ctx context.Context) ([]string, error)
}
