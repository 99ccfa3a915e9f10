package ports

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miriamsimone/video-generation-pipeline/pkg/domain"
)

// RunSequenceStoreContract runs a suite of tests verifying that a
// SequenceStore implementation adheres to the interface contract. The store
// must already contain the sequence named by seededPathID, with fetchable
// frame files.
func RunSequenceStoreContract(t *testing.T, store SequenceStore, seededPathID string) {
	t.Helper()
	ctx := context.Background()

	t.Run("GetSequence", func(t *testing.T) {
		seq, err := store.GetSequence(ctx, seededPathID)
		require.NoError(t, err, "GetSequence should not return error for a seeded id")
		assert.Equal(t, seededPathID, seq.PathID)
		require.NoError(t, seq.Validate(), "seeded manifest must satisfy the frame contract")
	})

	t.Run("GetFrame", func(t *testing.T) {
		seq, err := store.GetSequence(ctx, seededPathID)
		require.NoError(t, err)
		for _, frame := range seq.Frames {
			data, err := store.GetFrame(ctx, seededPathID, frame.File)
			require.NoError(t, err, "frame %s should be fetchable", frame.File)
			assert.NotEmpty(t, data)
		}
	})

	t.Run("GetSequence Non-Existent", func(t *testing.T) {
		_, err := store.GetSequence(ctx, "no_such_expr_to_nothing__center")
		assert.ErrorIs(t, err, domain.ErrSequenceNotFound)
	})

	t.Run("GetFrame Non-Existent", func(t *testing.T) {
		_, err := store.GetFrame(ctx, seededPathID, "does-not-exist.png")
		assert.ErrorIs(t, err, domain.ErrSequenceNotFound)

		_, err = store.GetFrame(ctx, "no_such_expr_to_nothing__center", "000.png")
		assert.ErrorIs(t, err, domain.ErrSequenceNotFound)
	})

	t.Run("ListSequences", func(t *testing.T) {
		ids, err := store.ListSequences(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, seededPathID)
		assert.IsIncreasing(t, ids, "path ids must be sorted")
	})
}
