package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miriamsimone/video-generation-pipeline/pkg/domain"
	"github.com/miriamsimone/video-generation-pipeline/pkg/graph"
	"github.com/miriamsimone/video-generation-pipeline/pkg/ports"
)

func TestStore_Contract(t *testing.T) {
	store := NewStore()
	require.NoError(t, Seed(store, []string{"neutral_to_happy_soft__center"}, 3))

	ports.RunSequenceStoreContract(t, store, "neutral_to_happy_soft__center")
}

func TestStore_PutRejectsMalformed(t *testing.T) {
	store := NewStore()

	err := store.Put(&domain.Sequence{PathID: "x_to_y__center"}, nil)
	assert.ErrorIs(t, err, domain.ErrMalformedSequence)

	err = store.Put(nil, nil)
	assert.Error(t, err)
}

func TestStore_PutIsolation(t *testing.T) {
	store := NewStore()
	seq := &domain.Sequence{
		PathID:    "neutral_to_blink__center",
		ExprStart: "neutral",
		ExprEnd:   "blink",
		Pose:      "center",
		Frames: []domain.Frame{
			{T: 0, File: "000.png"},
			{T: 1, File: "100.png"},
		},
	}
	require.NoError(t, store.Put(seq, map[string][]byte{
		"000.png": {1, 2, 3},
		"100.png": {4, 5, 6},
	}))

	// Mutating the caller's copy must not affect the stored sequence.
	seq.Frames[0].File = "corrupted.png"

	got, err := store.GetSequence(context.Background(), "neutral_to_blink__center")
	require.NoError(t, err)
	assert.Equal(t, "000.png", got.Frames[0].File)
}

func TestStore_Delete(t *testing.T) {
	store := NewStore()
	require.NoError(t, Seed(store, []string{"neutral_to_blink__center"}, 2))

	store.Delete("neutral_to_blink__center")

	_, err := store.GetSequence(context.Background(), "neutral_to_blink__center")
	assert.ErrorIs(t, err, domain.ErrSequenceNotFound)
}

func TestSeed_FullInventory(t *testing.T) {
	store := NewStore()
	ids := graph.NewPlanner().PathIDs()
	require.NoError(t, Seed(store, ids, 5))

	listed, err := store.ListSequences(context.Background())
	require.NoError(t, err)
	assert.Len(t, listed, len(ids))

	for _, id := range ids {
		seq, err := store.GetSequence(context.Background(), id)
		require.NoError(t, err, "seeded id %s", id)
		require.NoError(t, seq.Validate())
	}
}
