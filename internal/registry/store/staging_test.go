package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/illustspace/gsr/internal/registry/models"
	id "github.com/illustspace/gsr/pkg/domain"
	"github.com/illustspace/gsr/pkg/platform/sentinel"
)

func newStagedOverEmpty(t *testing.T) *Staged {
	t.Helper()
	staged, err := NewStaged(context.Background(), NewInMemory())
	require.NoError(t, err)
	return staged
}

func TestStaged_CounterOnlyMovesForward(t *testing.T) {
	ctx := context.Background()
	staged := newStagedOverEmpty(t)

	require.NoError(t, staged.SetLastTokenID(ctx, 1))
	assert.ErrorIs(t, staged.SetLastTokenID(ctx, 1), sentinel.ErrInvalidState)
	assert.ErrorIs(t, staged.SetLastTokenID(ctx, 0), sentinel.ErrInvalidState)
}

func TestStaged_TokenWritesRequireIssuedID(t *testing.T) {
	ctx := context.Background()
	staged := newStagedOverEmpty(t)

	md, err := models.NewTokenMetadata(1)
	require.NoError(t, err)
	assert.ErrorIs(t, staged.SaveTokenMetadata(ctx, md), sentinel.ErrInvalidState)
	assert.ErrorIs(t, staged.SaveOwner(ctx, 1, alice), sentinel.ErrInvalidState)

	require.NoError(t, staged.SetLastTokenID(ctx, 1))
	require.NoError(t, staged.SaveTokenMetadata(ctx, md))
	require.NoError(t, staged.SaveOwner(ctx, 1, alice))
}

func TestStaged_TokenWritesAreWriteOnce(t *testing.T) {
	ctx := context.Background()
	staged := newStagedOverEmpty(t)
	require.NoError(t, staged.SetLastTokenID(ctx, 1))

	md, err := models.NewTokenMetadata(1)
	require.NoError(t, err)
	require.NoError(t, staged.SaveTokenMetadata(ctx, md))
	require.NoError(t, staged.SaveOwner(ctx, 1, alice))

	assert.ErrorIs(t, staged.SaveTokenMetadata(ctx, md), sentinel.ErrConflict)
	assert.ErrorIs(t, staged.SaveOwner(ctx, 1, bob), sentinel.ErrConflict)
}

func TestStaged_AliasLastWriteWins(t *testing.T) {
	ctx := context.Background()
	staged := newStagedOverEmpty(t)

	require.NoError(t, staged.SaveAlias(ctx, alice, "0x1"))
	require.NoError(t, staged.SaveAlias(ctx, alice, "0x2"))

	got, err := staged.FindAlias(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, id.SecondaryAddress("0x2"), got)

	assert.ErrorIs(t, staged.SaveAlias(ctx, "", "0x3"), sentinel.ErrInvalidState)
}

func TestStaged_Changes(t *testing.T) {
	ctx := context.Background()

	t.Run("empty buffer", func(t *testing.T) {
		changes, err := newStagedOverEmpty(t).Changes()
		require.NoError(t, err)
		assert.True(t, changes.Empty())
	})

	t.Run("missing owner", func(t *testing.T) {
		staged := newStagedOverEmpty(t)
		require.NoError(t, staged.SetLastTokenID(ctx, 1))
		md, err := models.NewTokenMetadata(1)
		require.NoError(t, err)
		require.NoError(t, staged.SaveTokenMetadata(ctx, md))

		_, err = staged.Changes()
		assert.ErrorIs(t, err, sentinel.ErrInvalidState)
	})

	t.Run("ordered tokens", func(t *testing.T) {
		staged := newStagedOverEmpty(t)
		for i := 0; i < 3; i++ {
			_, err := issue(ctx, staged, alice, "0xA")
			require.NoError(t, err)
		}
		changes, err := staged.Changes()
		require.NoError(t, err)
		assert.False(t, changes.Empty())
		assert.Equal(t, id.TokenID(0), changes.PreviousLastTokenID)
		assert.Equal(t, id.TokenID(3), changes.LastTokenID)
		require.Len(t, changes.Tokens, 3)
		for i, tok := range changes.Tokens {
			assert.Equal(t, id.TokenID(i+1), tok.Metadata.TokenID)
			assert.Equal(t, alice, tok.Owner)
		}
	})
}
