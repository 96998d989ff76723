package ports

import (
	"context"
	"testing"
	"time"

	"github.com/Ernest-Sab/IPR-Tool/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunOperationStoreContract runs a suite of tests to verify that an
// OperationStore implementation adheres to the defined interface contract.
func RunOperationStoreContract(t *testing.T, store OperationStore) {
	ctx := context.Background()
	base := "contract-op-" + time.Now().Format("20060102150405")

	newRec := func(id string, at time.Time) *domain.OperationRecord {
		return &domain.OperationRecord{
			ID:           id,
			Kind:         domain.KindSmoothing,
			DeformerName: "body_superDelta",
			BaseObject:   "body",
			Mode:         domain.ModeComponent,
			Components:   4,
			SmoothRadius: 2,
			Status:       domain.StatusSucceeded,
			StartedAt:    at,
			FinishedAt:   at.Add(120 * time.Millisecond),
		}
	}

	t.Run("Save and Get", func(t *testing.T) {
		rec := newRec(base, time.Now().UTC().Truncate(time.Millisecond))

		err := store.Save(ctx, rec)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Get(ctx, base)
		require.NoError(t, err, "Get should not return error")
		assert.Equal(t, rec.ID, loaded.ID)
		assert.Equal(t, rec.Kind, loaded.Kind)
		assert.Equal(t, rec.DeformerName, loaded.DeformerName)
		assert.Equal(t, rec.Status, loaded.Status)
		assert.True(t, rec.StartedAt.Equal(loaded.StartedAt), "StartedAt should survive round-trip")
	})

	t.Run("Get Non-Existent", func(t *testing.T) {
		_, err := store.Get(ctx, "non-existent-"+base)
		assert.ErrorIs(t, err, domain.ErrOperationNotFound)
	})

	t.Run("List Most Recent First", func(t *testing.T) {
		now := time.Now().UTC().Truncate(time.Millisecond)
		older := newRec(base+"-older", now.Add(-time.Minute))
		newer := newRec(base+"-newer", now)

		require.NoError(t, store.Save(ctx, older))
		require.NoError(t, store.Save(ctx, newer))

		recs, err := store.List(ctx)
		require.NoError(t, err)

		var ids []string
		for _, r := range recs {
			ids = append(ids, r.ID)
		}
		assert.Contains(t, ids, older.ID)
		assert.Contains(t, ids, newer.ID)

		// The newer record must come before the older one.
		newerIdx, olderIdx := -1, -1
		for i, id := range ids {
			if id == newer.ID {
				newerIdx = i
			}
			if id == older.ID {
				olderIdx = i
			}
		}
		assert.Less(t, newerIdx, olderIdx, "List should order most recent first")
	})

	t.Run("Isolation", func(t *testing.T) {
		rec := newRec(base+"-iso", time.Now().UTC())
		require.NoError(t, store.Save(ctx, rec))

		// Mutating the caller's copy must not affect the stored record.
		rec.Status = domain.StatusFailed

		loaded, err := store.Get(ctx, rec.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusSucceeded, loaded.Status)
	})
}
