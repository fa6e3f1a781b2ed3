package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sindh-police/spims/internal/pims/domain"
	"github.com/sindh-police/spims/internal/pims/store"
)

func newPersonnel(id, badge string, createdAt time.Time) domain.Personnel {
	return domain.Personnel{
		ID:                id,
		FullName:          "SI Bilal Ahmed",
		Rank:              domain.RankSI,
		BadgeNumber:       badge,
		District:          "Karachi South",
		Station:           "Clifton",
		DateOfJoining:     time.Date(2018, 3, 1, 0, 0, 0, 0, time.UTC),
		CurrentAssignment: "patrol",
		ContactNumber:     "+923001234567",
		IsActive:          true,
		CreatedAt:         createdAt,
		UpdatedAt:         createdAt,
	}
}

func TestPersonnelCRUD(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	created := newPersonnel("p1", "SP-1001", time.Now().UTC())
	require.NoError(t, st.Personnel().CreatePersonnel(ctx, created))

	t.Run("get by id and badge", func(t *testing.T) {
		got, err := st.Personnel().GetPersonnelByID(ctx, "p1")
		require.NoError(t, err)
		require.Equal(t, created.Rank, got.Rank)
		require.True(t, got.IsActive)

		byBadge, err := st.Personnel().GetPersonnelByBadge(ctx, "SP-1001")
		require.NoError(t, err)
		require.Equal(t, "p1", byBadge.ID)
	})

	t.Run("duplicate badge is ErrAlreadyExists", func(t *testing.T) {
		dup := newPersonnel("p2", "SP-1001", time.Now().UTC())
		require.ErrorIs(t, st.Personnel().CreatePersonnel(ctx, dup), store.ErrAlreadyExists)
	})

	t.Run("update", func(t *testing.T) {
		updated := created
		updated.Rank = domain.RankInspector
		updated.Station = "Saddar"
		updated.IsActive = false
		updated.UpdatedAt = time.Now().UTC()
		require.NoError(t, st.Personnel().UpdatePersonnel(ctx, updated))

		got, err := st.Personnel().GetPersonnelByID(ctx, "p1")
		require.NoError(t, err)
		require.Equal(t, domain.RankInspector, got.Rank)
		require.Equal(t, "Saddar", got.Station)
		require.False(t, got.IsActive)
	})

	t.Run("update missing record is ErrNotFound", func(t *testing.T) {
		missing := newPersonnel("nope", "SP-9999", time.Now().UTC())
		require.ErrorIs(t, st.Personnel().UpdatePersonnel(ctx, missing), store.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, st.Personnel().DeletePersonnel(ctx, "p1"))

		_, err := st.Personnel().GetPersonnelByID(ctx, "p1")
		require.ErrorIs(t, err, store.ErrNotFound)

		require.ErrorIs(t, st.Personnel().DeletePersonnel(ctx, "p1"), store.ErrNotFound)
	})
}

func TestPersonnelListNewestFirst(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 8, 1, 8, 0, 0, 0, time.UTC)
	for i, id := range []string{"p1", "p2", "p3"} {
		p := newPersonnel(id, "SP-100"+id, base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, st.Personnel().CreatePersonnel(ctx, p))
	}

	list, err := st.Personnel().ListPersonnel(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, "p3", list[0].ID)
	require.Equal(t, "p1", list[2].ID)
}
