package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sindh-police/spims/internal/pims/domain"
)

func TestActivitiesRoundTrip(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	a := domain.Activity{
		ID:         "act1",
		UserID:     "u1",
		Action:     "personnel_created",
		EntityType: domain.EntityPersonnel,
		EntityID:   "p1",
		Details:    map[string]any{"badgeNumber": "SP-1001"},
		IPAddress:  "203.0.113.1",
		UserAgent:  "curl/8.0",
		CreatedAt:  time.Now().UTC(),
	}
	require.NoError(t, st.Activities().CreateActivity(ctx, a))

	got, err := st.Activities().ListRecentActivities(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "personnel_created", got[0].Action)
	require.Equal(t, "SP-1001", got[0].Details["badgeNumber"])
	require.Equal(t, "203.0.113.1", got[0].IPAddress)
}

func TestActivitiesNilDetails(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	a := domain.Activity{
		ID:        "act1",
		Action:    "server_started",
		CreatedAt: time.Now().UTC(),
	}
	a.EntityType = domain.EntitySystem
	require.NoError(t, st.Activities().CreateActivity(ctx, a))

	got, err := st.Activities().ListRecentActivities(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].Details)
	require.Empty(t, got[0].Details)
}

func TestActivitiesListRecent(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 8, 1, 8, 0, 0, 0, time.UTC)
	for i, id := range []string{"act1", "act2", "act3"} {
		a := domain.Activity{
			ID:         id,
			Action:     "login",
			EntityType: domain.EntityUser,
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, st.Activities().CreateActivity(ctx, a))
	}

	t.Run("newest first", func(t *testing.T) {
		got, err := st.Activities().ListRecentActivities(ctx, 10)
		require.NoError(t, err)
		require.Len(t, got, 3)
		require.Equal(t, "act3", got[0].ID)
	})

	t.Run("limit is honored", func(t *testing.T) {
		got, err := st.Activities().ListRecentActivities(ctx, 2)
		require.NoError(t, err)
		require.Len(t, got, 2)
		require.Equal(t, "act3", got[0].ID)
		require.Equal(t, "act2", got[1].ID)
	})
}
