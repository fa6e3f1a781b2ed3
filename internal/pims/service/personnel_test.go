package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sindh-police/spims/internal/pims/domain"
	"github.com/sindh-police/spims/internal/pims/service"
	"github.com/sindh-police/spims/internal/pims/store/drivers/sqlite"
)

func newPersonnelService(t *testing.T) *service.PersonnelService {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	return service.NewPersonnelService(st)
}

func createPersonnelParams(badge string) service.CreatePersonnelParams {
	return service.CreatePersonnelParams{
		FullName:          "SI Bilal Ahmed",
		Rank:              domain.RankSI,
		BadgeNumber:       badge,
		District:          "Karachi South",
		Station:           "Clifton",
		DateOfJoining:     time.Date(2018, 3, 1, 0, 0, 0, 0, time.UTC),
		CurrentAssignment: "patrol",
		ContactNumber:     "+923001234567",
	}
}

func TestPersonnelCreate(t *testing.T) {
	t.Run("valid record", func(t *testing.T) {
		svc := newPersonnelService(t)

		rec, err := svc.Create(context.Background(), createPersonnelParams("SP-1001"))
		require.NoError(t, err)
		require.NotEmpty(t, rec.ID)
		require.True(t, rec.IsActive)
	})

	t.Run("unknown rank", func(t *testing.T) {
		svc := newPersonnelService(t)

		p := createPersonnelParams("SP-1001")
		p.Rank = "general"
		_, err := svc.Create(context.Background(), p)

		var verr *service.ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("contact number formats", func(t *testing.T) {
		svc := newPersonnelService(t)

		valid := []string{"+923001234567", "03001234567", "3001234567"}
		for i, number := range valid {
			p := createPersonnelParams(fmt.Sprintf("SP-10%02d", i))
			p.ContactNumber = number
			_, err := svc.Create(context.Background(), p)
			require.NoError(t, err, number)
		}

		p := createPersonnelParams("SP-2001")
		p.ContactNumber = "+1-555-0100"
		_, err := svc.Create(context.Background(), p)
		var verr *service.ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("future joining date", func(t *testing.T) {
		svc := newPersonnelService(t)

		p := createPersonnelParams("SP-1001")
		p.DateOfJoining = time.Now().Add(48 * time.Hour)
		_, err := svc.Create(context.Background(), p)

		var verr *service.ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("duplicate badge", func(t *testing.T) {
		svc := newPersonnelService(t)
		ctx := context.Background()

		_, err := svc.Create(ctx, createPersonnelParams("SP-1001"))
		require.NoError(t, err)

		_, err = svc.Create(ctx, createPersonnelParams("SP-1001"))
		var dup *service.DuplicateError
		require.ErrorAs(t, err, &dup)
		require.Equal(t, "badgeNumber", dup.Field)
	})
}

func TestPersonnelUpdate(t *testing.T) {
	svc := newPersonnelService(t)
	ctx := context.Background()

	rec, err := svc.Create(ctx, createPersonnelParams("SP-1001"))
	require.NoError(t, err)

	t.Run("partial update touches only set fields", func(t *testing.T) {
		station := "Saddar"
		inactive := false
		updated, err := svc.Update(ctx, rec.ID, service.UpdatePersonnelParams{
			Station:  &station,
			IsActive: &inactive,
		})
		require.NoError(t, err)
		require.Equal(t, "Saddar", updated.Station)
		require.False(t, updated.IsActive)
		require.Equal(t, rec.Rank, updated.Rank)
		require.Equal(t, rec.District, updated.District)
	})

	t.Run("invalid rank in update", func(t *testing.T) {
		rank := "general"
		_, err := svc.Update(ctx, rec.ID, service.UpdatePersonnelParams{Rank: &rank})
		var verr *service.ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("missing record", func(t *testing.T) {
		name := "Someone"
		_, err := svc.Update(ctx, "nope", service.UpdatePersonnelParams{FullName: &name})
		require.ErrorIs(t, err, service.ErrNotFound)
	})
}

func TestPersonnelDelete(t *testing.T) {
	svc := newPersonnelService(t)
	ctx := context.Background()

	rec, err := svc.Create(ctx, createPersonnelParams("SP-1001"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, rec.ID))
	require.ErrorIs(t, svc.Delete(ctx, rec.ID), service.ErrNotFound)

	_, err = svc.Get(ctx, rec.ID)
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestActivityRecorder(t *testing.T) {
	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	rec := service.NewActivityRecorder(st)
	rec.Start()

	rec.Record(domain.Activity{
		UserID:     "u1",
		Action:     "login",
		EntityType: domain.EntityUser,
	})
	rec.Record(domain.Activity{
		UserID:     "u1",
		Action:     "personnel_created",
		EntityType: domain.EntityPersonnel,
		EntityID:   "p1",
	})

	// Stop drains the queue, so everything recorded is visible afterwards.
	rec.Stop()

	entries, err := service.NewActivityService(st).ListRecent(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		require.NotEmpty(t, e.ID)
		require.False(t, e.CreatedAt.IsZero())
	}
}
