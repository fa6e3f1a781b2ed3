package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/sindh-police/spims/internal/pims/domain"
	"github.com/sindh-police/spims/internal/pims/store"
	"github.com/sindh-police/spims/pkg/idx"
)

// ActivityRecorder writes audit-trail entries off the request path. Record
// never blocks and never fails the caller: a full queue or a failed insert is
// logged and dropped.
type ActivityRecorder struct {
	store store.Store

	queue chan domain.Activity
	wg    sync.WaitGroup
	once  sync.Once

	Now func() time.Time
}

const activityQueueSize = 256

func NewActivityRecorder(st store.Store) *ActivityRecorder {
	return &ActivityRecorder{
		store: st,
		queue: make(chan domain.Activity, activityQueueSize),
		Now:   time.Now,
	}
}

// Start launches the background writer. Call once at application startup.
func (r *ActivityRecorder) Start() {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		for a := range r.queue {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := r.store.Activities().CreateActivity(ctx, a); err != nil {
				slog.Error("failed to record activity",
					slog.String("action", a.Action),
					slog.String("user_id", a.UserID),
					slog.Any("error", err))
			}
			cancel()
		}
	}()
}

// Stop closes the queue and waits for buffered entries to drain.
func (r *ActivityRecorder) Stop() {
	r.once.Do(func() { close(r.queue) })
	r.wg.Wait()
}

// Record enqueues an audit entry. ID and CreatedAt are filled in here.
func (r *ActivityRecorder) Record(a domain.Activity) {
	a.ID = idx.New().String()
	a.CreatedAt = r.Now().UTC()

	select {
	case r.queue <- a:
	default:
		slog.Warn("activity queue full, dropping entry",
			slog.String("action", a.Action),
			slog.String("user_id", a.UserID))
	}
}

// ActivityService serves the audit-trail read side.
type ActivityService struct {
	store store.Store
}

func NewActivityService(st store.Store) *ActivityService {
	return &ActivityService{store: st}
}

const defaultActivityLimit = 50

// ListRecent returns the newest audit entries, capped at limit (default 50,
// maximum 200).
func (s *ActivityService) ListRecent(ctx context.Context, limit int) ([]domain.Activity, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	if limit > 200 {
		limit = 200
	}
	return s.store.Activities().ListRecentActivities(ctx, limit)
}
