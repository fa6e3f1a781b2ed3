package http

import (
	"net/http"

	"github.com/sindh-police/spims/internal/pims/domain"
	"github.com/sindh-police/spims/internal/pims/service"
	"github.com/sindh-police/spims/pkg/httpx"
)

// recordActivity enqueues a best-effort audit entry for the request. A nil
// recorder (tests) is a no-op.
func recordActivity(
	rec *service.ActivityRecorder,
	r *http.Request,
	userID, action, entityType, entityID string,
	details map[string]any,
) {
	if rec == nil {
		return
	}
	rec.Record(domain.Activity{
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
		IPAddress:  httpx.IPKeyExtractor(r),
		UserAgent:  r.UserAgent(),
	})
}
