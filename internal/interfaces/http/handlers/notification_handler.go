package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/turtacn/ScholarAI/internal/application/notifier"
	"github.com/turtacn/ScholarAI/internal/domain/notification"
	"github.com/turtacn/ScholarAI/internal/infrastructure/monitoring/logging"
)

// NotificationHandler serves the notification list, the unread badge and the
// manual scan trigger.
type NotificationHandler struct {
	notifier notifier.Service
	logger   logging.Logger
	clock    func() time.Time
}

// NewNotificationHandler creates a NotificationHandler.  clock dates manual
// scans; nil means time.Now.
func NewNotificationHandler(svc notifier.Service, logger logging.Logger, clock func() time.Time) *NotificationHandler {
	if clock == nil {
		clock = time.Now
	}
	return &NotificationHandler{notifier: svc, logger: logger, clock: clock}
}

// NotificationListResponse is the body of GET /notifications.
type NotificationListResponse struct {
	Items  []notification.Notification `json:"items"`
	Unread int                         `json:"unread"`
}

// UnreadCountResponse is the body of GET /notifications/unread-count.
type UnreadCountResponse struct {
	Unread int `json:"unread"`
}

// List handles GET /api/v1/notifications.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	items := h.notifier.List(r.Context())
	if items == nil {
		items = []notification.Notification{}
	}
	writeJSON(w, http.StatusOK, NotificationListResponse{
		Items:  items,
		Unread: h.notifier.UnreadCount(r.Context()),
	})
}

// UnreadCount handles GET /api/v1/notifications/unread-count.
func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, UnreadCountResponse{Unread: h.notifier.UnreadCount(r.Context())})
}

// MarkRead handles POST /api/v1/notifications/{id}/read.  Unknown ids are a
// silent no-op.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	h.notifier.MarkAsRead(r.Context(), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// Scan handles POST /api/v1/admin/notifications/scan.
func (h *NotificationHandler) Scan(w http.ResponseWriter, r *http.Request) {
	res, err := h.notifier.Scan(r.Context(), h.clock())
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}
	if res.Created == nil {
		res.Created = []notification.Notification{}
	}
	logging.FromContext(r.Context(), h.logger).Info("manual deadline scan",
		logging.Int("created", len(res.Created)), logging.Int("unread", res.Unread))
	writeJSON(w, http.StatusOK, res)
}

//Personal.AI order the ending
