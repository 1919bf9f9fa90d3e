package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"lummy/internal/services"
	"lummy/internal/session"

	"github.com/pocketbase/pocketbase/core"
)

// RoleHeader carries the active user role of the calling page.
const RoleHeader = "X-Lummy-Role"

type EventsHandler struct {
	feed *services.EventsFeed
}

func NewEventsHandler(feed *services.EventsFeed) *EventsHandler {
	return &EventsHandler{feed: feed}
}

// ListEvents loads the feed for this request and returns the rendered view.
// It always answers 200: an unreachable source yields the fallback set.
func (h *EventsHandler) ListEvents(e *core.RequestEvent) error {
	role := session.ParseRole(e.Request.Header.Get(RoleHeader))
	filter, sortBy := parseEventQuery(e.Request.URL.Query())

	view := h.feed.Load(e.Request.Context(), role, filter, sortBy)
	return e.JSON(http.StatusOK, view)
}

func parseEventQuery(q url.Values) (services.EventFilter, services.SortKey) {
	filter := services.EventFilter{
		Search:   strings.TrimSpace(q.Get("search")),
		Category: allToEmpty(q.Get("category")),
		Location: allToEmpty(q.Get("location")),
		Date:     strings.TrimSpace(q.Get("date")),
		Status:   allToEmpty(q.Get("status")),
	}
	return filter, services.SortKey(strings.TrimSpace(q.Get("sort")))
}

// allToEmpty treats the "all" dropdown option as no filter.
func allToEmpty(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, "all") {
		return ""
	}
	return v
}
