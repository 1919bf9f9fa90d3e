package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"lummy/internal/session"
	"lummy/internal/status"
	"lummy/models"
	"lummy/monitoring"
	"slices"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultMaxLookups caps detail lookups per load.
	DefaultMaxLookups = 5

	FallbackNotice = "Using demo data - blockchain connection unavailable"

	defaultEventImage     = "https://images.unsplash.com/photo-1459865264687-595d652de67e"
	defaultCurrency       = "IDRX"
	defaultCategory       = "Event"
	defaultOrganizerName  = "Event Organizer"
	defaultOrganizerAbout = "Event organizer"
)

var errPageUnmounted = errors.New("events loader: page unmounted")

type LoadState int

const (
	StateInit LoadState = iota
	StateLoading
	StatePopulatedLive
	StatePopulatedFallback
)

func (s LoadState) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateLoading:
		return "loading"
	case StatePopulatedLive:
		return "live"
	case StatePopulatedFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

func (s LoadState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// EventReader is the subset of chain.Reader the loader needs.
type EventReader interface {
	ListEvents(ctx context.Context) ([]string, error)
	GetEventDetails(ctx context.Context, id string) (*models.EventDetails, error)
}

// EventsView is what the surrounding page renders.
type EventsView struct {
	State         LoadState      `json:"state"`
	Events        []models.Event `json:"events"`
	Total         int            `json:"total"`
	Loading       bool           `json:"loading"`
	Notice        string         `json:"notice,omitempty"`
	UsingFallback bool           `json:"using_fallback"`
	Filter        EventFilter    `json:"filter"`
	SortBy        SortKey        `json:"sort_by"`
	Categories    []string       `json:"categories"`
	Locations     []string       `json:"locations"`
	Statuses      []string       `json:"statuses"`
}

// EventsLoader fetches the events feed once per page lifetime. It shows either
// the live records or the bundled fallback set, never a mix, and drops any
// result that arrives after the page was unmounted.
type EventsLoader struct {
	reader     EventReader
	page       *session.Page
	fallback   []models.Event
	maxLookups int
	monitor    *monitoring.Monitor
	notifier   FeedNotifier

	mu            sync.RWMutex
	state         LoadState
	events        []models.Event
	notice        string
	usingFallback bool
	filter        EventFilter
	sortBy        SortKey
}

type LoaderOption func(*EventsLoader)

func WithFallback(events []models.Event) LoaderOption {
	return func(l *EventsLoader) { l.fallback = events }
}

func WithMaxLookups(n int) LoaderOption {
	return func(l *EventsLoader) {
		if n > 0 {
			l.maxLookups = n
		}
	}
}

func WithLoaderMonitor(m *monitoring.Monitor) LoaderOption {
	return func(l *EventsLoader) { l.monitor = m }
}

func WithFeedNotifier(n FeedNotifier) LoaderOption {
	return func(l *EventsLoader) { l.notifier = n }
}

func NewEventsLoader(reader EventReader, page *session.Page, opts ...LoaderOption) *EventsLoader {
	if page == nil {
		page = session.NewPage(session.RoleCustomer)
	}
	l := &EventsLoader{
		reader:     reader,
		page:       page,
		fallback:   models.FallbackEvents(),
		maxLookups: DefaultMaxLookups,
		sortBy:     DefaultSort,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Mount attaches the loader to its page and starts the one-time fetch. The
// returned channel is closed once the fetch has settled.
func (l *EventsLoader) Mount(ctx context.Context) <-chan struct{} {
	l.page.Mount()
	done := make(chan struct{})
	go func() {
		defer close(done)
		l.Load(ctx)
	}()
	return done
}

// Unmount detaches the loader. In-flight reads keep running but their results
// are ignored.
func (l *EventsLoader) Unmount() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.page.Unmount()
}

// Load runs the fetch on the calling goroutine. It does nothing unless the
// page is mounted and the loader has not loaded before.
func (l *EventsLoader) Load(ctx context.Context) {
	l.mu.Lock()
	if !l.page.Mounted() || l.state != StateInit {
		l.mu.Unlock()
		return
	}
	l.state = StateLoading
	l.notice = ""
	l.mu.Unlock()

	slog.Info("Attempting to fetch events from event source")
	events, err := l.fetchLive(ctx)
	if errors.Is(err, errPageUnmounted) {
		slog.Debug("Page unmounted during event fetch, dropping result")
		return
	}
	if err != nil {
		slog.Warn("Event source fetch failed, using fallback data", "error", err)
		l.populate(ctx, l.fallbackCopy(), true)
		return
	}
	l.populate(ctx, events, false)
}

func (l *EventsLoader) fetchLive(ctx context.Context) ([]models.Event, error) {
	ids, err := l.reader.ListEvents(ctx)
	if !l.page.Mounted() {
		return nil, errPageUnmounted
	}
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no events found on chain", status.ErrEmptyResult)
	}

	slog.Info("Found chain events", "count", len(ids))
	if len(ids) > l.maxLookups {
		ids = ids[:l.maxLookups]
	}

	results := make([]*models.Event, len(ids))
	var g errgroup.Group
	for i, id := range ids {
		g.Go(func() error {
			details, err := l.reader.GetEventDetails(ctx, id)
			if err != nil {
				slog.Info("Failed to get details for event", "event_id", id, "error", err)
				return nil
			}
			if details == nil {
				return nil
			}
			event := ToDisplayEvent(id, details)
			results[i] = &event
			return nil
		})
	}
	// lookups never return errors; a failed lookup is just a missing record
	_ = g.Wait()

	if !l.page.Mounted() {
		return nil, errPageUnmounted
	}

	events := make([]models.Event, 0, len(results))
	for _, event := range results {
		if event != nil {
			events = append(events, *event)
		}
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("%w: no valid event data found", status.ErrEmptyResult)
	}
	return events, nil
}

func (l *EventsLoader) populate(ctx context.Context, events []models.Event, fallback bool) {
	l.mu.Lock()
	if !l.page.Mounted() {
		l.mu.Unlock()
		slog.Debug("Page unmounted before feed was stored, dropping result")
		return
	}

	l.events = events
	l.usingFallback = fallback
	outcome := monitoring.OutcomeLive
	if fallback {
		l.state = StatePopulatedFallback
		l.notice = FallbackNotice
		outcome = monitoring.OutcomeFallback
	} else {
		l.state = StatePopulatedLive
		l.notice = ""
	}
	notice := l.notice
	l.mu.Unlock()

	l.monitor.TrackFeedLoad(outcome, len(events))
	if l.notifier != nil {
		fs := FeedStatus{Origin: outcome, Records: len(events), Notice: notice, At: time.Now()}
		if err := l.notifier.PublishFeedStatus(ctx, fs); err != nil {
			slog.Warn("Failed to publish feed status", "origin", outcome, "error", err)
		}
	}
}

func (l *EventsLoader) fallbackCopy() []models.Event {
	events := make([]models.Event, len(l.fallback))
	copy(events, l.fallback)
	return events
}

// ToDisplayEvent maps a registry record onto the display shape. Fields the
// registry does not carry get fixed defaults.
func ToDisplayEvent(id string, details *models.EventDetails) models.Event {
	return models.Event{
		ID:          id,
		Title:       details.Name,
		Description: details.Description,
		Date:        time.Unix(details.Date, 0).UTC(),
		Location:    details.Venue,
		Venue:       details.Venue,
		ImageURL:    defaultEventImage,
		Price:       decimal.Zero,
		Currency:    defaultCurrency,
		Category:    defaultCategory,
		Status:      models.EventStatusAvailable,
		Organizer: models.Organizer{
			ID:          details.Organizer,
			Name:        defaultOrganizerName,
			Verified:    true,
			Description: defaultOrganizerAbout,
		},
		TicketsAvailable: 0,
	}
}

func (l *EventsLoader) State() LoadState {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// Events returns the stored record set, unfiltered.
func (l *EventsLoader) Events() []models.Event {
	l.mu.RLock()
	defer l.mu.RUnlock()
	events := make([]models.Event, len(l.events))
	copy(events, l.events)
	return events
}

func (l *EventsLoader) SetFilter(f EventFilter) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.filter = f
}

func (l *EventsLoader) SetSort(key SortKey) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sortBy = key
}

// ResetFilters clears every filter; the sort order is kept.
func (l *EventsLoader) ResetFilters() {
	l.SetFilter(EventFilter{})
}

func (l *EventsLoader) Snapshot() EventsView {
	l.mu.RLock()
	defer l.mu.RUnlock()

	visible := SortEvents(ApplyFilter(l.events, l.filter), l.sortBy)
	return EventsView{
		State:         l.state,
		Events:        visible,
		Total:         len(visible),
		Loading:       l.state == StateInit || l.state == StateLoading,
		Notice:        l.notice,
		UsingFallback: l.usingFallback,
		Filter:        l.filter,
		SortBy:        l.sortBy,
		Categories:    uniqueValues(visible, func(e models.Event) string { return e.Category }),
		Locations:     uniqueValues(visible, func(e models.Event) string { return e.Location }),
		Statuses:      slices.Clone(models.EventStatuses),
	}
}
