package chain

import (
	"context"
	"fmt"
	"log/slog"
	"lummy/internal/session"
	"lummy/internal/status"
	"lummy/models"
	"lummy/monitoring"
	"lummy/utils"
	"time"
)

const providerNotAvailable = "Provider not available"

// Reader performs single-attempt reads against a Source. Every call marks the
// page as loading for its duration and leaves its error message, if any, as
// the page's last error.
type Reader struct {
	source  Source
	page    *session.Page
	breaker *utils.CircuitBreaker
	monitor *monitoring.Monitor
	timeout time.Duration
}

type ReaderOption func(*Reader)

func WithBreaker(cb *utils.CircuitBreaker) ReaderOption {
	return func(r *Reader) { r.breaker = cb }
}

func WithMonitor(m *monitoring.Monitor) ReaderOption {
	return func(r *Reader) { r.monitor = m }
}

// WithReadTimeout bounds each read. Zero leaves reads unbounded.
func WithReadTimeout(d time.Duration) ReaderOption {
	return func(r *Reader) { r.timeout = d }
}

// NewReader wraps source. A nil source yields a reader whose calls fail with
// status.ErrSourceUnavailable.
func NewReader(source Source, page *session.Page, opts ...ReaderOption) *Reader {
	if page == nil {
		page = session.NewPage(session.RoleCustomer)
	}
	r := &Reader{source: source, page: page}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Reader) ListEvents(ctx context.Context) ([]string, error) {
	if r.source == nil {
		return nil, r.unavailable(monitoring.OpListEvents)
	}

	var ids []string
	err := r.read(ctx, monitoring.OpListEvents, func(ctx context.Context) error {
		var err error
		ids, err = r.source.ListEvents(ctx)
		return err
	})
	if err != nil {
		slog.Error("Error getting events", "error", err)
		return nil, fmt.Errorf("%w: list events: %w", status.ErrRead, err)
	}
	return ids, nil
}

func (r *Reader) GetEventDetails(ctx context.Context, id string) (*models.EventDetails, error) {
	if r.source == nil {
		return nil, r.unavailable(monitoring.OpGetEventDetails)
	}

	var details *models.EventDetails
	err := r.read(ctx, monitoring.OpGetEventDetails, func(ctx context.Context) error {
		var err error
		details, err = r.source.GetEventDetails(ctx, id)
		return err
	})
	if err != nil {
		slog.Error("Error getting event details", "event_id", id, "error", err)
		return nil, fmt.Errorf("%w: event %s: %w", status.ErrRead, id, err)
	}
	return details, nil
}

func (r *Reader) unavailable(operation string) error {
	r.page.SetError(providerNotAvailable)
	r.monitor.TrackRead(operation, monitoring.ReadUnavailable, 0)
	return status.ErrSourceUnavailable
}

func (r *Reader) read(ctx context.Context, operation string, call func(ctx context.Context) error) error {
	r.page.BeginRead()
	defer r.page.EndRead()
	r.page.ClearError()

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	start := time.Now()
	var err error
	if r.breaker != nil {
		err = r.breaker.Execute(ctx, call)
	} else {
		err = call(ctx)
	}

	if err != nil {
		r.page.SetError(err.Error())
		r.monitor.TrackRead(operation, monitoring.ReadError, time.Since(start))
		return err
	}
	r.monitor.TrackRead(operation, monitoring.ReadOK, time.Since(start))
	return nil
}
