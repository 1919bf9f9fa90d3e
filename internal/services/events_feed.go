package services

import (
	"context"
	"lummy/internal/chain"
	"lummy/internal/session"
	"lummy/monitoring"
	"lummy/utils"
	"time"
)

// EventsFeed builds one page, reader and loader per call, so each HTTP
// request or CLI run gets its own page lifetime. The source, breaker and
// notifier are shared.
type EventsFeed struct {
	Source      chain.Source
	Breaker     *utils.CircuitBreaker
	Monitor     *monitoring.Monitor
	Notifier    FeedNotifier
	MaxLookups  int
	ReadTimeout time.Duration
}

// Load mounts a fresh loader, waits for it to settle and returns the view with
// the filter and sort applied. If ctx ends first the view is returned as it
// stands, and the page is unmounted so late results are dropped.
func (f *EventsFeed) Load(ctx context.Context, role session.Role, filter EventFilter, sortBy SortKey) EventsView {
	page := session.NewPage(role)

	readerOpts := []chain.ReaderOption{chain.WithMonitor(f.Monitor)}
	if f.Breaker != nil {
		readerOpts = append(readerOpts, chain.WithBreaker(f.Breaker))
	}
	if f.ReadTimeout > 0 {
		readerOpts = append(readerOpts, chain.WithReadTimeout(f.ReadTimeout))
	}
	reader := chain.NewReader(f.Source, page, readerOpts...)

	loaderOpts := []LoaderOption{
		WithMaxLookups(f.MaxLookups),
		WithLoaderMonitor(f.Monitor),
	}
	if f.Notifier != nil {
		loaderOpts = append(loaderOpts, WithFeedNotifier(f.Notifier))
	}
	loader := NewEventsLoader(reader, page, loaderOpts...)
	defer loader.Unmount()

	select {
	case <-loader.Mount(ctx):
	case <-ctx.Done():
	}

	loader.SetFilter(filter)
	if sortBy != "" {
		loader.SetSort(sortBy)
	}
	return loader.Snapshot()
}
