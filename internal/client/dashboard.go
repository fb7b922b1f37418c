package client

import (
	"context"
	"net/url"
	"sync"

	"packbill-backoffice/internal/client/notify"
	"packbill-backoffice/internal/pkg/timeseries"

	"golang.org/x/sync/errgroup"
)

// Snapshot is one consistent view of the dashboard data
type Snapshot struct {
	TotalRevenue    float64
	ActiveCustomers int64
	TotalCustomers  int64
	ActiveUsers     int
	InactiveUsers   int
	Series          Stats
	RecentPayments  []Payment
	RecentLogs      []LogEntry
}

// Dashboard composes the back-office overview: concurrent fetches
// joined all-or-nothing, so a partial failure never mixes fresh and
// stale sections. The previous snapshot stays visible on failure.
type Dashboard struct {
	session *Session
	bus     *notify.Bus

	mu          sync.Mutex
	granularity timeseries.Granularity
	snapshot    *Snapshot
}

// NewDashboard creates a dashboard over an authenticated session
func NewDashboard(session *Session, bus *notify.Bus) *Dashboard {
	return &Dashboard{
		session:     session,
		bus:         bus,
		granularity: timeseries.Monthly,
	}
}

// SetGranularity selects the chart granularity for subsequent refreshes
func (d *Dashboard) SetGranularity(g timeseries.Granularity) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if g.Valid() {
		d.granularity = g
	}
}

// Snapshot returns the last successful snapshot, or nil
func (d *Dashboard) Snapshot() *Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snapshot
}

// Refresh fetches all dashboard sections concurrently. If any fetch
// fails the whole refresh fails and the previous snapshot is kept.
func (d *Dashboard) Refresh(ctx context.Context) (*Snapshot, error) {
	d.mu.Lock()
	granularity := d.granularity
	d.mu.Unlock()

	api := d.session.Client()
	isAdmin := d.session.IsAdmin()
	next := &Snapshot{}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var stats Stats
		query := url.Values{"granularity": {string(granularity)}}
		if err := api.Get(ctx, "/payments/stats/", query, &stats); err != nil {
			return err
		}
		next.Series = stats
		for _, total := range stats.Totals {
			next.TotalRevenue += total
		}
		return nil
	})

	g.Go(func() error {
		var page Envelope[Payment]
		query := url.Values{"page": {"1"}, "page_size": {"5"}}
		if err := api.Get(ctx, "/payments/", query, &page); err != nil {
			return err
		}
		next.RecentPayments = page.Results
		return nil
	})

	g.Go(func() error {
		var page Envelope[Customer]
		query := url.Values{"page": {"1"}, "page_size": {"1"}}
		if err := api.Get(ctx, "/customers/", query, &page); err != nil {
			return err
		}
		next.TotalCustomers = page.Count

		query.Set("is_active", "true")
		if err := api.Get(ctx, "/customers/", query, &page); err != nil {
			return err
		}
		next.ActiveCustomers = page.Count
		return nil
	})

	// Employees do not see staff accounts or the audit trail
	if isAdmin {
		g.Go(func() error {
			var users []User
			if err := api.Get(ctx, "/users/", nil, &users); err != nil {
				return err
			}
			for _, user := range users {
				if user.IsActive {
					next.ActiveUsers++
				} else {
					next.InactiveUsers++
				}
			}
			return nil
		})

		g.Go(func() error {
			var page Envelope[LogEntry]
			query := url.Values{"page": {"1"}, "page_size": {"5"}}
			if err := api.Get(ctx, "/logs/", query, &page); err != nil {
				return err
			}
			next.RecentLogs = page.Results
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if d.bus != nil {
			d.bus.Error("Failed to refresh dashboard: " + err.Error())
		}
		return nil, err
	}

	d.mu.Lock()
	d.snapshot = next
	d.mu.Unlock()

	return next, nil
}
