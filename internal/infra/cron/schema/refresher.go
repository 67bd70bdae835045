package schema

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/openrds/depositsync/internal/config"
	"github.com/openrds/depositsync/internal/domain/deposit"
	"github.com/openrds/depositsync/internal/domain/tracing"
)

// A Refresher keeps an in-memory copy of the remote metadata schema warm so
// that the shell can keep serving it across remote hiccups. The cache never
// outlives the process; offline operation is out of scope.
type Refresher interface {
	deposit.SchemaCache

	// Start begins periodic background refreshes.
	Start()

	// Stop stops the periodic refreshes. Does not block on a running fetch.
	Stop()
}

type refresherImpl struct {
	cron *cron.Cron

	syncService deposit.Service

	tracer tracing.Tracer

	interval time.Duration

	mu        sync.RWMutex
	cached    *deposit.Schema
	fetchedAt time.Time

	getUTC func() time.Time
}

// NewRefresher returns the default Refresher implementation, which delegates
// the periodic part to the standard robfig/cron.
func NewRefresher(syncService deposit.Service, tracer tracing.Tracer, conf config.SchemaRefresh) Refresher {
	return &refresherImpl{
		cron:        cron.New(cron.WithLocation(time.UTC)),
		syncService: syncService,
		tracer:      tracer,
		interval:    conf.RunInterval,
		getUTC: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func (r *refresherImpl) Start() {
	log.Info().
		Dur("interval", r.interval).
		Msg("Scheduling periodic schema refresh to Cron")
	_, err := r.cron.AddFunc("@every "+r.interval.String(), func() {
		tx := r.tracer.BackgroundTx("schema-refresh")
		defer tx.End()
		if err := r.refresh(tx.Context()); err != nil {
			log.Error().Err(err).Msg("Periodic schema refresh failed, keeping previous copy")
		}
	})
	if err != nil {
		// only reachable if the interval renders into an invalid cron expression
		log.Error().Err(err).Msg("Could not schedule the schema refresh job")
		return
	}
	r.cron.Start()
}

func (r *refresherImpl) Stop() {
	r.cron.Stop()
}

// Get returns the schema document, fetching live first and falling back to
// the cached copy when the remote cannot be reached. The bool is true when
// the returned document is the stale fallback.
func (r *refresherImpl) Get(ctx context.Context) (*deposit.Schema, bool, error) {
	if err := r.refresh(ctx); err != nil {
		r.mu.RLock()
		cached := r.cached
		fetchedAt := r.fetchedAt
		r.mu.RUnlock()
		if cached == nil {
			return nil, false, err
		}
		log.Warn().
			Err(err).
			Time("fetched_at", fetchedAt).
			Msg("Serving stale schema document, live fetch failed")
		return cached, true, nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cached, false, nil
}

func (r *refresherImpl) refresh(ctx context.Context) error {
	fetched, err := r.syncService.FetchSchema(ctx)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.cached = fetched
	r.fetchedAt = r.getUTC()
	r.mu.Unlock()
	if log.Debug().Enabled() {
		log.Debug().
			Str("kernel_version", fetched.KernelVersion).
			Msg("Refreshed schema document")
	}
	return nil
}
