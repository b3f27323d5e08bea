package scheduler

import (
	"context"
	"time"

	"github.com/aristath/spacefolio/internal/modules/portfolio"
)

// refreshTimeout bounds one whole refresh cycle. Generous compared to
// the per-exchange client timeouts (10s and 15s) which run in parallel.
const refreshTimeout = 30 * time.Second

// RefreshPortfolioJob recomputes the cached portfolio summary.
type RefreshPortfolioJob struct {
	cache *portfolio.Cache
}

// NewRefreshPortfolioJob creates the periodic cache refresh job.
func NewRefreshPortfolioJob(cache *portfolio.Cache) *RefreshPortfolioJob {
	return &RefreshPortfolioJob{cache: cache}
}

// Name implements Job
func (j *RefreshPortfolioJob) Name() string {
	return "refresh_portfolio"
}

// Run implements Job. A failed refresh leaves the previously cached
// summary in place; the error is only surfaced to the scheduler log.
func (j *RefreshPortfolioJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	return j.cache.Refresh(ctx)
}
