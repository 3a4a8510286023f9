// Package aggregate fans a query out across the marketplace adapters under a
// fixed concurrency cap and merges the results. One failing source never
// affects another; failures become per-source status records instead.
package aggregate

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/asset"
	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/sources"
)

// SourceStatus records how one adapter fared during a scan run.
type SourceStatus struct {
	Name    string `json:"name"`
	Success bool   `json:"success"`
	Count   int    `json:"count"`
	Error   string `json:"error,omitempty"`
}

// Result is one completed scan run across all enabled sources.
type Result struct {
	RunID    string         `json:"run_id"`
	Query    string         `json:"query"`
	Assets   []asset.Asset  `json:"assets"`
	Statuses []SourceStatus `json:"sources"`
	Elapsed  time.Duration  `json:"-"`
}

// Limiter is a counting semaphore over a permit channel. Acquire blocks until
// a permit is free or the context is done; admission order is the channel's
// FIFO order.
type Limiter struct {
	permits chan struct{}
}

// NewLimiter builds a limiter admitting at most n holders at once. n < 1 is
// treated as 1.
func NewLimiter(n int) *Limiter {
	if n < 1 {
		n = 1
	}
	return &Limiter{permits: make(chan struct{}, n)}
}

func (l *Limiter) Acquire(ctx context.Context) error {
	select {
	case l.permits <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *Limiter) Release() {
	<-l.permits
}

// ScanAll runs every adapter against the query, at most limit at a time, and
// returns the merged assets sorted by user count descending. The status slice
// preserves adapter registry order. A cancelled context marks the remaining
// adapters as failed rather than returning an error.
func ScanAll(ctx context.Context, adapters []sources.Adapter, query string, limit int, log *slog.Logger) Result {
	if log == nil {
		log = slog.Default()
	}
	start := time.Now()
	res := Result{
		RunID:    uuid.NewString(),
		Query:    query,
		Statuses: make([]SourceStatus, len(adapters)),
	}
	log.Info("scan started", "run_id", res.RunID, "query", query, "sources", len(adapters), "concurrency", limit)

	lim := NewLimiter(limit)
	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for i, a := range adapters {
		wg.Add(1)
		go func(i int, a sources.Adapter) {
			defer wg.Done()

			st := SourceStatus{Name: a.Name()}
			if err := lim.Acquire(ctx); err != nil {
				st.Error = err.Error()
				res.Statuses[i] = st
				return
			}
			defer lim.Release()

			found, err := a.Fetch(ctx, query)
			if err != nil {
				st.Error = err.Error()
				log.Warn("source failed", "run_id", res.RunID, "source", a.Name(), "error", err)
			} else {
				st.Success = true
				st.Count = len(found)
				log.Debug("source done", "run_id", res.RunID, "source", a.Name(), "count", len(found))
			}
			res.Statuses[i] = st

			mu.Lock()
			res.Assets = append(res.Assets, found...)
			mu.Unlock()
		}(i, a)
	}
	wg.Wait()

	sort.SliceStable(res.Assets, func(a, b int) bool {
		if res.Assets[a].UserCount != res.Assets[b].UserCount {
			return res.Assets[a].UserCount > res.Assets[b].UserCount
		}
		return res.Assets[a].Name < res.Assets[b].Name
	})
	res.Elapsed = time.Since(start)
	log.Info("scan finished", "run_id", res.RunID, "assets", len(res.Assets), "elapsed", res.Elapsed)
	return res
}

// Succeeded counts the sources that completed without error.
func (r Result) Succeeded() int {
	n := 0
	for _, s := range r.Statuses {
		if s.Success {
			n++
		}
	}
	return n
}
