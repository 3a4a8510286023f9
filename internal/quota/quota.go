// Package quota enforces per-caller daily scan limits by tier. The check and
// the increment happen atomically so concurrent scans cannot slip past the
// limit together.
package quota

import (
	"fmt"
	"sync"
	"time"
)

// LimitError reports an exhausted daily allowance.
type LimitError struct {
	Tier  string
	Limit int
	Used  int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("daily scan limit reached for tier %q: %d of %d used", e.Tier, e.Used, e.Limit)
}

type usage struct {
	day   string
	count int
}

// Ledger tracks scans consumed per caller per UTC day.
type Ledger struct {
	mu     sync.Mutex
	limits map[string]int
	used   map[string]usage
	now    func() time.Time
}

// NewLedger builds a ledger from tier name to daily limit. A tier missing
// from the map is treated as unlimited.
func NewLedger(limits map[string]int) *Ledger {
	return &Ledger{
		limits: limits,
		used:   make(map[string]usage),
		now:    time.Now,
	}
}

// Consume spends one scan for the caller under the given tier. It returns a
// *LimitError when the day's allowance is already gone; the failed attempt
// itself is not counted. Counters reset when the UTC day rolls over.
func (l *Ledger) Consume(caller, tier string) error {
	limit, limited := l.limits[tier]
	if !limited || limit < 0 {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	day := l.now().UTC().Format("2006-01-02")
	key := caller + "|" + tier
	u := l.used[key]
	if u.day != day {
		u = usage{day: day}
	}
	if u.count >= limit {
		return &LimitError{Tier: tier, Limit: limit, Used: u.count}
	}
	u.count++
	l.used[key] = u
	return nil
}

// Remaining reports how many scans the caller has left today, or -1 for an
// unlimited tier.
func (l *Ledger) Remaining(caller, tier string) int {
	limit, limited := l.limits[tier]
	if !limited || limit < 0 {
		return -1
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	day := l.now().UTC().Format("2006-01-02")
	u := l.used[caller+"|"+tier]
	if u.day != day {
		return limit
	}
	if rem := limit - u.count; rem > 0 {
		return rem
	}
	return 0
}
