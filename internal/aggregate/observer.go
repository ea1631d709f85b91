package aggregate

import (
	"sync"

	"go.uber.org/zap"
)

// Observer receives per-source progress events during a run. It is injected
// by the caller; the aggregator never owns logging state of its own.
type Observer interface {
	Attempt(platform string)
	Success(platform string, count int)
	Failure(platform string, err error)
	Summary(query, runID string, total int)
}

// ObserverStats summarizes one or more runs as seen by a LogObserver.
type ObserverStats struct {
	Attempted    []string
	Succeeded    []string
	Failed       []string
	TotalScraped int
	LastRunID    string
}

// LogObserver logs events through zap and keeps a running tally. Safe for
// concurrent use.
type LogObserver struct {
	mu    sync.Mutex
	log   *zap.SugaredLogger
	stats ObserverStats
}

func NewLogObserver(log *zap.SugaredLogger) *LogObserver {
	return &LogObserver{log: log}
}

func (o *LogObserver) Attempt(platform string) {
	o.mu.Lock()
	o.stats.Attempted = append(o.stats.Attempted, platform)
	o.mu.Unlock()
	o.log.Infow("scraping source", "platform", platform)
}

func (o *LogObserver) Success(platform string, count int) {
	o.mu.Lock()
	o.stats.Succeeded = append(o.stats.Succeeded, platform)
	o.stats.TotalScraped += count
	o.mu.Unlock()
	o.log.Infow("source done", "platform", platform, "jobs", count)
}

func (o *LogObserver) Failure(platform string, err error) {
	o.mu.Lock()
	o.stats.Failed = append(o.stats.Failed, platform)
	o.mu.Unlock()
	o.log.Warnw("source failed", "platform", platform, "error", err)
}

func (o *LogObserver) Summary(query, runID string, total int) {
	o.mu.Lock()
	o.stats.LastRunID = runID
	o.mu.Unlock()
	o.log.Infow("search complete", "query", query, "run_id", runID, "jobs", total)
}

// Stats returns a copy of the tally.
func (o *LogObserver) Stats() ObserverStats {
	o.mu.Lock()
	defer o.mu.Unlock()
	s := ObserverStats{
		Attempted:    append([]string(nil), o.stats.Attempted...),
		Succeeded:    append([]string(nil), o.stats.Succeeded...),
		Failed:       append([]string(nil), o.stats.Failed...),
		TotalScraped: o.stats.TotalScraped,
		LastRunID:    o.stats.LastRunID,
	}
	return s
}

// NopObserver discards all events.
type NopObserver struct{}

func (NopObserver) Attempt(string)              {}
func (NopObserver) Success(string, int)         {}
func (NopObserver) Failure(string, error)       {}
func (NopObserver) Summary(string, string, int) {}
