package aggregate

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"jobmatch-engine/internal/domain"
	"jobmatch-engine/internal/scrape/types"
	"jobmatch-engine/internal/validate"
)

const (
	defaultKeyword = "developer"
	quotaFloor     = 5
)

// Aggregator drives one aggregation batch over an ordered adapter list. The
// declared order is both the invocation order and the dedup priority.
type Aggregator struct {
	adapters   []types.Adapter
	validator  *validate.Validator // nil disables validation
	obs        Observer
	delay      time.Duration
	concurrent bool
}

type Option func(*Aggregator)

// WithDelay sets the pause between sequential adapter invocations.
func WithDelay(d time.Duration) Option {
	return func(a *Aggregator) { a.delay = d }
}

// WithConcurrency fans adapters out in parallel. Results are still merged in
// declared adapter order, so the output matches sequential mode.
func WithConcurrency(on bool) Option {
	return func(a *Aggregator) { a.concurrent = on }
}

func New(adapters []types.Adapter, validator *validate.Validator, obs Observer, opts ...Option) *Aggregator {
	a := &Aggregator{
		adapters:  adapters,
		validator: validator,
		obs:       obs,
		delay:     500 * time.Millisecond,
	}
	if a.obs == nil {
		a.obs = NopObserver{}
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// DeriveKeywords tokenizes a raw query into search keywords: whitespace
// tokens longer than two characters, or a default when nothing qualifies.
func DeriveKeywords(query string) []string {
	var keywords []string
	for _, tok := range strings.Fields(query) {
		if len([]rune(tok)) > 2 {
			keywords = append(keywords, tok)
		}
	}
	if len(keywords) == 0 {
		keywords = []string{defaultKeyword}
	}
	return keywords
}

// Run executes one batch and returns at most maxJobs validated, deduplicated
// records with ids 1..N. It never returns an error: a run where every source
// fails yields an empty slice.
func (a *Aggregator) Run(ctx context.Context, query, location string, maxJobs int) []domain.Job {
	q := types.Query{
		Raw:      query,
		Keywords: DeriveKeywords(query),
		Location: location,
		Limit:    perAdapterQuota(maxJobs),
	}

	adapters := a.applicable(location)

	var pool []domain.Job
	if a.concurrent {
		pool = a.collectConcurrent(ctx, adapters, q)
	} else {
		pool = a.collectSequential(ctx, adapters, q)
	}

	result := Dedupe(pool)
	if maxJobs < 0 {
		maxJobs = 0
	}
	if len(result) > maxJobs {
		result = result[:maxJobs]
	}
	for i := range result {
		result[i].ID = i + 1
	}

	a.obs.Summary(query, uuid.NewString(), len(result))
	return result
}

func perAdapterQuota(maxJobs int) int {
	quota := maxJobs / 4
	if quota < quotaFloor {
		quota = quotaFloor
	}
	return quota
}

// applicable filters out region-gated adapters that don't serve the location.
func (a *Aggregator) applicable(location string) []types.Adapter {
	out := make([]types.Adapter, 0, len(a.adapters))
	for _, ad := range a.adapters {
		if gate, ok := ad.(types.RegionGate); ok && !gate.InRegion(location) {
			continue
		}
		out = append(out, ad)
	}
	return out
}

func (a *Aggregator) collectSequential(ctx context.Context, adapters []types.Adapter, q types.Query) []domain.Job {
	var pool []domain.Job
	for i, ad := range adapters {
		pool = append(pool, a.runAdapter(ctx, ad, q)...)

		if i == len(adapters)-1 || a.delay <= 0 {
			continue
		}
		select {
		case <-ctx.Done():
			return pool
		case <-time.After(a.delay):
		}
	}
	return pool
}

func (a *Aggregator) collectConcurrent(ctx context.Context, adapters []types.Adapter, q types.Query) []domain.Job {
	results := make([][]domain.Job, len(adapters))

	var g errgroup.Group
	for i, ad := range adapters {
		i, ad := i, ad
		g.Go(func() error {
			results[i] = a.runAdapter(ctx, ad, q)
			return nil
		})
	}
	_ = g.Wait()

	// Flatten in declared order so dedup priority stays deterministic.
	var pool []domain.Job
	for _, batch := range results {
		pool = append(pool, batch...)
	}
	return pool
}

// runAdapter is the per-source failure boundary: an adapter error is reported
// to the observer and yields zero records for that source.
func (a *Aggregator) runAdapter(ctx context.Context, ad types.Adapter, q types.Query) []domain.Job {
	a.obs.Attempt(ad.Name())

	jobs, err := ad.Search(ctx, q)
	if err != nil {
		a.obs.Failure(ad.Name(), err)
		return nil
	}

	accepted := jobs
	if a.validator != nil {
		accepted = make([]domain.Job, 0, len(jobs))
		for _, job := range jobs {
			if ok, _ := a.validator.Validate(job); ok {
				accepted = append(accepted, job)
			}
		}
	}
	if len(accepted) > q.Limit {
		accepted = accepted[:q.Limit]
	}

	a.obs.Success(ad.Name(), len(accepted))
	return accepted
}

// Dedupe drops later records sharing a normalized (title, company) pair with
// an earlier one. Idempotent; input order is preserved.
func Dedupe(jobs []domain.Job) []domain.Job {
	type key struct{ title, company string }
	seen := make(map[key]bool, len(jobs))

	out := make([]domain.Job, 0, len(jobs))
	for _, j := range jobs {
		k := key{
			title:   strings.ToLower(strings.TrimSpace(j.Title)),
			company: strings.ToLower(strings.TrimSpace(j.Company)),
		}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, j)
	}
	return out
}
