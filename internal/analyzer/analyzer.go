package analyzer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/connwatch/connwatch/internal/findings"
)

// Annotation is the verdict a strategy attaches to a single finding.
// Boolean strategies set Flagged and leave Commentary empty; free-text
// strategies fill Commentary. Failed marks items whose analysis could
// not be completed.
type Annotation struct {
	Flagged    bool   `json:"flagged"`
	Commentary string `json:"commentary,omitempty"`
	Failed     bool   `json:"failed,omitempty"`
}

// AnalyzedFinding pairs a finding with the annotation produced for it.
type AnalyzedFinding struct {
	Finding    findings.Finding `json:"finding"`
	Annotation Annotation       `json:"annotation"`
}

// Strategy analyzes one finding at a time.
type Strategy interface {
	AnalyzeItem(ctx context.Context, finding findings.Finding) (Annotation, error)
}

// ProcessResolver turns a process ID into a human-readable details string.
type ProcessResolver interface {
	Details(ctx context.Context, pid string) string
}

// Analyzer enriches findings with process details and runs a strategy
// over each of them.
type Analyzer struct {
	strategy    Strategy
	resolver    ProcessResolver
	workers     int
	itemTimeout time.Duration
	logger      hclog.Logger
}

// New returns an Analyzer. A workers value below 1 is treated as 1,
// a non-positive itemTimeout disables the per-item deadline.
func New(strategy Strategy, resolver ProcessResolver, workers int, itemTimeout time.Duration, logger hclog.Logger) *Analyzer {
	if workers < 1 {
		workers = 1
	}
	return &Analyzer{
		strategy:    strategy,
		resolver:    resolver,
		workers:     workers,
		itemTimeout: itemTimeout,
		logger:      logger,
	}
}

// Analyze runs the strategy over every finding and returns the results
// in input order. Items that fail are annotated as unavailable rather
// than dropped, so one bad item never aborts the batch. An empty input
// returns an empty result without touching the strategy or resolver.
func (a *Analyzer) Analyze(ctx context.Context, items []findings.Finding) ([]AnalyzedFinding, error) {
	results := make([]AnalyzedFinding, len(items))
	if len(items) == 0 {
		return results, nil
	}

	a.logger.Debug("analyzing findings", "count", len(items), "workers", a.workers)

	forEachBounded(a.workers, len(items), func(i int) {
		if ctx.Err() != nil {
			return
		}
		results[i] = a.analyzeItem(ctx, items[i])
	})

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("analysis aborted: %w", err)
	}
	return results, nil
}

func (a *Analyzer) analyzeItem(ctx context.Context, item findings.Finding) AnalyzedFinding {
	if a.itemTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.itemTimeout)
		defer cancel()
	}

	enriched := item.WithProcessDetails(a.resolver.Details(ctx, item.PID))

	annotation, err := a.strategy.AnalyzeItem(ctx, enriched)
	if err != nil {
		a.logger.Warn("analysis of a finding failed", "local", enriched.LocalAddr, "remote", enriched.RemoteAddr, "error", err)
		annotation = Annotation{
			Failed:     true,
			Commentary: fmt.Sprintf("analysis unavailable: %v", err),
		}
	}
	return AnalyzedFinding{Finding: enriched, Annotation: annotation}
}

// forEachBounded invokes f for every index from 0 to n-1 using at most
// limit concurrent goroutines. With limit 1 the calls stay on the
// caller's goroutine in index order.
func forEachBounded(limit, n int, f func(i int)) {
	if limit <= 1 {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	guard := make(chan struct{}, limit)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		guard <- struct{}{} // would block if guard channel is already filled
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			f(i)
			<-guard
		}(i)
	}
	wg.Wait()
}
