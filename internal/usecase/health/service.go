// Package health aggregates component availability checks.
package health

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status                 `json:"status"`
	Checks map[string]CheckResult `json:"checks"`
}

// Service coordinates health checks. The engine check is mandatory;
// embedding and cache checks run only when those components are configured.
type Service struct {
	engine    EnginePinger
	embedding EmbeddingChecker
	cache     CachePinger
}

// New creates a Service. embedding and cache may be nil.
func New(engine EnginePinger, embedding EmbeddingChecker, cache CachePinger) *Service {
	return &Service{engine: engine, embedding: embedding, cache: cache}
}

// Check pings all configured components concurrently.
func (s *Service) Check(ctx context.Context) Report {
	var mu sync.Mutex
	checks := make(map[string]CheckResult)
	record := func(name string, err error) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			checks[name] = CheckError
		} else {
			checks[name] = CheckOK
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		record("engine", s.engine.Ping(gctx))
		return nil
	})
	if s.embedding != nil {
		g.Go(func() error {
			record("embedding", s.embedding.HealthCheck(gctx))
			return nil
		})
	}
	if s.cache != nil {
		g.Go(func() error {
			record("cache", s.cache.Ping(gctx))
			return nil
		})
	}
	_ = g.Wait()

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks}
}
