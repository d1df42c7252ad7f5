package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"journey-planner-service/internal/domain"
	"journey-planner-service/internal/ports"
)

// GeocodeResolver resolves independent free-text queries to coordinates
// through the active provider, consulting an optional persistent cache first.
type GeocodeResolver struct {
	Provider ports.RouteProvider
	Cache    ports.GeocodeCache
}

type geocodeOutcome struct {
	query  string
	coords domain.Coordinates
	err    error
}

// normalizeQuery collapses whitespace so equal addresses share cache keys.
func normalizeQuery(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ResolveAll resolves every query, returning coordinates in input order.
// Queries with no interdependency are issued concurrently; the whole
// resolution fails on the first error (a partial itinerary is never built on
// partial geocoding failure). Cache trouble degrades to uncached lookups.
func (r *GeocodeResolver) ResolveAll(ctx context.Context, queries []string) ([]domain.Coordinates, error) {
	if len(queries) == 0 {
		return nil, nil
	}

	normalized := make([]string, len(queries))
	uniq := make([]string, 0, len(queries))
	seen := make(map[string]struct{}, len(queries))
	for i, q := range queries {
		nq := normalizeQuery(q)
		if nq == "" {
			return nil, domain.NewInputError("location query must be non-empty")
		}
		normalized[i] = nq
		if _, ok := seen[nq]; !ok {
			seen[nq] = struct{}{}
			uniq = append(uniq, nq)
		}
	}

	resolved := make(map[string]domain.Coordinates, len(uniq))
	if r.Cache != nil {
		hits, err := r.Cache.GetMany(ctx, uniq)
		if err != nil {
			log.Printf("geocode cache read failed: %v", err)
		} else {
			for q, c := range hits {
				resolved[q] = c
			}
		}
	}

	misses := make([]string, 0, len(uniq))
	for _, q := range uniq {
		if _, ok := resolved[q]; !ok {
			misses = append(misses, q)
		}
	}

	if len(misses) > 0 {
		fresh, err := r.geocodeConcurrently(ctx, misses)
		if err != nil {
			return nil, err
		}
		for q, c := range fresh {
			resolved[q] = c
		}

		if r.Cache != nil {
			if err := r.Cache.PutMany(ctx, fresh); err != nil {
				log.Printf("geocode cache write failed: %v", err)
			}
		}
	}

	out := make([]domain.Coordinates, len(queries))
	for i, nq := range normalized {
		c, ok := resolved[nq]
		if !ok {
			return nil, domain.NewNotFound(nq)
		}
		out[i] = c
	}
	return out, nil
}

// geocodeConcurrently fans the queries out with a small concurrency cap and
// cancels the rest as soon as one fails.
func (r *GeocodeResolver) geocodeConcurrently(
	ctx context.Context,
	queries []string,
) (map[string]domain.Coordinates, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sem := make(chan struct{}, 5)
	results := make(chan geocodeOutcome, len(queries))
	var wg sync.WaitGroup

	for _, q := range queries {
		wg.Add(1)
		go func(query string) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			coords, err := r.Provider.Geocode(ctx, query)
			if err != nil {
				results <- geocodeOutcome{query: query, err: err}
				cancel()
				return
			}
			if err := coords.Validate(); err != nil {
				results <- geocodeOutcome{query: query, err: err}
				cancel()
				return
			}

			results <- geocodeOutcome{query: query, coords: coords}
		}(q)
	}

	wg.Wait()
	close(results)

	out := make(map[string]domain.Coordinates, len(queries))
	var firstErr, notFoundErr error
	for res := range results {
		if res.err != nil {
			if firstErr == nil {
				firstErr = res.err
			}
			// Prefer a NotFound over cancellation noise from siblings.
			var pe *domain.PlanningError
			if notFoundErr == nil && errors.As(res.err, &pe) && pe.Kind == domain.ErrKindNotFound {
				notFoundErr = res.err
			}
			continue
		}
		out[res.query] = res.coords
	}
	if notFoundErr != nil {
		return nil, notFoundErr
	}
	if firstErr != nil {
		return nil, firstErr
	}

	return out, nil
}
