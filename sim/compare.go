package sim

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// RunAll runs every config against its own replay of the same arrivals,
// one goroutine per run. Runs share no state, so the results are identical
// to running them one after another. Results are returned in config order.
func RunAll(ctx context.Context, configs []Config, arrivals []Arrival) ([]*RunResult, error) {
	results := make([]*RunResult, len(configs))
	errs := make([]error, len(configs))

	var wg sync.WaitGroup
	for i, cfg := range configs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := RunSimulation(ctx, cfg, NewArrivalSlice(arrivals))
			if err != nil {
				errs[i] = fmt.Errorf("run %d (%s): %w", i, cfg.Discipline, err)
				return
			}
			results[i] = res
		}()
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return results, nil
}

// CompareDisciplines runs base once per canonical discipline over arrivals.
// base.Discipline is ignored.
func CompareDisciplines(ctx context.Context, base Config, arrivals []Arrival) ([]*RunResult, error) {
	names := DisciplineNames()
	configs := make([]Config, len(names))
	for i, name := range names {
		configs[i] = base
		configs[i].Discipline = name
	}
	return RunAll(ctx, configs, arrivals)
}
