package calculation

import (
	"context"
	"fmt"
	"sync"

	"github.com/shivbijlani/lifetime/internal/domain"
)

// DefaultSweepWorkers bounds concurrent projections when no worker count is given.
const DefaultSweepWorkers = 10

// Sweep projects params once per retirement age in [fromAge, toAge] and returns
// the outcomes ordered by age. Projections run concurrently on at most workers
// goroutines. onDone, when non-nil, is called after each projection and may be
// called concurrently.
func Sweep(ctx context.Context, params domain.ScenarioParams, fromAge, toAge, workers int, onDone func()) ([]domain.SweepPoint, error) {
	if fromAge > toAge {
		return nil, fmt.Errorf("sweep range is empty: from %d > to %d", fromAge, toAge)
	}
	if fromAge < params.CurrentAge {
		return nil, fmt.Errorf("sweep cannot start at age %d, before current age %d", fromAge, params.CurrentAge)
	}
	if toAge > params.MaxAge {
		return nil, fmt.Errorf("sweep cannot end at age %d, after max age %d", toAge, params.MaxAge)
	}
	if workers <= 0 {
		workers = DefaultSweepWorkers
	}

	points := make([]domain.SweepPoint, toAge-fromAge+1)
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, workers)

	for age := fromAge; age <= toAge; age++ {
		wg.Add(1)
		go func(idx, retirementAge int) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if ctx.Err() != nil {
				return
			}
			p := params.Clone()
			p.RetirementAge = retirementAge
			points[idx] = sweepPoint(p, Project(p))
			if onDone != nil {
				onDone()
			}
		}(age-fromAge, age)
	}

	wg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return points, nil
}

func sweepPoint(p domain.ScenarioParams, rows []domain.Row) domain.SweepPoint {
	s := Summarize(p, rows)
	funded := len(rows)
	if s.FirstShortfallYear != 0 {
		funded = s.FirstShortfallYear - p.StartYear
	}
	return domain.SweepPoint{
		RetirementAge:      p.RetirementAge,
		FinalNetWorth:      s.FinalNetWorth,
		PeakNetWorth:       s.PeakNetWorth,
		FirstShortfallYear: s.FirstShortfallYear,
		YearsFunded:        funded,
	}
}
