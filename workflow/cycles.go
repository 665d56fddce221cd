package workflow

import (
	"context"
	"time"

	"github.com/ThomasWeyssow/rewaard-api/logging"
	"github.com/ThomasWeyssow/rewaard-api/storage"
	"github.com/google/uuid"
)

// DefaultValidationWindow is how long validators have to confirm a finalist
// after a cycle completes.
const DefaultValidationWindow = 7 * 24 * time.Hour

// CycleService owns the nomination-cycle lifecycle:
// next -> ongoing -> completed. At most one cycle holds the next status and
// at most one holds the ongoing status. Transitions are time-driven but only
// happen when Advance is called; the service never runs its own timer.
type CycleService struct {
	store            storage.CycleStorage
	ValidationWindow time.Duration

	// Now is swappable for tests.
	Now func() time.Time
}

func NewCycleService(store storage.CycleStorage) *CycleService {
	return &CycleService{
		store:            store,
		ValidationWindow: DefaultValidationWindow,
		Now:              time.Now,
	}
}

func (s *CycleService) Ongoing(ctx context.Context) (*storage.Cycle, error) {
	cycle, err := s.findByStatus(ctx, storage.CycleStatusOngoing)
	if err != nil {
		return nil, err
	}
	if cycle == nil {
		return nil, ErrNoOngoingCycle
	}
	return cycle, nil
}

func (s *CycleService) Next(ctx context.Context) (*storage.Cycle, error) {
	return s.findByStatus(ctx, storage.CycleStatusNext)
}

// LatestCompleted returns the most recently ended completed cycle. Older
// completed cycles are deliberately unreachable: the product only ever
// reviews the immediately preceding cycle.
func (s *CycleService) LatestCompleted(ctx context.Context) (*storage.Cycle, error) {
	cycles, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	var latest *storage.Cycle
	for _, cycle := range cycles {
		if cycle.Status != storage.CycleStatusCompleted {
			continue
		}
		if latest == nil || cycle.EndDate.After(latest.EndDate) {
			latest = cycle
		}
	}
	if latest == nil {
		return nil, ErrNoCompletedCycle
	}
	return latest, nil
}

// ScheduleNext creates the next cycle or overwrites the existing one. The
// end date is derived from the period (one or two months, inclusive of the
// start day), the validation deadline from the configured window. A start
// date inside the ongoing cycle is rejected.
func (s *CycleService) ScheduleNext(ctx context.Context, areaID string, startDate time.Time, period string) (*storage.Cycle, error) {
	months := 0
	switch period {
	case storage.PeriodMonthly:
		months = 1
	case storage.PeriodBiMonthly:
		months = 2
	default:
		return nil, ErrInvalidPeriod
	}

	ongoing, err := s.findByStatus(ctx, storage.CycleStatusOngoing)
	if err != nil {
		return nil, err
	}
	if ongoing != nil && !startDate.After(ongoing.EndDate) {
		return nil, ErrCycleOverlap
	}

	id := uuid.NewString()
	if next, err := s.findByStatus(ctx, storage.CycleStatusNext); err != nil {
		return nil, err
	} else if next != nil {
		id = next.ID
	}

	endDate := startDate.AddDate(0, months, -1)
	cycle := &storage.Cycle{
		ID:                id,
		Status:            storage.CycleStatusNext,
		AreaID:            areaID,
		Period:            period,
		StartDate:         startDate,
		EndDate:           endDate,
		ValidationEndDate: endDate.Add(s.ValidationWindow),
	}

	if err := s.store.Put(ctx, cycle); err != nil {
		return nil, err
	}
	logging.Log.Infof("CYCLE: scheduled next cycle %s for area %s starting %s", cycle.ID, areaID, startDate.Format("2006-01-02"))
	return cycle, nil
}

// Advance applies the time-driven transitions: the ongoing cycle completes
// once its end date has passed, then the next cycle becomes ongoing once its
// start date is reached. Safe to call repeatedly from an external scheduler.
func (s *CycleService) Advance(ctx context.Context) error {
	now := s.Now()

	ongoing, err := s.findByStatus(ctx, storage.CycleStatusOngoing)
	if err != nil {
		return err
	}
	if ongoing != nil && now.After(ongoing.EndDate) {
		ongoing.Status = storage.CycleStatusCompleted
		if err := s.store.Put(ctx, ongoing); err != nil {
			return err
		}
		logging.Log.Infof("CYCLE: completed cycle %s", ongoing.ID)
		ongoing = nil
	}

	next, err := s.findByStatus(ctx, storage.CycleStatusNext)
	if err != nil {
		return err
	}
	if next != nil && ongoing == nil && !now.Before(next.StartDate) {
		next.Status = storage.CycleStatusOngoing
		if err := s.store.Put(ctx, next); err != nil {
			return err
		}
		logging.Log.Infof("CYCLE: cycle %s is now ongoing", next.ID)
	}

	return nil
}

// DeleteOngoing clears the active cycle, returning the system to the
// no-active-cycle state. Idempotent.
func (s *CycleService) DeleteOngoing(ctx context.Context) error {
	ongoing, err := s.findByStatus(ctx, storage.CycleStatusOngoing)
	if err != nil {
		return err
	}
	if ongoing == nil {
		return nil
	}
	return s.store.Delete(ctx, ongoing.ID)
}

func (s *CycleService) findByStatus(ctx context.Context, status string) (*storage.Cycle, error) {
	cycles, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, cycle := range cycles {
		if cycle.Status == status {
			return cycle, nil
		}
	}
	return nil, nil
}
