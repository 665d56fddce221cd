package workflow

import (
	"context"
	"testing"
	"time"

	"github.com/ThomasWeyssow/rewaard-api/logging"
	"github.com/ThomasWeyssow/rewaard-api/storage"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCycleService(t *testing.T, now time.Time) (*CycleService, *storage.MemoryCycleStorage) {
	t.Helper()
	logging.Log = logrus.New()

	store := storage.NewMemoryCycleStorage()
	service := NewCycleService(store)
	service.Now = func() time.Time { return now }
	return service, store
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestScheduleNext(t *testing.T) {
	now := date(2025, time.March, 10)

	t.Run("Happy path - monthly cycle ends a month later, inclusive", func(t *testing.T) {
		service, _ := setupCycleService(t, now)

		cycle, err := service.ScheduleNext(context.Background(), "area-1", date(2025, time.April, 1), storage.PeriodMonthly)
		require.NoError(t, err)
		assert.Equal(t, storage.CycleStatusNext, cycle.Status)
		assert.Equal(t, date(2025, time.April, 30), cycle.EndDate)
		assert.Equal(t, date(2025, time.April, 30).Add(DefaultValidationWindow), cycle.ValidationEndDate)
	})

	t.Run("Happy path - bi-monthly cycle spans two months", func(t *testing.T) {
		service, _ := setupCycleService(t, now)

		cycle, err := service.ScheduleNext(context.Background(), "area-1", date(2025, time.April, 1), storage.PeriodBiMonthly)
		require.NoError(t, err)
		assert.Equal(t, date(2025, time.May, 31), cycle.EndDate)
	})

	t.Run("Happy path - rescheduling overwrites the existing next cycle", func(t *testing.T) {
		service, store := setupCycleService(t, now)

		first, err := service.ScheduleNext(context.Background(), "area-1", date(2025, time.April, 1), storage.PeriodMonthly)
		require.NoError(t, err)
		second, err := service.ScheduleNext(context.Background(), "area-2", date(2025, time.May, 1), storage.PeriodMonthly)
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		cycles, err := store.GetAll(context.Background())
		require.NoError(t, err)
		assert.Len(t, cycles, 1)
	})

	t.Run("Unhappy path - invalid period", func(t *testing.T) {
		service, _ := setupCycleService(t, now)

		_, err := service.ScheduleNext(context.Background(), "area-1", date(2025, time.April, 1), "weekly")
		assert.ErrorIs(t, err, ErrInvalidPeriod)
	})

	t.Run("Unhappy path - start date inside the ongoing cycle", func(t *testing.T) {
		service, store := setupCycleService(t, now)
		require.NoError(t, store.Put(context.Background(), &storage.Cycle{
			ID:        "ongoing-1",
			Status:    storage.CycleStatusOngoing,
			StartDate: date(2025, time.March, 1),
			EndDate:   date(2025, time.March, 31),
		}))

		_, err := service.ScheduleNext(context.Background(), "area-1", date(2025, time.March, 20), storage.PeriodMonthly)
		assert.ErrorIs(t, err, ErrCycleOverlap)

		// The day after the ongoing cycle ends is fine.
		_, err = service.ScheduleNext(context.Background(), "area-1", date(2025, time.April, 1), storage.PeriodMonthly)
		assert.NoError(t, err)
	})
}

func TestAdvance(t *testing.T) {
	t.Run("completes the ongoing cycle past its end date", func(t *testing.T) {
		service, store := setupCycleService(t, date(2025, time.April, 1))
		require.NoError(t, store.Put(context.Background(), &storage.Cycle{
			ID:        "ongoing-1",
			Status:    storage.CycleStatusOngoing,
			StartDate: date(2025, time.March, 1),
			EndDate:   date(2025, time.March, 31),
		}))

		require.NoError(t, service.Advance(context.Background()))

		_, err := service.Ongoing(context.Background())
		assert.ErrorIs(t, err, ErrNoOngoingCycle)
		completed, err := service.LatestCompleted(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "ongoing-1", completed.ID)
	})

	t.Run("promotes the next cycle once its start date is reached", func(t *testing.T) {
		service, store := setupCycleService(t, date(2025, time.April, 1))
		require.NoError(t, store.Put(context.Background(), &storage.Cycle{
			ID:        "next-1",
			Status:    storage.CycleStatusNext,
			StartDate: date(2025, time.April, 1),
			EndDate:   date(2025, time.April, 30),
		}))

		require.NoError(t, service.Advance(context.Background()))

		ongoing, err := service.Ongoing(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "next-1", ongoing.ID)
	})

	t.Run("completes and promotes in a single pass", func(t *testing.T) {
		service, store := setupCycleService(t, date(2025, time.April, 1))
		require.NoError(t, store.Put(context.Background(), &storage.Cycle{
			ID:        "ongoing-1",
			Status:    storage.CycleStatusOngoing,
			StartDate: date(2025, time.March, 1),
			EndDate:   date(2025, time.March, 31),
		}))
		require.NoError(t, store.Put(context.Background(), &storage.Cycle{
			ID:        "next-1",
			Status:    storage.CycleStatusNext,
			StartDate: date(2025, time.April, 1),
			EndDate:   date(2025, time.April, 30),
		}))

		require.NoError(t, service.Advance(context.Background()))

		ongoing, err := service.Ongoing(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "next-1", ongoing.ID)
		completed, err := service.LatestCompleted(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "ongoing-1", completed.ID)
	})

	t.Run("leaves a future next cycle untouched", func(t *testing.T) {
		service, store := setupCycleService(t, date(2025, time.March, 15))
		require.NoError(t, store.Put(context.Background(), &storage.Cycle{
			ID:        "next-1",
			Status:    storage.CycleStatusNext,
			StartDate: date(2025, time.April, 1),
			EndDate:   date(2025, time.April, 30),
		}))

		require.NoError(t, service.Advance(context.Background()))

		_, err := service.Ongoing(context.Background())
		assert.ErrorIs(t, err, ErrNoOngoingCycle)
	})

	t.Run("idempotent when nothing is due", func(t *testing.T) {
		service, store := setupCycleService(t, date(2025, time.March, 15))
		require.NoError(t, store.Put(context.Background(), &storage.Cycle{
			ID:        "ongoing-1",
			Status:    storage.CycleStatusOngoing,
			StartDate: date(2025, time.March, 1),
			EndDate:   date(2025, time.March, 31),
		}))

		require.NoError(t, service.Advance(context.Background()))
		require.NoError(t, service.Advance(context.Background()))

		ongoing, err := service.Ongoing(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "ongoing-1", ongoing.ID)
	})
}

func TestLatestCompleted(t *testing.T) {
	t.Run("Happy path - picks the most recently ended cycle", func(t *testing.T) {
		service, store := setupCycleService(t, date(2025, time.June, 1))
		require.NoError(t, store.Put(context.Background(), &storage.Cycle{
			ID:      "old",
			Status:  storage.CycleStatusCompleted,
			EndDate: date(2025, time.March, 31),
		}))
		require.NoError(t, store.Put(context.Background(), &storage.Cycle{
			ID:      "recent",
			Status:  storage.CycleStatusCompleted,
			EndDate: date(2025, time.April, 30),
		}))

		latest, err := service.LatestCompleted(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "recent", latest.ID)
	})

	t.Run("Unhappy path - no completed cycle", func(t *testing.T) {
		service, _ := setupCycleService(t, date(2025, time.June, 1))
		_, err := service.LatestCompleted(context.Background())
		assert.ErrorIs(t, err, ErrNoCompletedCycle)
	})
}

func TestDeleteOngoing(t *testing.T) {
	t.Run("removes the ongoing cycle", func(t *testing.T) {
		service, store := setupCycleService(t, date(2025, time.March, 15))
		require.NoError(t, store.Put(context.Background(), &storage.Cycle{
			ID:      "ongoing-1",
			Status:  storage.CycleStatusOngoing,
			EndDate: date(2025, time.March, 31),
		}))

		require.NoError(t, service.DeleteOngoing(context.Background()))
		_, err := service.Ongoing(context.Background())
		assert.ErrorIs(t, err, ErrNoOngoingCycle)
	})

	t.Run("no-op without an ongoing cycle", func(t *testing.T) {
		service, _ := setupCycleService(t, date(2025, time.March, 15))
		assert.NoError(t, service.DeleteOngoing(context.Background()))
	})
}
