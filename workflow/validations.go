package workflow

import (
	"context"
	"errors"
	"sync"

	"github.com/ThomasWeyssow/rewaard-api/logging"
	"github.com/ThomasWeyssow/rewaard-api/storage"
	"github.com/google/uuid"
)

// ValidationLedger records one validator confirmation per validator in the
// latest completed cycle, restricted to finalists. Confirming the same
// nominee twice withdraws the confirmation; confirming a different nominee
// replaces the previous one through the store's atomic Replace primitive.
// Like the nomination ledger it mirrors the store optimistically and rolls
// the mirror back exactly on failure.
type ValidationLedger struct {
	store       storage.ValidationStorage
	nominations storage.NominationStorage
	cycles      *CycleService

	mu      sync.Mutex
	cycleID string
	cache   map[string]*storage.Validation
	loaded  bool
}

func NewValidationLedger(store storage.ValidationStorage, nominations storage.NominationStorage, cycles *CycleService) *ValidationLedger {
	return &ValidationLedger{
		store:       store,
		nominations: nominations,
		cycles:      cycles,
		cache:       make(map[string]*storage.Validation),
	}
}

// Confirm toggles or moves the validator's confirmation for a finalist of
// the latest completed cycle while the validation window is open.
func (l *ValidationLedger) Confirm(ctx context.Context, caps Capabilities, validatorID, nomineeID string) error {
	if !caps.CanValidate {
		return ErrNotAllowed
	}

	cycle, err := l.cycles.LatestCompleted(ctx)
	if err != nil {
		return err
	}
	if !l.cycles.Now().Before(cycle.ValidationEndDate) {
		return ErrValidationClosed
	}

	nominations, err := l.nominations.GetByCycle(ctx, cycle.ID)
	if err != nil {
		return err
	}
	if !IsFinalist(Rank(nominations, nil, ""), nomineeID) {
		return ErrNotFinalist
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.ensureLoaded(ctx, cycle.ID); err != nil {
		return err
	}

	prior := l.cache[validatorID]

	// Same nominee again: withdraw.
	if prior != nil && prior.NomineeID == nomineeID {
		delete(l.cache, validatorID)
		if err := l.store.Delete(ctx, cycle.ID, validatorID); err != nil {
			l.cache[validatorID] = prior
			return err
		}
		logging.Log.Infof("VALIDATION: validator %s withdrew their confirmation in cycle %s", validatorID, cycle.ID)
		return nil
	}

	validation := &storage.Validation{
		CycleID:     cycle.ID,
		ValidatorID: validatorID,
		ID:          uuid.NewString(),
		NomineeID:   nomineeID,
		CreatedAt:   l.cycles.Now().UTC(),
	}

	// Different nominee: replace atomically.
	if prior != nil {
		l.cache[validatorID] = validation
		if err := l.store.Replace(ctx, validation); err != nil {
			l.cache[validatorID] = prior
			return err
		}
		logging.Log.Infof("VALIDATION: validator %s switched their confirmation to %s in cycle %s", validatorID, nomineeID, cycle.ID)
		return nil
	}

	l.cache[validatorID] = validation
	if err := l.store.Create(ctx, validation); err != nil {
		delete(l.cache, validatorID)
		if errors.Is(err, storage.ErrItemAlreadyExists) {
			// The mirror was stale; resync before surfacing the conflict.
			if rerr := l.reload(ctx, cycle.ID); rerr != nil {
				logging.Log.Errorf("VALIDATION: failed to resync after conflict: %v", rerr)
			}
		}
		return err
	}
	logging.Log.Infof("VALIDATION: validator %s confirmed %s in cycle %s", validatorID, nomineeID, cycle.ID)
	return nil
}

// CountFor returns the number of confirmations currently recorded for a
// nominee in the latest completed cycle.
func (l *ValidationLedger) CountFor(ctx context.Context, nomineeID string) (int, error) {
	cycle, err := l.cycles.LatestCompleted(ctx)
	if err != nil {
		return 0, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.ensureLoaded(ctx, cycle.ID); err != nil {
		return 0, err
	}
	count := 0
	for _, v := range l.cache {
		if v.NomineeID == nomineeID {
			count++
		}
	}
	return count, nil
}

// ValidatorChoice returns the nominee the validator currently has
// confirmed, or "" if none.
func (l *ValidationLedger) ValidatorChoice(ctx context.Context, validatorID string) (string, error) {
	cycle, err := l.cycles.LatestCompleted(ctx)
	if err != nil {
		return "", err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.ensureLoaded(ctx, cycle.ID); err != nil {
		return "", err
	}
	if v, ok := l.cache[validatorID]; ok {
		return v.NomineeID, nil
	}
	return "", nil
}

func (l *ValidationLedger) ListForCycle(ctx context.Context, cycleID string) ([]*storage.Validation, error) {
	return l.store.GetByCycle(ctx, cycleID)
}

// Refresh refetches the full validation set, discarding the mirror.
func (l *ValidationLedger) Refresh(ctx context.Context) error {
	cycle, err := l.cycles.LatestCompleted(ctx)
	if errors.Is(err, ErrNoCompletedCycle) {
		l.mu.Lock()
		l.cache = make(map[string]*storage.Validation)
		l.cycleID = ""
		l.loaded = false
		l.mu.Unlock()
		return nil
	}
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reload(ctx, cycle.ID)
}

func (l *ValidationLedger) ensureLoaded(ctx context.Context, cycleID string) error {
	if l.loaded && l.cycleID == cycleID {
		return nil
	}
	return l.reload(ctx, cycleID)
}

func (l *ValidationLedger) reload(ctx context.Context, cycleID string) error {
	validations, err := l.store.GetByCycle(ctx, cycleID)
	if err != nil {
		return err
	}
	cache := make(map[string]*storage.Validation, len(validations))
	for _, v := range validations {
		cache[v.ValidatorID] = v
	}
	l.cache = cache
	l.cycleID = cycleID
	l.loaded = true
	return nil
}

// Snapshot returns the mirrored validations, for diagnostics and tests.
func (l *ValidationLedger) Snapshot() map[string]storage.Validation {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[string]storage.Validation, len(l.cache))
	for validator, v := range l.cache {
		out[validator] = *v
	}
	return out
}
