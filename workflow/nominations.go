package workflow

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/ThomasWeyssow/rewaard-api/logging"
	"github.com/ThomasWeyssow/rewaard-api/storage"
	"github.com/google/uuid"
)

const MaxJustificationLength = 512
const MaxRemarksLength = 512

// NominationLedger records one nomination per voter in the ongoing cycle.
// It keeps an optimistic in-memory mirror of the backing store: mutations
// update the mirror first and roll it back to the pre-call value if the
// store rejects the write. The mutex serializes mutations, so a second
// submit cannot start while one is in flight.
type NominationLedger struct {
	store  storage.NominationStorage
	cycles *CycleService

	mu      sync.Mutex
	cycleID string
	cache   map[string]*storage.Nomination
	loaded  bool
}

func NewNominationLedger(store storage.NominationStorage, cycles *CycleService) *NominationLedger {
	return &NominationLedger{
		store:  store,
		cycles: cycles,
		cache:  make(map[string]*storage.Nomination),
	}
}

// Submit records the voter's nomination in the ongoing cycle. A voter who
// already holds a nomination must withdraw first; there is no upsert.
func (l *NominationLedger) Submit(ctx context.Context, caps Capabilities, voterID, nomineeID string, areas []string, justification, remarks string) (*storage.Nomination, error) {
	if !caps.CanNominate {
		return nil, ErrNotAllowed
	}

	cycle, err := l.cycles.Ongoing(ctx)
	if err != nil {
		return nil, err
	}

	if len(areas) == 0 {
		return nil, ErrNoAreasSelected
	}
	if strings.TrimSpace(justification) == "" {
		return nil, ErrJustificationRequired
	}
	if len(justification) > MaxJustificationLength {
		return nil, ErrJustificationTooLong
	}
	if len(remarks) > MaxRemarksLength {
		return nil, ErrRemarksTooLong
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.ensureLoaded(ctx, cycle.ID); err != nil {
		return nil, err
	}
	if _, ok := l.cache[voterID]; ok {
		return nil, ErrAlreadyNominated
	}

	nomination := &storage.Nomination{
		CycleID:       cycle.ID,
		VoterID:       voterID,
		ID:            uuid.NewString(),
		NomineeID:     nomineeID,
		Areas:         areas,
		Justification: justification,
		Remarks:       remarks,
		CreatedAt:     l.cycles.Now().UTC(),
	}

	l.cache[voterID] = nomination
	if err := l.store.Create(ctx, nomination); err != nil {
		delete(l.cache, voterID)
		if errors.Is(err, storage.ErrItemAlreadyExists) {
			return nil, ErrAlreadyNominated
		}
		return nil, err
	}

	logging.Log.Infof("NOMINATION: voter %s nominated %s in cycle %s", voterID, nomineeID, cycle.ID)
	return nomination, nil
}

// Withdraw removes the voter's nomination from the ongoing cycle. Doing so
// when no nomination exists is a no-op.
func (l *NominationLedger) Withdraw(ctx context.Context, voterID string) error {
	cycle, err := l.cycles.Ongoing(ctx)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.ensureLoaded(ctx, cycle.ID); err != nil {
		return err
	}
	prior, ok := l.cache[voterID]
	if !ok {
		return nil
	}

	delete(l.cache, voterID)
	if err := l.store.Delete(ctx, cycle.ID, voterID); err != nil {
		l.cache[voterID] = prior
		return err
	}

	logging.Log.Infof("NOMINATION: voter %s withdrew their nomination in cycle %s", voterID, cycle.ID)
	return nil
}

// Current returns the voter's nomination in the ongoing cycle, or nil.
func (l *NominationLedger) Current(ctx context.Context, voterID string) (*storage.Nomination, error) {
	cycle, err := l.cycles.Ongoing(ctx)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.ensureLoaded(ctx, cycle.ID); err != nil {
		return nil, err
	}
	return l.cache[voterID], nil
}

func (l *NominationLedger) ListForCycle(ctx context.Context, cycleID string) ([]*storage.Nomination, error) {
	return l.store.GetByCycle(ctx, cycleID)
}

// Refresh discards the mirror and refetches the authoritative rows. Called
// on change notifications from the persistence feed; a full refetch avoids
// divergence that incremental merging could introduce.
func (l *NominationLedger) Refresh(ctx context.Context) error {
	cycle, err := l.cycles.Ongoing(ctx)
	if errors.Is(err, ErrNoOngoingCycle) {
		l.mu.Lock()
		l.cache = make(map[string]*storage.Nomination)
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

func (l *NominationLedger) ensureLoaded(ctx context.Context, cycleID string) error {
	if l.loaded && l.cycleID == cycleID {
		return nil
	}
	return l.reload(ctx, cycleID)
}

func (l *NominationLedger) reload(ctx context.Context, cycleID string) error {
	nominations, err := l.store.GetByCycle(ctx, cycleID)
	if err != nil {
		return err
	}
	cache := make(map[string]*storage.Nomination, len(nominations))
	for _, n := range nominations {
		cache[n.VoterID] = n
	}
	l.cache = cache
	l.cycleID = cycleID
	l.loaded = true
	return nil
}

// Snapshot returns the mirrored nominations, for diagnostics and tests.
func (l *NominationLedger) Snapshot() map[string]storage.Nomination {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[string]storage.Nomination, len(l.cache))
	for voter, n := range l.cache {
		out[voter] = *n
	}
	return out
}
