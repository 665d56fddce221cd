package workflow

import (
	"context"
	"errors"

	"github.com/ThomasWeyssow/rewaard-api/logging"
	"github.com/ThomasWeyssow/rewaard-api/storage"
)

// TieBreak is the explicit policy applied when finalists end the validation
// window with equal confirmation counts.
type TieBreak int

const (
	// TieBreakNone surfaces the tie instead of picking a winner.
	TieBreakNone TieBreak = iota
	// TieBreakFirstRanked awards the tied finalist with the best
	// nomination rank.
	TieBreakFirstRanked
)

// ResolveWinner picks the finalist with the most validations. Pure and
// deterministic: same finalists, same outcome. A tie between leaders is
// surfaced as ErrTie unless the policy says otherwise; zero validations
// across the board is ErrNoValidations.
func ResolveWinner(finalists []Standing, policy TieBreak) (string, error) {
	best := 0
	for _, s := range finalists {
		if s.Validations > best {
			best = s.Validations
		}
	}
	if best == 0 {
		return "", ErrNoValidations
	}

	var leaders []Standing
	for _, s := range finalists {
		if s.Validations == best {
			leaders = append(leaders, s)
		}
	}

	if len(leaders) == 1 {
		return leaders[0].NomineeID, nil
	}

	switch policy {
	case TieBreakFirstRanked:
		winner := leaders[0]
		for _, s := range leaders[1:] {
			if s.Rank < winner.Rank {
				winner = s
			}
		}
		return winner.NomineeID, nil
	default:
		return "", ErrTie
	}
}

// WinnerResolver finalizes the latest completed cycle once its validation
// window has closed, writing at most one Winner per cycle.
type WinnerResolver struct {
	cycles      *CycleService
	nominations storage.NominationStorage
	validations storage.ValidationStorage
	winners     storage.WinnerStorage
	Policy      TieBreak
}

func NewWinnerResolver(cycles *CycleService, nominations storage.NominationStorage, validations storage.ValidationStorage, winners storage.WinnerStorage) *WinnerResolver {
	return &WinnerResolver{
		cycles:      cycles,
		nominations: nominations,
		validations: validations,
		winners:     winners,
		Policy:      TieBreakNone,
	}
}

// Resolve is idempotent: a cycle that already has a winner returns it
// unchanged, including when a concurrent resolver won the conditional write.
func (r *WinnerResolver) Resolve(ctx context.Context) (*storage.Winner, error) {
	cycle, err := r.cycles.LatestCompleted(ctx)
	if err != nil {
		return nil, err
	}
	if r.cycles.Now().Before(cycle.ValidationEndDate) {
		return nil, ErrValidationOpen
	}

	if existing, err := r.winners.Get(ctx, cycle.ID); err == nil {
		return existing, nil
	} else if !errors.Is(err, storage.ErrItemNotFound) {
		return nil, err
	}

	nominations, err := r.nominations.GetByCycle(ctx, cycle.ID)
	if err != nil {
		return nil, err
	}
	validations, err := r.validations.GetByCycle(ctx, cycle.ID)
	if err != nil {
		return nil, err
	}

	finalists, _ := Partition(Rank(nominations, validations, ""))
	nomineeID, err := ResolveWinner(finalists, r.Policy)
	if err != nil {
		return nil, err
	}

	winner := &storage.Winner{
		CycleID:   cycle.ID,
		NomineeID: nomineeID,
		CreatedAt: r.cycles.Now().UTC(),
	}
	if err := r.winners.Create(ctx, winner); err != nil {
		if errors.Is(err, storage.ErrItemAlreadyExists) {
			return r.winners.Get(ctx, cycle.ID)
		}
		return nil, err
	}

	logging.Log.Infof("WINNER: cycle %s resolved, winner %s", cycle.ID, nomineeID)
	return winner, nil
}
