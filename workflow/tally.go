package workflow

import (
	"sort"

	"github.com/ThomasWeyssow/rewaard-api/storage"
)

// FinalistSlots is the number of top-ranked nominees eligible for
// validation. Fixed by the product, not configurable.
const FinalistSlots = 6

// Standing is one nominee's position in a completed cycle.
type Standing struct {
	Rank              int    `json:"rank"`
	NomineeID         string `json:"nomineeId"`
	Nominations       int    `json:"nominations"`
	Validations       int    `json:"validations"`
	ValidatedByCaller bool   `json:"validatedByCaller"`
}

// Rank groups nominations by nominee and orders nominees by nomination
// count, descending. Equal counts keep first-seen order, so the result is
// deterministic for a fixed input order. callerID marks the standing the
// requesting validator has confirmed; pass "" when irrelevant.
func Rank(nominations []*storage.Nomination, validations []*storage.Validation, callerID string) []Standing {
	counts := make(map[string]int)
	var order []string
	for _, n := range nominations {
		if _, seen := counts[n.NomineeID]; !seen {
			order = append(order, n.NomineeID)
		}
		counts[n.NomineeID]++
	}

	validationCounts := make(map[string]int)
	callerChoice := ""
	for _, v := range validations {
		validationCounts[v.NomineeID]++
		if callerID != "" && v.ValidatorID == callerID {
			callerChoice = v.NomineeID
		}
	}

	standings := make([]Standing, 0, len(order))
	for _, nomineeID := range order {
		standings = append(standings, Standing{
			NomineeID:         nomineeID,
			Nominations:       counts[nomineeID],
			Validations:       validationCounts[nomineeID],
			ValidatedByCaller: nomineeID == callerChoice,
		})
	}

	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Nominations > standings[j].Nominations
	})

	for i := range standings {
		standings[i].Rank = i + 1
	}
	return standings
}

// Partition splits standings into the finalists (ranks 1 through 6,
// eligible for validation) and the other nominees (visible, not
// validatable). With more than six distinct nominees the seventh-highest is
// excluded regardless of its count.
func Partition(standings []Standing) (finalists, others []Standing) {
	if len(standings) <= FinalistSlots {
		return standings, nil
	}
	return standings[:FinalistSlots], standings[FinalistSlots:]
}

// IsFinalist reports whether nomineeID occupies one of the finalist slots.
func IsFinalist(standings []Standing, nomineeID string) bool {
	finalists, _ := Partition(standings)
	for _, s := range finalists {
		if s.NomineeID == nomineeID {
			return true
		}
	}
	return false
}
