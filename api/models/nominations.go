package models

import (
	"time"

	"github.com/ThomasWeyssow/rewaard-api/storage"
	"github.com/ThomasWeyssow/rewaard-api/workflow"
)

type SubmitNominationRequest struct {
	NomineeID     string   `json:"nomineeId" binding:"required"`
	Areas         []string `json:"areas"`
	Justification string   `json:"justification"`
	Remarks       string   `json:"remarks"`
}

type NominationResponse struct {
	ID            string    `json:"id"`
	CycleID       string    `json:"cycleId"`
	VoterID       string    `json:"voterId"`
	NomineeID     string    `json:"nomineeId"`
	Areas         []string  `json:"areas"`
	Justification string    `json:"justification"`
	Remarks       string    `json:"remarks,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

func TransformNominationFromStorage(n *storage.Nomination) NominationResponse {
	return NominationResponse{
		ID:            n.ID,
		CycleID:       n.CycleID,
		VoterID:       n.VoterID,
		NomineeID:     n.NomineeID,
		Areas:         n.Areas,
		Justification: n.Justification,
		Remarks:       n.Remarks,
		CreatedAt:     n.CreatedAt,
	}
}

type StandingEntry struct {
	Rank              int    `json:"rank"`
	NomineeID         string `json:"nomineeId"`
	Name              string `json:"name"`
	Department        string `json:"department,omitempty"`
	AvatarURL         string `json:"avatarUrl,omitempty"`
	Nominations       int    `json:"nominations"`
	Validations       int    `json:"validations"`
	ValidatedByCaller bool   `json:"validatedByCaller"`
}

type StandingsResponse struct {
	CycleID   string          `json:"cycleId"`
	Finalists []StandingEntry `json:"finalists"`
	Others    []StandingEntry `json:"others"`
}

func TransformStanding(s workflow.Standing, profile *storage.Profile) StandingEntry {
	entry := StandingEntry{
		Rank:              s.Rank,
		NomineeID:         s.NomineeID,
		Nominations:       s.Nominations,
		Validations:       s.Validations,
		ValidatedByCaller: s.ValidatedByCaller,
	}
	if profile != nil {
		entry.Name = profile.FirstName + " " + profile.LastName
		entry.Department = profile.Department
		entry.AvatarURL = profile.AvatarURL
	}
	return entry
}

type ConfirmValidationRequest struct {
	NomineeID string `json:"nomineeId" binding:"required"`
}

type ValidatorChoiceResponse struct {
	NomineeID string `json:"nomineeId,omitempty"`
}
