package models

import (
	"time"

	"github.com/ThomasWeyssow/rewaard-api/storage"
)

type ScheduleCycleRequest struct {
	AreaID    string `json:"areaId" binding:"required"`
	StartDate string `json:"startDate" binding:"required" example:"2025-09-01"`
	Period    string `json:"period" binding:"required" enums:"monthly,bi-monthly"`
}

type CycleResponse struct {
	ID                string    `json:"id"`
	Status            string    `json:"status"`
	AreaID            string    `json:"areaId"`
	Period            string    `json:"period"`
	StartDate         time.Time `json:"startDate"`
	EndDate           time.Time `json:"endDate"`
	ValidationEndDate time.Time `json:"validationEndDate"`
}

func TransformCycleFromStorage(c *storage.Cycle) CycleResponse {
	return CycleResponse{
		ID:                c.ID,
		Status:            c.Status,
		AreaID:            c.AreaID,
		Period:            c.Period,
		StartDate:         c.StartDate,
		EndDate:           c.EndDate,
		ValidationEndDate: c.ValidationEndDate,
	}
}

type CompletedCycleResponse struct {
	CycleResponse
	Winner *WinnerResponse `json:"winner,omitempty"`
}

type WinnerResponse struct {
	NomineeID string    `json:"nomineeId"`
	CreatedAt time.Time `json:"createdAt"`
}
