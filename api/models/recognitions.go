package models

import (
	"time"

	"github.com/ThomasWeyssow/rewaard-api/storage"
)

type SendRecognitionRequest struct {
	ReceiverID string   `json:"receiverId" binding:"required"`
	Points     int      `json:"points" binding:"required"`
	Message    string   `json:"message"`
	Tags       []string `json:"tags"`
	Private    bool     `json:"private"`
}

type RecognitionResponse struct {
	ID         string    `json:"id"`
	ProgramID  string    `json:"programId"`
	SenderID   string    `json:"senderId"`
	ReceiverID string    `json:"receiverId"`
	Points     int       `json:"points"`
	Message    string    `json:"message"`
	Tags       []string  `json:"tags"`
	CreatedAt  time.Time `json:"createdAt"`
}

func TransformRecognitionFromStorage(r *storage.Recognition) RecognitionResponse {
	return RecognitionResponse{
		ID:         r.ID,
		ProgramID:  r.ProgramID,
		SenderID:   r.SenderID,
		ReceiverID: r.ReceiverID,
		Points:     r.Points,
		Message:    r.Message,
		Tags:       r.Tags,
		CreatedAt:  r.CreatedAt,
	}
}

type BalanceResponse struct {
	ProfileID           string `json:"profileId"`
	ProgramID           string `json:"programId"`
	DistributablePoints int    `json:"distributablePoints"`
	EarnedPoints        int    `json:"earnedPoints"`
}

type CreateProgramRequest struct {
	Name          string `json:"name" binding:"required"`
	StartDate     string `json:"startDate" binding:"required" example:"2025-09-01"`
	EndDate       string `json:"endDate" binding:"required" example:"2025-12-31"`
	PointsPerUser int    `json:"pointsPerUser" binding:"required"`
}

type ProgramResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
	PointsPerUser int       `json:"pointsPerUser"`
}

func TransformProgramFromStorage(p *storage.RecognitionProgram) ProgramResponse {
	return ProgramResponse{
		ID:            p.ID,
		Name:          p.Name,
		StartDate:     p.StartDate,
		EndDate:       p.EndDate,
		PointsPerUser: p.PointsPerUser,
	}
}
