package models

import "github.com/ThomasWeyssow/rewaard-api/storage"

type RewardCreateRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	PointsCost  int    `json:"pointsCost" binding:"required"`
	ImageURL    string `json:"imageUrl"`
}

type RewardUpdateRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	PointsCost  int    `json:"pointsCost" binding:"required"`
	ImageURL    string `json:"imageUrl"`
}

type RewardResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PointsCost  int    `json:"pointsCost"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

func TransformRewardFromStorage(r *storage.Reward) RewardResponse {
	return RewardResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		PointsCost:  r.PointsCost,
		ImageURL:    r.ImageURL,
	}
}

type RedeemRequest struct {
	RewardID string `json:"rewardId" binding:"required"`
}

type RedeemResponse struct {
	RedemptionCode  string `json:"redemptionCode"`
	RemainingPoints int    `json:"remainingPoints"`
}
