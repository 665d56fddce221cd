package models

import "github.com/ThomasWeyssow/rewaard-api/storage"

type AreaItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type NominationAreaCreateRequest struct {
	ID       string     `json:"id"`
	Category string     `json:"category" binding:"required"`
	Areas    []AreaItem `json:"areas"`
	Icon     string     `json:"icon"`
}

type NominationAreaUpdateRequest struct {
	Category string     `json:"category" binding:"required"`
	Areas    []AreaItem `json:"areas"`
	Icon     string     `json:"icon"`
}

type NominationAreaResponse struct {
	ID       string     `json:"id"`
	Category string     `json:"category"`
	Areas    []AreaItem `json:"areas"`
	Icon     string     `json:"icon,omitempty"`
}

func TransformNominationAreaFromStorage(a *storage.NominationArea) NominationAreaResponse {
	items := make([]AreaItem, 0, len(a.Areas))
	for _, item := range a.Areas {
		items = append(items, AreaItem{Title: item.Title, Description: item.Description})
	}
	return NominationAreaResponse{
		ID:       a.ID,
		Category: a.Category,
		Areas:    items,
		Icon:     a.Icon,
	}
}

func TransformAreaItemsToStorage(items []AreaItem) []storage.AreaItem {
	out := make([]storage.AreaItem, 0, len(items))
	for _, item := range items {
		out = append(out, storage.AreaItem{Title: item.Title, Description: item.Description})
	}
	return out
}
