package models

import "github.com/ThomasWeyssow/rewaard-api/storage"

type ProfileResponse struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Department string   `json:"department,omitempty"`
	AvatarURL  string   `json:"avatarUrl,omitempty"`
	Roles      []string `json:"roles"`
}

func TransformProfileFromStorage(p *storage.Profile) ProfileResponse {
	return ProfileResponse{
		ID:         p.ID,
		Name:       p.FirstName + " " + p.LastName,
		Email:      p.Email,
		Department: p.Department,
		AvatarURL:  p.AvatarURL,
		Roles:      p.Roles,
	}
}
