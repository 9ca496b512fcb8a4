package account

import (
	"time"

	"rofl-backend/internal/store"
)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type ResetPasswordInput struct {
	Email       string
	Code        string
	NewPassword string
}

type ProfileImage struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

type ImageView struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	PublicID  string    `json:"publicId"`
	CreatedAt time.Time `json:"createdAt"`
}

type ImagesResponse struct {
	Items []ImageView `json:"items"`
}

type UserView struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	Role         string        `json:"role"`
	ProfileImage *ProfileImage `json:"profileImage,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
}

type AuthResponse struct {
	Message   string    `json:"message"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      UserView  `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type UsersResponse struct {
	Items []UserView `json:"items"`
}

func NewUserView(u *store.User) UserView {
	v := UserView{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
	if u.ProfileImageURL != "" {
		v.ProfileImage = &ProfileImage{URL: u.ProfileImageURL, PublicID: u.ProfileImagePublicID}
	}
	return v
}
