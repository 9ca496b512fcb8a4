package store

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID                   string
	Name                 string
	Email                string
	PasswordHash         string
	Role                 string
	ProfileImageURL      string
	ProfileImagePublicID string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

type Image struct {
	ID         string
	URL        string
	PublicID   string
	UploadedBy string
	CreatedAt  time.Time
}

type HostItem struct {
	ID               string
	OwnerID          string
	ItemTitle        string
	SelectCategory   string
	SelectTimeline   string
	Description      string
	DesiredNetPayout float64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
