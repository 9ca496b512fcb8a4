package hostitem

import (
	"time"

	"rofl-backend/internal/pricing"
	"rofl-backend/internal/store"
)

type CreateInput struct {
	ItemTitle        string
	SelectCategory   string
	SelectTimeline   string
	Description      string
	DesiredNetPayout float64
}

// ItemView is a persisted host item with its pricing merged in.
type ItemView struct {
	ID               string         `json:"id"`
	OwnerID          string         `json:"ownerId"`
	ItemTitle        string         `json:"itemTitle"`
	SelectCategory   string         `json:"selectCategory"`
	SelectTimeline   string         `json:"selectTimeline"`
	Description      string         `json:"description"`
	DesiredNetPayout float64        `json:"desiredNetPayout"`
	Calculations     pricing.Result `json:"calculations"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
}

type ListResponse struct {
	Items []ItemView `json:"items"`
}

type QuoteResponse struct {
	DesiredNetPayout float64        `json:"desiredNetPayout"`
	Calculations     pricing.Result `json:"calculations"`
}

func newItemView(it *store.HostItem, calc pricing.Result) ItemView {
	return ItemView{
		ID:               it.ID,
		OwnerID:          it.OwnerID,
		ItemTitle:        it.ItemTitle,
		SelectCategory:   it.SelectCategory,
		SelectTimeline:   it.SelectTimeline,
		Description:      it.Description,
		DesiredNetPayout: it.DesiredNetPayout,
		Calculations:     calc,
		CreatedAt:        it.CreatedAt,
		UpdatedAt:        it.UpdatedAt,
	}
}
