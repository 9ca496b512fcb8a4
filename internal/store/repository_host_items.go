package store

import (
	"context"

	"rofl-backend/internal/store/sqlcgen"
)

func hostItemFromRow(row sqlcgen.HostItem) *HostItem {
	return &HostItem{
		ID:               row.ID,
		OwnerID:          row.OwnerID,
		ItemTitle:        row.ItemTitle,
		SelectCategory:   row.SelectCategory,
		SelectTimeline:   row.SelectTimeline,
		Description:      row.Description,
		DesiredNetPayout: numericVal(row.DesiredNetPayout),
		CreatedAt:        row.CreatedAt.Time,
		UpdatedAt:        row.UpdatedAt.Time,
	}
}

func (s *Store) CreateHostItem(ctx context.Context, it HostItem) (*HostItem, error) {
	row, err := s.q.CreateHostItem(ctx, sqlcgen.CreateHostItemParams{
		ID:               NewID(),
		OwnerID:          it.OwnerID,
		ItemTitle:        it.ItemTitle,
		SelectCategory:   it.SelectCategory,
		SelectTimeline:   it.SelectTimeline,
		Description:      it.Description,
		DesiredNetPayout: numericParam(it.DesiredNetPayout),
	})
	if err != nil {
		return nil, err
	}
	return hostItemFromRow(row), nil
}

func (s *Store) GetHostItem(ctx context.Context, id string) (*HostItem, error) {
	row, err := s.q.GetHostItem(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return hostItemFromRow(row), nil
}

// ListHostItems returns newest items first. An empty ownerID lists every owner.
func (s *Store) ListHostItems(ctx context.Context, ownerID string, limit, offset int) ([]HostItem, error) {
	l, o := clampPage(limit, offset)
	rows, err := s.q.ListHostItems(ctx, sqlcgen.ListHostItemsParams{
		OwnerID:   textParam(ownerID),
		RowLimit:  l,
		RowOffset: o,
	})
	if err != nil {
		return nil, err
	}
	out := make([]HostItem, 0, len(rows))
	for _, row := range rows {
		out = append(out, *hostItemFromRow(row))
	}
	return out, nil
}
