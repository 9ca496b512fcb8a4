package store

import (
	"context"

	"rofl-backend/internal/store/sqlcgen"
)

func (s *Store) ListImagesByUploader(ctx context.Context, userID string, limit, offset int) ([]Image, error) {
	l, o := clampPage(limit, offset)
	rows, err := s.q.ListImagesByUploader(ctx, sqlcgen.ListImagesByUploaderParams{
		UploadedBy: textParam(userID),
		Limit:      l,
		Offset:     o,
	})
	if err != nil {
		return nil, err
	}
	out := make([]Image, 0, len(rows))
	for _, row := range rows {
		out = append(out, Image{
			ID:         row.ID,
			URL:        row.Url,
			PublicID:   row.PublicID,
			UploadedBy: textVal(row.UploadedBy),
			CreatedAt:  row.CreatedAt.Time,
		})
	}
	return out, nil
}
