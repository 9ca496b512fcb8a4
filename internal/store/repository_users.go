package store

import (
	"context"

	"rofl-backend/internal/store/sqlcgen"

	"github.com/jackc/pgx/v5"
)

func userFromRow(row sqlcgen.User) *User {
	return &User{
		ID:                   row.ID,
		Name:                 row.Name,
		Email:                row.Email,
		PasswordHash:         row.PasswordHash,
		Role:                 row.Role,
		ProfileImageURL:      textVal(row.ProfileImageUrl),
		ProfileImagePublicID: textVal(row.ProfileImagePublicID),
		CreatedAt:            row.CreatedAt.Time,
		UpdatedAt:            row.UpdatedAt.Time,
	}
}

// CreateUser inserts u with a fresh ID. A duplicate email yields ErrConflict.
func (s *Store) CreateUser(ctx context.Context, u User) (*User, error) {
	if u.Role == "" {
		u.Role = RoleUser
	}
	row, err := s.q.CreateUser(ctx, sqlcgen.CreateUserParams{
		ID:           NewID(),
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
	})
	if err != nil {
		return nil, mapConflict(err)
	}
	return userFromRow(row), nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*User, error) {
	row, err := s.q.GetUserByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return userFromRow(row), nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	row, err := s.q.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return userFromRow(row), nil
}

func (s *Store) ListUsers(ctx context.Context, limit, offset int) ([]User, error) {
	l, o := clampPage(limit, offset)
	rows, err := s.q.ListUsers(ctx, sqlcgen.ListUsersParams{Limit: l, Offset: o})
	if err != nil {
		return nil, err
	}
	out := make([]User, 0, len(rows))
	for _, row := range rows {
		out = append(out, *userFromRow(row))
	}
	return out, nil
}

func (s *Store) UpdateUserPassword(ctx context.Context, id, passwordHash string) error {
	n, err := s.q.UpdateUserPassword(ctx, sqlcgen.UpdateUserPasswordParams{PasswordHash: passwordHash, ID: id})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) UpdateUserRole(ctx context.Context, id, role string) (*User, error) {
	row, err := s.q.UpdateUserRole(ctx, sqlcgen.UpdateUserRoleParams{Role: role, ID: id})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return userFromRow(row), nil
}

// SetUserProfileImage records img, points the user's profile at it and drops
// the row of the image it replaces, in one transaction. It returns the public
// ID of the replaced image, if any.
func (s *Store) SetUserProfileImage(ctx context.Context, userID string, img Image) (string, error) {
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return "", err
	}
	defer tx.Rollback(ctx)
	qtx := s.q.WithTx(tx)

	previous, err := qtx.LockUserProfileImage(ctx, userID)
	if err != nil {
		return "", mapNotFound(err)
	}
	if img.ID == "" {
		img.ID = NewID()
	}
	if err := qtx.InsertImage(ctx, sqlcgen.InsertImageParams{
		ID:         img.ID,
		Url:        img.URL,
		PublicID:   img.PublicID,
		UploadedBy: textParam(userID),
	}); err != nil {
		return "", err
	}
	if old := textVal(previous); old != "" && old != img.PublicID {
		if err := qtx.DeleteUploaderImage(ctx, sqlcgen.DeleteUploaderImageParams{
			PublicID:   old,
			UploadedBy: textParam(userID),
		}); err != nil {
			return "", err
		}
	}
	if err := qtx.SetUserProfileImage(ctx, sqlcgen.SetUserProfileImageParams{
		ProfileImageUrl:      textParam(img.URL),
		ProfileImagePublicID: textParam(img.PublicID),
		ID:                   userID,
	}); err != nil {
		return "", err
	}
	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return textVal(previous), nil
}
