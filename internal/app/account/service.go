package account

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/mail"
	"strings"
	"time"

	"rofl-backend/internal/auth"
	mailer "rofl-backend/internal/mail"
	"rofl-backend/internal/media"
	"rofl-backend/internal/otp"
	"rofl-backend/internal/store"

	"github.com/rs/zerolog/log"
)

const minPasswordLen = 8

type Users interface {
	CreateUser(ctx context.Context, u store.User) (*store.User, error)
	GetUserByID(ctx context.Context, id string) (*store.User, error)
	GetUserByEmail(ctx context.Context, email string) (*store.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]store.User, error)
	UpdateUserPassword(ctx context.Context, id, passwordHash string) error
	UpdateUserRole(ctx context.Context, id, role string) (*store.User, error)
	SetUserProfileImage(ctx context.Context, userID string, img store.Image) (string, error)
	ListImagesByUploader(ctx context.Context, userID string, limit, offset int) ([]store.Image, error)
}

type Codes interface {
	Issue(ctx context.Context, subject string) (string, error)
	Verify(ctx context.Context, subject, code string) error
	TTL() time.Duration
}

type Images interface {
	PutImage(ctx context.Context, prefix string, r io.Reader) (media.Object, error)
	Delete(ctx context.Context, publicID string) error
}

type Tokens interface {
	Issue(p auth.Principal) (string, time.Time, error)
}

type Deps struct {
	Users  Users
	Codes  Codes
	Mailer mailer.Mailer
	Images Images
	Tokens Tokens
	// IsAdminEmail decides the role of newly registered accounts.
	IsAdminEmail func(email string) bool
}

type Service struct {
	users        Users
	codes        Codes
	mailer       mailer.Mailer
	images       Images
	tokens       Tokens
	isAdminEmail func(string) bool
}

func NewService(d Deps) *Service {
	isAdmin := d.IsAdminEmail
	if isAdmin == nil {
		isAdmin = func(string) bool { return false }
	}
	return &Service{
		users:        d.Users,
		codes:        d.Codes,
		mailer:       d.Mailer,
		images:       d.Images,
		tokens:       d.Tokens,
		isAdminEmail: isAdmin,
	}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*AuthResponse, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, ErrInvalidRequest
	}
	if !validEmail(email) {
		return nil, ErrInvalidEmail
	}
	if len(in.Password) < minPasswordLen {
		return nil, ErrWeakPassword
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	role := store.RoleUser
	if s.isAdminEmail(email) {
		role = store.RoleAdmin
	}
	u, err := s.users.CreateUser(ctx, store.User{Name: name, Email: email, PasswordHash: hash, Role: role})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	log.Info().Str("user_id", u.ID).Str("role", u.Role).Msg("user registered")
	return s.authResponse("User created successfully", u)
}

func (s *Service) Login(ctx context.Context, in LoginInput) (*AuthResponse, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, ErrInvalidRequest
	}
	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := auth.CheckPassword(u.PasswordHash, in.Password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return s.authResponse("Login successful", u)
}

func (s *Service) Me(ctx context.Context, userID string) (*UserView, error) {
	u, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	v := NewUserView(u)
	return &v, nil
}

func (s *Service) ListUsers(ctx context.Context, limit, offset int) (*UsersResponse, error) {
	users, err := s.users.ListUsers(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := &UsersResponse{Items: make([]UserView, 0, len(users))}
	for i := range users {
		out.Items = append(out.Items, NewUserView(&users[i]))
	}
	return out, nil
}

func (s *Service) SetRole(ctx context.Context, userID, role string) (*UserView, error) {
	role = strings.ToLower(strings.TrimSpace(role))
	if role != store.RoleUser && role != store.RoleAdmin {
		return nil, ErrInvalidRole
	}
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidRequest
	}
	u, err := s.users.UpdateUserRole(ctx, userID, role)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	log.Info().Str("user_id", u.ID).Str("role", role).Msg("user role changed")
	v := NewUserView(u)
	return &v, nil
}

// ForgotPassword emails a reset code when the account exists. Every email
// is throttled and answered the same way so callers cannot discover
// accounts; delivery failures are logged, not returned.
func (s *Service) ForgotPassword(ctx context.Context, email string) (*MessageResponse, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, ErrInvalidRequest
	}
	resp := &MessageResponse{Message: "If the account exists, a reset code has been sent"}

	code, err := s.codes.Issue(ctx, email)
	if err != nil {
		if errors.Is(err, otp.ErrTooManySends) {
			return nil, ErrTooManyRequests
		}
		return nil, err
	}
	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return resp, nil
		}
		return nil, err
	}
	msg, err := mailer.ResetCodeMessage(u.Email, mailer.ResetCodeData{Name: u.Name, Code: code, ExpiresIn: s.codes.TTL()})
	if err != nil {
		return nil, err
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		log.Error().Err(err).Str("user_id", u.ID).Msg("send reset code failed")
		return resp, nil
	}
	log.Info().Str("user_id", u.ID).Msg("password reset code sent")
	return resp, nil
}

func (s *Service) ResetPassword(ctx context.Context, in ResetPasswordInput) (*MessageResponse, error) {
	email := normalizeEmail(in.Email)
	code := strings.TrimSpace(in.Code)
	if email == "" || code == "" || in.NewPassword == "" {
		return nil, ErrInvalidRequest
	}
	if len(in.NewPassword) < minPasswordLen {
		return nil, ErrWeakPassword
	}
	if err := s.codes.Verify(ctx, email, code); err != nil {
		if errors.Is(err, otp.ErrInvalidCode) || errors.Is(err, otp.ErrTooManyAttempts) {
			return nil, ErrInvalidCode
		}
		return nil, err
	}
	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCode
		}
		return nil, err
	}
	hash, err := auth.HashPassword(in.NewPassword)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdateUserPassword(ctx, u.ID, hash); err != nil {
		return nil, err
	}
	log.Info().Str("user_id", u.ID).Msg("password reset")
	return &MessageResponse{Message: "Password has been reset"}, nil
}

// UploadProfileImage stores r as the user's new profile image and removes the
// one it replaces.
func (s *Service) UploadProfileImage(ctx context.Context, userID string, r io.Reader) (*UserView, error) {
	if _, err := s.getUser(ctx, userID); err != nil {
		return nil, err
	}
	obj, err := s.images.PutImage(ctx, "profile", r)
	if err != nil {
		switch {
		case errors.Is(err, media.ErrUnsupportedType):
			return nil, ErrUnsupportedImage
		case errors.Is(err, media.ErrTooLarge):
			return nil, ErrImageTooLarge
		}
		return nil, err
	}
	previous, err := s.users.SetUserProfileImage(ctx, userID, store.Image{URL: obj.URL, PublicID: obj.PublicID})
	if err != nil {
		_ = s.images.Delete(ctx, obj.PublicID)
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if previous != "" && previous != obj.PublicID {
		if err := s.images.Delete(ctx, previous); err != nil {
			log.Warn().Err(err).Str("user_id", userID).Str("public_id", previous).Msg("delete previous profile image failed")
		}
	}
	return s.Me(ctx, userID)
}

func (s *Service) ListImages(ctx context.Context, userID string, limit, offset int) (*ImagesResponse, error) {
	if _, err := s.getUser(ctx, userID); err != nil {
		return nil, err
	}
	images, err := s.users.ListImagesByUploader(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := &ImagesResponse{Items: make([]ImageView, 0, len(images))}
	for _, img := range images {
		out.Items = append(out.Items, ImageView{ID: img.ID, URL: img.URL, PublicID: img.PublicID, CreatedAt: img.CreatedAt})
	}
	return out, nil
}

func (s *Service) getUser(ctx context.Context, userID string) (*store.User, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidRequest
	}
	u, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) authResponse(message string, u *store.User) (*AuthResponse, error) {
	token, exp, err := s.tokens.Issue(auth.Principal{UserID: u.ID, Email: u.Email, Role: u.Role})
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Message: message, Token: token, ExpiresAt: exp, User: NewUserView(u)}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
