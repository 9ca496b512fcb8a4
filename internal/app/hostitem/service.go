package hostitem

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"rofl-backend/internal/pricing"
	"rofl-backend/internal/store"

	"github.com/rs/zerolog/log"
)

type Repository interface {
	CreateHostItem(ctx context.Context, it store.HostItem) (*store.HostItem, error)
	GetHostItem(ctx context.Context, id string) (*store.HostItem, error)
	ListHostItems(ctx context.Context, ownerID string, limit, offset int) ([]store.HostItem, error)
}

// Observer is told the outcome of every pricing calculation.
type Observer func(err error)

type Service struct {
	repo    Repository
	observe Observer
}

func NewService(repo Repository, observe Observer) *Service {
	if observe == nil {
		observe = func(error) {}
	}
	return &Service{repo: repo, observe: observe}
}

func (s *Service) Create(ctx context.Context, ownerID string, in CreateInput) (*ItemView, error) {
	it := store.HostItem{
		OwnerID:          strings.TrimSpace(ownerID),
		ItemTitle:        strings.TrimSpace(in.ItemTitle),
		SelectCategory:   strings.TrimSpace(in.SelectCategory),
		SelectTimeline:   strings.TrimSpace(in.SelectTimeline),
		Description:      strings.TrimSpace(in.Description),
		DesiredNetPayout: in.DesiredNetPayout,
	}
	if it.OwnerID == "" || it.ItemTitle == "" || it.SelectCategory == "" || it.SelectTimeline == "" || it.Description == "" {
		return nil, ErrInvalidRequest
	}
	// Price before persisting so invalid payouts never reach the store.
	if _, err := s.calculate(it.DesiredNetPayout); err != nil {
		return nil, err
	}
	// The column holds cents with twelve integer digits.
	if cents := math.Round(it.DesiredNetPayout * 100); cents < 1 || cents >= pricing.MaxNetPayout*100 {
		return nil, ErrInvalidPayout
	}
	created, err := s.repo.CreateHostItem(ctx, it)
	if err != nil {
		return nil, err
	}
	view, err := s.view(created)
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("item_id", created.ID).
		Str("owner_id", created.OwnerID).
		Float64("desired_net_payout", created.DesiredNetPayout).
		Float64("total_pot", view.Calculations.TotalPot).
		Msg("host item created")
	return view, nil
}

func (s *Service) Get(ctx context.Context, id string) (*ItemView, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidRequest
	}
	it, err := s.repo.GetHostItem(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.view(it)
}

func (s *Service) List(ctx context.Context, ownerID string, limit, offset int) (*ListResponse, error) {
	items, err := s.repo.ListHostItems(ctx, strings.TrimSpace(ownerID), limit, offset)
	if err != nil {
		return nil, err
	}
	out := &ListResponse{Items: make([]ItemView, 0, len(items))}
	for i := range items {
		v, err := s.view(&items[i])
		if err != nil {
			return nil, err
		}
		out.Items = append(out.Items, *v)
	}
	return out, nil
}

// Quote prices a payout without persisting anything.
func (s *Service) Quote(_ context.Context, net float64) (*QuoteResponse, error) {
	calc, err := s.calculate(net)
	if err != nil {
		return nil, err
	}
	return &QuoteResponse{DesiredNetPayout: net, Calculations: calc}, nil
}

func (s *Service) view(it *store.HostItem) (*ItemView, error) {
	calc, err := s.calculate(it.DesiredNetPayout)
	if err != nil {
		return nil, fmt.Errorf("price item %s: %w", it.ID, err)
	}
	v := newItemView(it, calc)
	return &v, nil
}

func (s *Service) calculate(net float64) (pricing.Result, error) {
	calc, err := pricing.Calculate(net)
	s.observe(err)
	if err != nil {
		if errors.Is(err, pricing.ErrInvalidInput) {
			return pricing.Result{}, ErrInvalidPayout
		}
		log.Error().Err(err).Float64("desired_net_payout", net).Msg("pricing failed")
		return pricing.Result{}, err
	}
	return calc, nil
}
