// Package pricing derives raffle pricing for a host item from the seller's
// desired net payout.
package pricing

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

const (
	// ProcessingRate is the card processor's share of the total pot.
	ProcessingRate = 0.035
	// WithholdingRate is the IRS withholding applied to the total pot.
	WithholdingRate = 0.25

	// MaxNetPayout is the exclusive upper bound on a net payout. It keeps the
	// spot count inside int64 and the payout inside a NUMERIC(14,2) column.
	MaxNetPayout = 1e12

	bufferRate    = 0.05
	bufferMinimum = 10.0

	convergenceTolerance = 1.0
	maxIterations        = 1000
)

type ticketTier struct {
	upTo  float64
	price int64
}

// Inclusive upper bounds; anything above the last tier pays topTicketPrice.
var ticketTiers = []ticketTier{
	{upTo: 500, price: 5},
	{upTo: 1000, price: 10},
	{upTo: 4999, price: 25},
	{upTo: 24999, price: 50},
}

const topTicketPrice = 100

type feeBracket struct {
	from, to float64
	rate     float64
}

var platformBrackets = []feeBracket{
	{from: 0, to: 50000, rate: 0.10},
	{from: 50000, to: 100000, rate: 0.05},
	{from: 100000, to: math.Inf(1), rate: 0.025},
}

// Result is the pricing derived from a single net payout. Currency amounts
// other than TotalPot are rounded to cents.
type Result struct {
	TicketPrice    int64   `json:"ticketPrice"`
	TotalSpots     int64   `json:"totalSpots"`
	TotalPot       float64 `json:"totalPot"`
	PlatformFee    float64 `json:"platformFee"`
	ProcessingFee  float64 `json:"processingFee"`
	IRSWithholding float64 `json:"irsWithholding"`
	Buffer         float64 `json:"buffer"`
}

// Calculate turns a desired net payout into ticket price, spot count and fees.
// It is pure and safe for concurrent use.
func Calculate(net float64) (Result, error) {
	if err := Validate(net); err != nil {
		return Result{}, err
	}

	price := TicketPrice(net)
	platformFee := PlatformFee(net)
	buffer := Buffer(net)
	base := net + platformFee + buffer

	pot, err := solvePot(base)
	if err != nil {
		return Result{}, err
	}

	spots := int64(math.Ceil(pot / float64(price)))
	totalPot := spots * price

	return Result{
		TicketPrice:    price,
		TotalSpots:     spots,
		TotalPot:       float64(totalPot),
		PlatformFee:    round2(platformFee),
		ProcessingFee:  round2(ProcessingRate * float64(totalPot)),
		IRSWithholding: round2(WithholdingRate * float64(totalPot)),
		Buffer:         round2(buffer),
	}, nil
}

// Validate reports ErrInvalidInput unless net is a finite positive number
// below MaxNetPayout.
func Validate(net float64) error {
	if math.IsNaN(net) || math.IsInf(net, 0) || net <= 0 {
		return fmt.Errorf("%w: net payout must be a finite positive number, got %v", ErrInvalidInput, net)
	}
	if net >= MaxNetPayout {
		return fmt.Errorf("%w: net payout must be below %.0f, got %v", ErrInvalidInput, MaxNetPayout, net)
	}
	return nil
}

// TicketPrice returns the whole-dollar ticket price for the tier net falls in.
func TicketPrice(net float64) int64 {
	for _, t := range ticketTiers {
		if net <= t.upTo {
			return t.price
		}
	}
	return topTicketPrice
}

// PlatformFee applies the marginal brackets to net, like a progressive tax.
func PlatformFee(net float64) float64 {
	var fee float64
	for _, b := range platformBrackets {
		if net <= b.from {
			break
		}
		fee += b.rate * (math.Min(net, b.to) - b.from)
	}
	return fee
}

// Buffer is the safety margin added to the pot: 5% of net, at least $10.
func Buffer(net float64) float64 {
	return math.Max(bufferRate*net, bufferMinimum)
}

// solvePot finds pot = base + ProcessingRate*pot by relaxation, stopping once
// successive values differ by less than convergenceTolerance.
func solvePot(base float64) (float64, error) {
	return relax(base, ProcessingRate, maxIterations)
}

func relax(base, rate float64, limit int) (float64, error) {
	pot := base
	for i := 0; i < limit; i++ {
		next := base + rate*pot
		if math.Abs(next-pot) < convergenceTolerance {
			return next, nil
		}
		pot = next
	}
	return 0, fmt.Errorf("%w: pot did not settle after %d iterations (base %v)", ErrConvergence, limit, base)
}

// round2 rounds half away from zero to two decimal places.
func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
