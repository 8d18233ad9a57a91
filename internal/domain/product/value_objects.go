package product

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	MaxTitleLength = 200
	// MaxCents is the largest amount a NUMERIC(12,2) column holds.
	MaxCents int64 = 999_999_999_999
)

var (
	ErrEmptyTitle    = errors.New("title cannot be empty")
	ErrTitleTooLong  = errors.New("title is too long")
	ErrNegativePrice = errors.New("price cannot be negative")
	ErrInvalidPrice  = errors.New("price is not a finite amount within range")
)

// Money is an amount in minor currency units (cents).
type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativePrice
	}
	if cents > MaxCents {
		return Money{}, ErrInvalidPrice
	}
	return Money{cents: cents}, nil
}

// MoneyFromDecimal converts a wire decimal (e.g. 19.99) to cents, rounding half away from zero.
func MoneyFromDecimal(v float64) (Money, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Money{}, ErrInvalidPrice
	}
	cents := math.Round(v * 100)
	if cents < 0 {
		return Money{}, ErrNegativePrice
	}
	if cents > float64(MaxCents) {
		return Money{}, ErrInvalidPrice
	}
	return NewMoney(int64(cents))
}

func MustMoney(cents int64) Money {
	m, err := NewMoney(cents)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Cents() int64 { return m.cents }

func (m Money) Decimal() float64 {
	return float64(m.cents) / 100
}

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

func (m Money) Times(qty int32) Money {
	return Money{cents: m.cents * int64(qty)}
}

// CheckedAdd is Add that reports false when the sum exceeds MaxCents.
func (m Money) CheckedAdd(other Money) (Money, bool) {
	if other.cents > MaxCents-m.cents {
		return Money{}, false
	}
	return m.Add(other), true
}

// CheckedTimes is Times that reports false when the product exceeds MaxCents.
// qty must not be negative.
func (m Money) CheckedTimes(qty int32) (Money, bool) {
	if qty < 0 {
		return Money{}, false
	}
	if qty > 0 && m.cents > MaxCents/int64(qty) {
		return Money{}, false
	}
	return m.Times(qty), true
}

func (m Money) String() string {
	return strconv.FormatFloat(m.Decimal(), 'f', 2, 64)
}

type Title struct {
	value string
}

func NewTitle(s string) (Title, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Title{}, ErrEmptyTitle
	}
	if utf8.RuneCountInString(s) > MaxTitleLength {
		return Title{}, ErrTitleTooLong
	}
	return Title{value: s}, nil
}

func (t Title) String() string { return t.value }
