// README: Common value objects (money in minor units, calendar dates) shared across modules.
package types

import (
	"fmt"
	"math"
)

// Money is an amount in minor units (cents) with an ISO currency code.
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// MoneyFromFloat converts a major-unit amount such as 56.45 into Money.
func MoneyFromFloat(v float64, currency string) Money {
	return Money{Amount: int64(math.Round(v * 100)), Currency: currency}
}

// Major returns the amount in major units.
func (m Money) Major() float64 {
	return float64(m.Amount) / 100
}

// Mul scales the amount by an integer factor.
func (m Money) Mul(n int) Money {
	return Money{Amount: m.Amount * int64(n), Currency: m.Currency}
}

// Add sums two amounts. The receiver's currency wins when it is set.
func (m Money) Add(o Money) Money {
	cur := m.Currency
	if cur == "" {
		cur = o.Currency
	}
	return Money{Amount: m.Amount + o.Amount, Currency: cur}
}

// Percent returns pct percent of m, rounded half away from zero.
func (m Money) Percent(pct int64) Money {
	return Money{Amount: roundDiv(m.Amount*pct, 100), Currency: m.Currency}
}

// Div splits the amount into n shares, rounded half away from zero. n <= 0 yields zero.
func (m Money) Div(n int) Money {
	if n <= 0 {
		return Money{Currency: m.Currency}
	}
	return Money{Amount: roundDiv(m.Amount, int64(n)), Currency: m.Currency}
}

func (m Money) String() string {
	return fmt.Sprintf("%.2f %s", m.Major(), m.Currency)
}

func roundDiv(a, b int64) int64 {
	q, r := a/b, a%b
	if 2*abs(r) >= abs(b) {
		if (a < 0) != (b < 0) {
			q--
		} else {
			q++
		}
	}
	return q
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
