package domain

import (
	"errors"  // Error matching
	"fmt"     // Error wrapping
	"strings" // Policy parsing
	"time"    // Timestamps

	"github.com/shopspring/decimal" // Decimal amounts
)

// BalancePolicy decides when a payment may be funded from the payer's balance.
type BalancePolicy int

const (
	// PolicyAnyPositive funds from the balance whenever it is above zero,
	// even if that leaves it negative.
	PolicyAnyPositive BalancePolicy = iota
	// PolicyFullCover funds from the balance only when it covers the whole amount.
	PolicyFullCover
)

// String returns the name accepted by ParseBalancePolicy
func (p BalancePolicy) String() string {
	switch p {
	case PolicyFullCover:
		return "full-cover"
	default:
		return "any-positive"
	}
}

// ParseBalancePolicy accepts "any-positive" (or "permissive") and
// "full-cover" (or "strict"). An empty string selects PolicyAnyPositive.
func ParseBalancePolicy(s string) (BalancePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any-positive", "permissive":
		return PolicyAnyPositive, nil
	case "full-cover", "strict":
		return PolicyFullCover, nil
	}
	return PolicyAnyPositive, fmt.Errorf("unknown balance policy %q", s)
}

// covers reports whether balance may fund amount under p
func (p BalancePolicy) covers(balance, amount decimal.Decimal) bool {
	if p == PolicyFullCover {
		return balance.IsPositive() && balance.GreaterThanOrEqual(amount)
	}
	return balance.IsPositive()
}

// CardCharger charges a card through the card processor.
type CardCharger interface {
	Charge(cardNumber string, amount decimal.Decimal) error
}

// NoopCharger approves every charge.
type NoopCharger struct{}

// Charge always succeeds
func (NoopCharger) Charge(string, decimal.Decimal) error { return nil }

// Resolver picks the funding source for a payment and applies it.
type Resolver struct {
	policy  BalancePolicy // When the balance may be used
	charger CardCharger   // Card processor for the fallback
}

// DefaultResolver uses PolicyAnyPositive and a NoopCharger.
var DefaultResolver = NewResolver(PolicyAnyPositive, nil)

// NewResolver returns a resolver using policy. A nil charger approves every charge.
func NewResolver(policy BalancePolicy, charger CardCharger) *Resolver {
	if charger == nil {
		charger = NoopCharger{} // Approve every charge
	}
	return &Resolver{policy: policy, charger: charger}
}

// Policy returns the balance policy in use
func (r *Resolver) Policy() BalancePolicy { return r.policy }

// Resolve tries the balance first and falls back to the card when the
// balance does not qualify. Any other error is returned as is.
func (r *Resolver) Resolve(payer, payee *User, amount decimal.Decimal, note string) (*Payment, error) {
	p, err := r.PayWithBalance(payer, payee, amount, note)
	if errors.Is(err, ErrInsufficientBalance) {
		return r.PayWithCard(payer, payee, amount, note)
	}
	return p, err
}

// PayWithBalance debits payer and credits payee, recording the payment on
// both feeds.
func (r *Resolver) PayWithBalance(payer, payee *User, amount decimal.Decimal, note string) (*Payment, error) {
	if err := validatePayment(payer, payee, amount); err != nil {
		return nil, err
	}
	unlock := lockPair(payer, payee) // Debit, credit and feeds change together
	defer unlock()

	if !r.policy.covers(payer.balance, amount) {
		return nil, ErrInsufficientBalance // Caller may fall back to the card
	}
	payer.addToBalance(amount.Neg()) // Debit payer
	payee.addToBalance(amount)       // Credit payee

	p := newPayment(payer, payee, amount, note, SourceBalance, time.Now())
	payer.record(p)
	payee.record(p) // Same record on both feeds
	return p, nil
}

// PayWithCard charges payer's card and credits payee, recording the payment
// on both feeds. The payer's balance is left untouched.
func (r *Resolver) PayWithCard(payer, payee *User, amount decimal.Decimal, note string) (*Payment, error) {
	if err := validatePayment(payer, payee, amount); err != nil {
		return nil, err
	}
	unlock := lockPair(payer, payee)
	defer unlock()

	if payer.cardNumber == "" {
		return nil, ErrNoCard // Nothing to charge
	}
	if err := r.charger.Charge(payer.cardNumber, amount); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCardDeclined, err) // Keep the processor's reason
	}
	payee.addToBalance(amount) // Credit payee only

	p := newPayment(payer, payee, amount, note, SourceCard, time.Now())
	payer.record(p)
	payee.record(p) // Same record on both feeds
	return p, nil
}

// validatePayment runs before any balance or card is looked at
func validatePayment(payer, payee *User, amount decimal.Decimal) error {
	if payee == nil {
		return ErrNoPayee
	}
	if payer == payee || payer.username == payee.username {
		return ErrSelfPayment
	}
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}
