package domain

import (
	"time" // Timestamps

	"github.com/google/uuid"        // Payment IDs
	"github.com/shopspring/decimal" // Decimal amounts
)

// ActivityKind tags the closed set of feed entries.
type ActivityKind string

const (
	KindPayment    ActivityKind = "payment"    // Money moved between users
	KindFriendship ActivityKind = "friendship" // A user added a friend
)

// Activity is a feed entry. The set of implementations is closed: only
// *Payment and *Friendship satisfy it.
type Activity interface {
	Kind() ActivityKind
	CreatedAt() time.Time
	sealed()
}

// FundingSource records how a payment was paid for.
type FundingSource string

const (
	SourceBalance FundingSource = "balance" // Debited from the payer's balance
	SourceCard    FundingSource = "card"    // Charged to the payer's credit card
)

// Payment is an immutable record of money moving from payer to payee.
type Payment struct {
	id        string          // UUID
	amount    decimal.Decimal // Always positive
	payer     *User           // Sender
	payee     *User           // Receiver
	note      string          // Optional note
	source    FundingSource   // Balance or card
	createdAt time.Time       // When the payment happened
}

func newPayment(payer, payee *User, amount decimal.Decimal, note string, source FundingSource, at time.Time) *Payment {
	return &Payment{
		id:        uuid.NewString(), // Generate payment ID
		amount:    amount,
		payer:     payer,
		payee:     payee,
		note:      note,
		source:    source,
		createdAt: at,
	}
}

// ID returns the payment's UUID
func (p *Payment) ID() string { return p.id }

// Amount returns how much was paid
func (p *Payment) Amount() decimal.Decimal { return p.amount }

// Payer returns the sender
func (p *Payment) Payer() *User { return p.payer }

// Payee returns the receiver
func (p *Payment) Payee() *User { return p.payee }

// Note returns the optional note, empty when none was given
func (p *Payment) Note() string { return p.note }

// Source reports whether the balance or the card funded the payment
func (p *Payment) Source() FundingSource { return p.source }

// CreatedAt returns when the payment happened
func (p *Payment) CreatedAt() time.Time { return p.createdAt }

// Kind returns KindPayment
func (p *Payment) Kind() ActivityKind { return KindPayment }

func (p *Payment) sealed() {}

// Friendship is an immutable record of initiator adding target as a friend.
// Mutual friendships are recorded once and shared by both feeds.
type Friendship struct {
	initiator *User     // User who added the friend
	target    *User     // User who was added
	mutual    bool      // Added on both sides
	createdAt time.Time // When the friendship happened
}

// Initiator returns the user who added the friend
func (f *Friendship) Initiator() *User { return f.initiator }

// Target returns the user who was added
func (f *Friendship) Target() *User { return f.target }

// Mutual reports whether both users gained each other as friends
func (f *Friendship) Mutual() bool { return f.mutual }

// CreatedAt returns when the friendship happened
func (f *Friendship) CreatedAt() time.Time { return f.createdAt }

// Kind returns KindFriendship
func (f *Friendship) Kind() ActivityKind { return KindFriendship }

func (f *Friendship) sealed() {}
