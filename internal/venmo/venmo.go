// Package venmo is the application facade: it creates and registers users,
// routes payments and friendships between them by username, and journals
// every successful operation.
package venmo

import (
	"context" // Context for journal calls
	"errors"  // Sentinel errors
	"fmt"     // Error wrapping
	"io"      // Feed output
	"strings" // Case-insensitive usernames
	"sync"    // Registry locking

	"github.com/shopspring/decimal" // Decimal amounts
	"github.com/sirupsen/logrus"    // Logging library

	"minivenmo/internal/domain" // Users and payments
	"minivenmo/internal/feed"   // Feed rendering
)

// ErrUserNotFound is returned when a username is not registered.
var ErrUserNotFound = errors.New("user not found")

// Journal receives every successful operation.
type Journal interface {
	RecordUser(ctx context.Context, u *domain.User, initialBalance decimal.Decimal) error
	RecordPayment(ctx context.Context, p *domain.Payment) error
	RecordFriendship(ctx context.Context, f *domain.Friendship) error
}

// MiniVenmo holds the user registry. Usernames are unique regardless of case.
type MiniVenmo struct {
	mu       sync.RWMutex            // Guards users and order
	users    map[string]*domain.User // Keyed by lowercased username
	order    []*domain.User          // Creation order
	resolver *domain.Resolver        // Given to every new user
	journal  Journal                 // Optional ledger
	log      logrus.FieldLogger      // Operation log
}

// Option configures a MiniVenmo
type Option func(*MiniVenmo)

// WithResolver sets the resolver given to every user the facade creates.
func WithResolver(r *domain.Resolver) Option {
	return func(v *MiniVenmo) { v.resolver = r }
}

// WithJournal records every successful operation in j
func WithJournal(j Journal) Option {
	return func(v *MiniVenmo) { v.journal = j }
}

// WithLogger replaces the standard logrus logger
func WithLogger(l logrus.FieldLogger) Option {
	return func(v *MiniVenmo) { v.log = l }
}

// New returns an empty registry using DefaultResolver and the standard logger
func New(opts ...Option) *MiniVenmo {
	v := &MiniVenmo{
		users:    make(map[string]*domain.User),
		resolver: domain.DefaultResolver,
		log:      logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// CreateUser creates a user, attaches cardNumber unless it is empty, credits
// the initial balance and registers the user.
func (v *MiniVenmo) CreateUser(ctx context.Context, username string, balance decimal.Decimal, cardNumber string) (*domain.User, error) {
	u, err := domain.NewUser(username, domain.WithResolver(v.resolver))
	if err != nil {
		return nil, err
	}
	if cardNumber != "" { // Empty means no card
		if err := u.AddCreditCard(cardNumber); err != nil {
			return nil, err
		}
	}
	u.AddToBalance(balance)

	key := strings.ToLower(username) // Usernames are unique regardless of case
	v.mu.Lock()
	if _, taken := v.users[key]; taken {
		v.mu.Unlock()
		return nil, domain.ErrUsernameTaken
	}
	v.users[key] = u
	v.order = append(v.order, u)
	v.mu.Unlock()

	v.log.WithFields(logrus.Fields{
		"username": username,
		"balance":  balance.StringFixed(2),
		"has_card": cardNumber != "",
	}).Info("User created")
	if v.journal != nil {
		if err := v.journal.RecordUser(ctx, u, balance); err != nil {
			v.log.WithError(err).WithField("username", username).Warn("Failed to journal user") // User still exists
		}
	}
	return u, nil
}

// User looks up a registered user.
func (v *MiniVenmo) User(username string) (*domain.User, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	u, ok := v.users[strings.ToLower(username)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, username)
	}
	return u, nil
}

// Users returns every registered user in creation order.
func (v *MiniVenmo) Users() []*domain.User {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]*domain.User, len(v.order))
	copy(out, v.order)
	return out
}

// Pay moves amount from one registered user to another.
func (v *MiniVenmo) Pay(ctx context.Context, from, to string, amount decimal.Decimal, note string) (*domain.Payment, error) {
	payer, err := v.User(from)
	if err != nil {
		return nil, err
	}
	payee, err := v.User(to)
	if err != nil {
		return nil, err
	}

	fields := logrus.Fields{
		"from":   payer.Username(), // Payer
		"to":     payee.Username(), // Payee
		"amount": amount.String(),  // Requested amount
	}
	p, err := payer.Pay(payee, amount, note)
	if err != nil {
		v.log.WithFields(fields).WithError(err).Warn("Payment failed")
		return nil, err
	}
	fields["payment_id"] = p.ID() // Payment UUID
	fields["source"] = p.Source() // Balance or card
	v.log.WithFields(fields).Info("Payment completed")

	if v.journal != nil {
		if err := v.journal.RecordPayment(ctx, p); err != nil {
			v.log.WithFields(fields).WithError(err).Warn("Failed to journal payment")
		}
	}
	return p, nil
}

// AddFriend makes from befriend to. With mutual set both users gain each
// other as friends and share one feed entry.
func (v *MiniVenmo) AddFriend(ctx context.Context, from, to string, mutual bool) (*domain.Friendship, error) {
	initiator, err := v.User(from)
	if err != nil {
		return nil, err
	}
	target, err := v.User(to)
	if err != nil {
		return nil, err
	}

	var f *domain.Friendship
	if mutual {
		f, err = initiator.AddMutualFriend(target)
	} else {
		f, err = initiator.AddFriend(target)
	}
	fields := logrus.Fields{"from": initiator.Username(), "to": target.Username(), "mutual": mutual}
	if err != nil {
		v.log.WithFields(fields).WithError(err).Warn("Friendship failed")
		return nil, err
	}
	v.log.WithFields(fields).Info("Friendship added")

	if v.journal != nil {
		if err := v.journal.RecordFriendship(ctx, f); err != nil {
			v.log.WithFields(fields).WithError(err).Warn("Failed to journal friendship")
		}
	}
	return f, nil
}

// Feed returns the rendered feed of a registered user.
func (v *MiniVenmo) Feed(username string) ([]string, error) {
	u, err := v.User(username)
	if err != nil {
		return nil, err
	}
	return feed.Collect(u.Feed()), nil
}

// RenderFeed prints activities to w, one line each.
func (v *MiniVenmo) RenderFeed(w io.Writer, activities []domain.Activity) error {
	return feed.Render(w, feed.Lines(activities))
}
