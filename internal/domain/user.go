package domain

import (
	"slices"      // Copying friends and feed
	"sync"        // Per-user locking
	"sync/atomic" // Creation sequence
	"time"        // Timestamps

	"github.com/shopspring/decimal" // Decimal balances
)

// userSeq orders users for lock acquisition.
var userSeq atomic.Uint64

// User is an account: a balance, at most one credit card, a friend set and
// an append-only activity feed. All methods are safe for concurrent use.
type User struct {
	mu         sync.Mutex      // Guards everything below
	seq        uint64          // Creation order, used for lock ordering
	username   string          // Immutable username
	cardNumber string          // Empty when no card is attached
	balance    decimal.Decimal // May be negative
	activity   []Activity      // Append-only feed
	friends    []*User         // Friend set
	resolver   *Resolver       // Funds payments
}

// Option configures a User at creation.
type Option func(*User)

// WithResolver makes the user's payments go through r instead of DefaultResolver.
func WithResolver(r *Resolver) Option {
	return func(u *User) {
		if r != nil {
			u.resolver = r
		}
	}
}

// NewUser validates username and returns a user with a zero balance and no card.
func NewUser(username string, opts ...Option) (*User, error) {
	if !IsValidUsername(username) {
		return nil, ErrInvalidUsername // Reject before creating anything
	}
	u := &User{
		seq:      userSeq.Add(1),
		username: username,
		balance:  decimal.Zero,
		resolver: DefaultResolver,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u, nil
}

// Username returns the immutable username
func (u *User) Username() string { return u.username }

// Balance returns the current balance
func (u *User) Balance() decimal.Decimal {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.balance
}

// CardNumber returns the attached card, if any.
func (u *User) CardNumber() (string, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.cardNumber, u.cardNumber != ""
}

// AddCreditCard attaches number to the user. A user holds at most one card.
func (u *User) AddCreditCard(number string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.cardNumber != "" {
		return ErrCardAlreadyPresent // Checked before the number itself
	}
	if !IsValidCreditCard(number) {
		return ErrInvalidCard // Not on the whitelist
	}
	u.cardNumber = number
	return nil
}

// AddToBalance adjusts the balance by delta. The result may be negative.
func (u *User) AddToBalance(delta decimal.Decimal) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.addToBalance(delta)
}

// Pay sends amount to target, using the balance when the resolver's policy
// allows it and the credit card otherwise.
func (u *User) Pay(target *User, amount decimal.Decimal, note string) (*Payment, error) {
	return u.resolver.Resolve(u, target, amount, note)
}

// PayWithBalance pays from the balance only.
func (u *User) PayWithBalance(target *User, amount decimal.Decimal, note string) (*Payment, error) {
	return u.resolver.PayWithBalance(u, target, amount, note)
}

// PayWithCard charges the credit card only.
func (u *User) PayWithCard(target *User, amount decimal.Decimal, note string) (*Payment, error) {
	return u.resolver.PayWithCard(u, target, amount, note)
}

// AddFriend adds other to u's friends and records the friendship on u's
// feed only. other does not gain u as a friend.
func (u *User) AddFriend(other *User) (*Friendship, error) {
	if err := validateFriend(u, other); err != nil {
		return nil, err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.hasFriend(other) {
		return nil, ErrAlreadyFriends
	}
	f := &Friendship{initiator: u, target: other, createdAt: time.Now()}
	u.friends = append(u.friends, other)
	u.record(f) // Initiator's feed only
	return f, nil
}

// AddMutualFriend makes u and other friends of each other and records a
// single shared friendship on both feeds.
func (u *User) AddMutualFriend(other *User) (*Friendship, error) {
	if err := validateFriend(u, other); err != nil {
		return nil, err
	}
	unlock := lockPair(u, other) // Both sides change together
	defer unlock()
	uHas, otherHas := u.hasFriend(other), other.hasFriend(u)
	if uHas && otherHas {
		return nil, ErrAlreadyFriends
	}
	f := &Friendship{initiator: u, target: other, mutual: true, createdAt: time.Now()}
	if !uHas {
		u.friends = append(u.friends, other)
	}
	if !otherHas {
		other.friends = append(other.friends, u)
	}
	u.record(f)
	other.record(f) // Same record on both feeds
	return f, nil
}

// Friends returns a copy of the friend set in the order friends were added
func (u *User) Friends() []*User {
	u.mu.Lock()
	defer u.mu.Unlock()
	return slices.Clone(u.friends)
}

// Feed returns the user's activity in the order it happened.
func (u *User) Feed() []Activity {
	u.mu.Lock()
	defer u.mu.Unlock()
	return slices.Clone(u.activity)
}

// validateFriend rejects a missing friend and befriending yourself
func validateFriend(u, other *User) error {
	if other == nil {
		return ErrNoFriend
	}
	if u == other || u.username == other.username {
		return ErrSelfFriendship
	}
	return nil
}

// The helpers below expect u.mu to be held.

func (u *User) addToBalance(delta decimal.Decimal) {
	u.balance = u.balance.Add(delta)
}

func (u *User) record(a Activity) {
	u.activity = append(u.activity, a)
}

func (u *User) hasFriend(other *User) bool {
	return slices.Contains(u.friends, other)
}

// lockPair locks a and b in creation order and returns the matching unlock.
func lockPair(a, b *User) func() {
	if a == b {
		a.mu.Lock()
		return a.mu.Unlock
	}
	first, second := a, b
	if b.seq < a.seq {
		first, second = b, a // Older user locks first
	}
	first.mu.Lock()
	second.mu.Lock()
	return func() {
		second.mu.Unlock()
		first.mu.Unlock()
	}
}
