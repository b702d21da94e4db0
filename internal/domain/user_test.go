package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// newTestUser creates a user with the given balance and, when card is not
// empty, an attached card.
func newTestUser(t *testing.T, name, balance, card string, opts ...Option) *User {
	t.Helper()
	u, err := NewUser(name, opts...)
	require.NoError(t, err)
	if card != "" {
		require.NoError(t, u.AddCreditCard(card))
	}
	u.AddToBalance(dec(balance))
	return u
}

func TestNewUserRejectsInvalidUsername(t *testing.T) {
	_, err := NewUser("no")
	assert.ErrorIs(t, err, ErrInvalidUsername)

	var ue *UsernameError
	assert.ErrorAs(t, err, &ue)
}

func TestNewUserStartsEmpty(t *testing.T) {
	u, err := NewUser("Bobby")
	require.NoError(t, err)
	assert.Equal(t, "Bobby", u.Username())
	assert.True(t, u.Balance().IsZero())
	_, ok := u.CardNumber()
	assert.False(t, ok)
	assert.Empty(t, u.Feed())
	assert.Empty(t, u.Friends())
}

func TestAddToBalancePositiveAndNegative(t *testing.T) {
	u, err := NewUser("Bobby")
	require.NoError(t, err)

	u.AddToBalance(dec("5"))
	assert.True(t, u.Balance().Equal(dec("5.00")))

	u.AddToBalance(dec("-10.0"))
	assert.True(t, u.Balance().Equal(dec("-5")))
}

func TestAddCreditCard(t *testing.T) {
	u := newTestUser(t, "Bobby", "7", "4111111111111111")

	err := u.AddCreditCard("4242424242424242")
	assert.ErrorIs(t, err, ErrCardAlreadyPresent)
	var ce *CreditCardError
	assert.ErrorAs(t, err, &ce)

	card, ok := u.CardNumber()
	assert.True(t, ok)
	assert.Equal(t, "4111111111111111", card)
	assert.True(t, u.Balance().Equal(dec("7")))
}

func TestAddCreditCardRejectsUnknownNumber(t *testing.T) {
	u := newTestUser(t, "Bobby", "0", "")
	assert.ErrorIs(t, u.AddCreditCard("1234123412341234"), ErrInvalidCard)
	_, ok := u.CardNumber()
	assert.False(t, ok)

	require.NoError(t, u.AddCreditCard("4242424242424242"))
}

func TestAddFriendIsOneSided(t *testing.T) {
	bobby := newTestUser(t, "Bobby", "0", "")
	carol := newTestUser(t, "Carol", "0", "")

	f, err := carol.AddFriend(bobby)
	require.NoError(t, err)
	assert.Same(t, carol, f.Initiator())
	assert.Same(t, bobby, f.Target())
	assert.False(t, f.Mutual())

	assert.Equal(t, []*User{bobby}, carol.Friends())
	assert.Empty(t, bobby.Friends())
	require.Len(t, carol.Feed(), 1)
	assert.Same(t, f, carol.Feed()[0])
	assert.Empty(t, bobby.Feed())

	_, err = carol.AddFriend(bobby)
	assert.ErrorIs(t, err, ErrAlreadyFriends)
	assert.Len(t, carol.Feed(), 1)

	// The other side may still add the friendship.
	_, err = bobby.AddFriend(carol)
	require.NoError(t, err)
	assert.Len(t, bobby.Feed(), 1)
}

func TestAddFriendRejectsSelfAndNil(t *testing.T) {
	bobby := newTestUser(t, "Bobby", "0", "")

	_, err := bobby.AddFriend(bobby)
	assert.ErrorIs(t, err, ErrSelfFriendship)
	_, err = bobby.AddFriend(nil)
	assert.ErrorIs(t, err, ErrNoFriend)
	_, err = bobby.AddMutualFriend(bobby)
	assert.ErrorIs(t, err, ErrSelfFriendship)
	assert.Empty(t, bobby.Feed())
}

func TestAddMutualFriendSharesOneRecord(t *testing.T) {
	bobby := newTestUser(t, "Bobby", "0", "")
	carol := newTestUser(t, "Carol", "0", "")

	f, err := bobby.AddMutualFriend(carol)
	require.NoError(t, err)
	assert.True(t, f.Mutual())

	assert.Equal(t, []*User{carol}, bobby.Friends())
	assert.Equal(t, []*User{bobby}, carol.Friends())
	require.Len(t, bobby.Feed(), 1)
	require.Len(t, carol.Feed(), 1)
	assert.Same(t, bobby.Feed()[0], carol.Feed()[0])

	_, err = carol.AddMutualFriend(bobby)
	assert.ErrorIs(t, err, ErrAlreadyFriends)
}

func TestAddMutualFriendCompletesOneSidedFriendship(t *testing.T) {
	bobby := newTestUser(t, "Bobby", "0", "")
	carol := newTestUser(t, "Carol", "0", "")

	_, err := carol.AddFriend(bobby)
	require.NoError(t, err)
	_, err = bobby.AddMutualFriend(carol)
	require.NoError(t, err)

	assert.Len(t, carol.Friends(), 1)
	assert.Len(t, bobby.Friends(), 1)
	assert.Len(t, carol.Feed(), 2)
	assert.Len(t, bobby.Feed(), 1)
}

func TestFeedKeepsOperationOrder(t *testing.T) {
	bobby := newTestUser(t, "Bobby", "20", "4111111111111111")
	carol := newTestUser(t, "Carol", "0", "")

	p1, err := bobby.Pay(carol, dec("5"), "Coffee")
	require.NoError(t, err)
	f, err := bobby.AddFriend(carol)
	require.NoError(t, err)
	p2, err := bobby.Pay(carol, dec("3"), "Snacks")
	require.NoError(t, err)

	assert.Equal(t, []Activity{p1, f, p2}, bobby.Feed())
	assert.Equal(t, []Activity{p1, p2}, carol.Feed())
}

func TestFeedReturnsCopy(t *testing.T) {
	bobby := newTestUser(t, "Bobby", "0", "")
	carol := newTestUser(t, "Carol", "0", "")
	_, err := bobby.AddFriend(carol)
	require.NoError(t, err)

	feed := bobby.Feed()
	feed[0] = nil
	assert.NotNil(t, bobby.Feed()[0])
}
