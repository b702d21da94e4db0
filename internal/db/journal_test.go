package db

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minivenmo/internal/domain"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	gdb, err := Open(name)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return NewJournal(gdb)
}

func newUser(t *testing.T, name, balance, card string) *domain.User {
	t.Helper()
	u, err := domain.NewUser(name)
	require.NoError(t, err)
	if card != "" {
		require.NoError(t, u.AddCreditCard(card))
	}
	u.AddToBalance(decimal.RequireFromString(balance))
	return u
}

func TestRecordUser(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()
	bobby := newUser(t, "Bobby", "5", "4111111111111111")

	require.NoError(t, j.RecordUser(ctx, bobby, decimal.NewFromInt(5)))
	total, err := j.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	// Usernames are unique in the ledger.
	assert.Error(t, j.RecordUser(ctx, bobby, decimal.Zero))

	var rec UserRecord
	require.NoError(t, j.db.First(&rec).Error)
	assert.Equal(t, "Bobby", rec.Username)
	assert.True(t, rec.HasCard)
	assert.True(t, rec.InitialBalance.Equal(decimal.NewFromInt(5)))
}

func TestRecordAndListPayments(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()
	bobby := newUser(t, "Bobby", "5", "4111111111111111")
	carol := newUser(t, "Carol", "10", "4242424242424242")
	dave := newUser(t, "Dave_", "0", "4242424242424242")

	coffee, err := bobby.Pay(carol, decimal.NewFromInt(5), "Coffee")
	require.NoError(t, err)
	lunch, err := dave.Pay(carol, decimal.RequireFromString("12.5"), "Lunch")
	require.NoError(t, err)
	tip, err := carol.Pay(dave, decimal.NewFromInt(1), "")
	require.NoError(t, err)
	for _, p := range []*domain.Payment{coffee, lunch, tip} {
		require.NoError(t, j.RecordPayment(ctx, p))
	}

	all, total, err := j.ListPayments(ctx, PaymentFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, all, 3)
	assert.Equal(t, tip.ID(), all[0].PaymentID)
	assert.Equal(t, coffee.ID(), all[2].PaymentID)

	bobbys, total, err := j.ListPayments(ctx, PaymentFilter{Username: "Bobby"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Carol", bobbys[0].Payee)
	assert.Equal(t, "Coffee", bobbys[0].Note)

	cards, total, err := j.ListPayments(ctx, PaymentFilter{Username: "Dave_", Source: "card"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, lunch.ID(), cards[0].PaymentID)
	assert.True(t, cards[0].Amount.Equal(decimal.RequireFromString("12.5")))

	page, total, err := j.ListPayments(ctx, PaymentFilter{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 1)
	assert.Equal(t, coffee.ID(), page[0].PaymentID)
}

func TestRecordAndListFriendships(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()
	bobby := newUser(t, "Bobby", "0", "")
	carol := newUser(t, "Carol", "0", "")
	dave := newUser(t, "Dave_", "0", "")

	f1, err := carol.AddFriend(bobby)
	require.NoError(t, err)
	f2, err := dave.AddMutualFriend(carol)
	require.NoError(t, err)
	require.NoError(t, j.RecordFriendship(ctx, f1))
	require.NoError(t, j.RecordFriendship(ctx, f2))

	recs, err := j.ListFriendships(ctx, "Carol")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "Bobby", recs[0].Target)
	assert.False(t, recs[0].Mutual)
	assert.Equal(t, "Dave_", recs[1].Initiator)
	assert.True(t, recs[1].Mutual)

	recs, err = j.ListFriendships(ctx, "Bobby")
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestListingsIgnoreUsernameCase(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()
	bobby := newUser(t, "Bobby", "5", "4111111111111111")
	carol := newUser(t, "Carol", "10", "4242424242424242")

	p, err := bobby.Pay(carol, decimal.NewFromInt(5), "Coffee")
	require.NoError(t, err)
	require.NoError(t, j.RecordPayment(ctx, p))
	f, err := carol.AddFriend(bobby)
	require.NoError(t, err)
	require.NoError(t, j.RecordFriendship(ctx, f))

	for _, name := range []string{"bobby", "BOBBY", "Bobby", "carol"} {
		recs, total, err := j.ListPayments(ctx, PaymentFilter{Username: name})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total, name)
		require.Len(t, recs, 1, name)
		assert.Equal(t, p.ID(), recs[0].PaymentID, name)

		friends, err := j.ListFriendships(ctx, name)
		require.NoError(t, err)
		assert.Len(t, friends, 1, name)
	}

	recs, total, err := j.ListPayments(ctx, PaymentFilter{Username: "bob"})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, recs)
}

func TestNormalizePage(t *testing.T) {
	p, s := normalizePage(0, 0)
	assert.Equal(t, 1, p)
	assert.Equal(t, 20, s)
	p, s = normalizePage(3, 500)
	assert.Equal(t, 3, p)
	assert.Equal(t, 20, s)
	p, s = normalizePage(2, 50)
	assert.Equal(t, 2, p)
	assert.Equal(t, 50, s)
}
