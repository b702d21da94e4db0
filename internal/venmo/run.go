package venmo

import (
	"context"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"minivenmo/internal/domain"
)

// Run plays the demo script against v: Bobby buys Carol a coffee, Carol buys
// Bobby lunch and befriends him, then both feeds are printed to w.
func (v *MiniVenmo) Run(ctx context.Context, w io.Writer) error {
	bobby, err := v.CreateUser(ctx, "Bobby", decimal.NewFromFloat(5.00), "4111111111111111")
	if err != nil {
		return err
	}
	carol, err := v.CreateUser(ctx, "Carol", decimal.NewFromFloat(10.00), "4242424242424242")
	if err != nil {
		return err
	}

	err = v.attempt(w,
		func() error {
			_, err := v.Pay(ctx, "Bobby", "Carol", decimal.NewFromFloat(5.00), "Coffee")
			return err
		},
		func() error {
			_, err := v.Pay(ctx, "Carol", "Bobby", decimal.NewFromFloat(15.00), "Lunch")
			return err
		},
		func() error {
			_, err := v.AddFriend(ctx, "Carol", "Bobby", false)
			return err
		},
	)
	if err != nil {
		return err
	}

	if err := v.RenderFeed(w, bobby.Feed()); err != nil {
		return err
	}
	if err := v.RenderFeed(w, carol.Feed()); err != nil {
		return err
	}

	_, err = v.AddFriend(ctx, "Bobby", "Carol", false)
	return err
}

// attempt runs steps in order and stops at the first error. A payment error
// is printed to w and logged instead of returned.
func (v *MiniVenmo) attempt(w io.Writer, steps ...func() error) error {
	for _, step := range steps {
		err := step()
		if err == nil {
			continue
		}
		if !domain.IsPaymentError(err) {
			return err
		}
		v.log.WithError(err).Error("Payment aborted")
		_, werr := fmt.Fprintln(w, err)
		return werr
	}
	return nil
}
