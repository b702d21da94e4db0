package domain

import "errors" // Error matching

// UsernameError is returned when a username is rejected.
type UsernameError struct{ reason string }

// Error returns the rejection reason
func (e *UsernameError) Error() string { return e.reason }

// CreditCardError is returned when a card cannot be attached to a user.
type CreditCardError struct{ reason string }

// Error returns the rejection reason
func (e *CreditCardError) Error() string { return e.reason }

// PaymentError is returned when a payment cannot be completed.
type PaymentError struct{ reason string }

// Error returns the rejection reason
func (e *PaymentError) Error() string { return e.reason }

// FriendshipError is returned when a friend cannot be added.
type FriendshipError struct{ reason string }

// Error returns the rejection reason
func (e *FriendshipError) Error() string { return e.reason }

// Sentinel errors, one per rejection reason. Match them with errors.Is.
var (
	ErrInvalidUsername = &UsernameError{"username not valid"}
	ErrUsernameTaken   = &UsernameError{"username already taken"}

	ErrCardAlreadyPresent = &CreditCardError{"only one credit card per user"}
	ErrInvalidCard        = &CreditCardError{"invalid credit card number"}

	ErrSelfPayment         = &PaymentError{"user cannot pay themselves"}
	ErrInvalidAmount       = &PaymentError{"amount must be a positive number"}
	ErrNoPayee             = &PaymentError{"payment needs a payee"}
	ErrInsufficientBalance = &PaymentError{"not enough balance to pay"}
	ErrNoCard              = &PaymentError{"must have a credit card to make a payment"}
	ErrCardDeclined        = &PaymentError{"credit card was declined"}

	ErrNoFriend       = &FriendshipError{"friendship needs a target"}
	ErrSelfFriendship = &FriendshipError{"user cannot befriend themselves"}
	ErrAlreadyFriends = &FriendshipError{"users are already friends"}
)

// IsPaymentError reports whether err belongs to the PaymentError family.
func IsPaymentError(err error) bool {
	var pe *PaymentError
	return errors.As(err, &pe)
}
