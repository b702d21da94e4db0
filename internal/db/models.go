package db

import "github.com/shopspring/decimal" // Decimal amounts

// UserRecord is the ledger row written when a user is created
type UserRecord struct {
	ID             uint            `gorm:"primaryKey" json:"id"`                               // Primary key
	Username       string          `gorm:"uniqueIndex;not null" json:"username"`               // Unique username
	InitialBalance decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"initial_balance"` // Balance credited at creation
	HasCard        bool            `gorm:"not null;default:false" json:"has_card"`             // Whether a card was attached
	CreatedAt      int64           `gorm:"autoCreateTime:milli" json:"created_at"`             // Timestamp of creation in milliseconds
}

// PaymentRecord mirrors a completed payment
type PaymentRecord struct {
	ID        uint            `gorm:"primaryKey" json:"id"`                      // Primary key
	PaymentID string          `gorm:"uniqueIndex;not null" json:"payment_id"`    // Payment UUID
	Payer     string          `gorm:"index;not null" json:"payer"`               // Username of the payer
	Payee     string          `gorm:"index;not null" json:"payee"`               // Username of the payee
	Amount    decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"` // Payment amount
	Note      string          `json:"note"`                                      // Optional note
	Source    string          `gorm:"index;not null" json:"source"`              // Funding source: balance, card
	CreatedAt int64           `gorm:"not null" json:"created_at"`                // Timestamp of the payment in milliseconds
}

// FriendshipRecord mirrors a friendship activity
type FriendshipRecord struct {
	ID        uint   `gorm:"primaryKey" json:"id"`            // Primary key
	Initiator string `gorm:"index;not null" json:"initiator"` // Username of the initiator
	Target    string `gorm:"index;not null" json:"target"`    // Username of the new friend
	Mutual    bool   `gorm:"not null" json:"mutual"`          // Recorded on both sides
	CreatedAt int64  `gorm:"not null" json:"created_at"`      // Timestamp in milliseconds
}
