package db

import (
	"context" // Context for database calls

	"github.com/shopspring/decimal" // Decimal amounts
	"gorm.io/gorm"                  // GORM ORM library

	"minivenmo/internal/domain" // Domain activities
)

// Journal appends every user, payment and friendship to the ledger tables
// so they can be listed and filtered later.
type Journal struct {
	db *gorm.DB
}

// NewJournal wraps an opened ledger database
func NewJournal(db *gorm.DB) *Journal {
	return &Journal{db: db}
}

// RecordUser stores a newly created user
func (j *Journal) RecordUser(ctx context.Context, u *domain.User, initialBalance decimal.Decimal) error {
	_, hasCard := u.CardNumber() // Card presence only, never the number
	rec := UserRecord{
		Username:       u.Username(),   // Username
		InitialBalance: initialBalance, // Starting balance
		HasCard:        hasCard,        // Card attached
	}
	return j.db.WithContext(ctx).Create(&rec).Error
}

// RecordPayment stores a completed payment
func (j *Journal) RecordPayment(ctx context.Context, p *domain.Payment) error {
	rec := PaymentRecord{
		PaymentID: p.ID(),                    // Payment UUID
		Payer:     p.Payer().Username(),      // Payer
		Payee:     p.Payee().Username(),      // Payee
		Amount:    p.Amount(),                // Amount
		Note:      p.Note(),                  // Note
		Source:    string(p.Source()),        // Balance or card
		CreatedAt: p.CreatedAt().UnixMilli(), // When the payment happened
	}
	return j.db.WithContext(ctx).Create(&rec).Error
}

// RecordFriendship stores a friendship activity
func (j *Journal) RecordFriendship(ctx context.Context, f *domain.Friendship) error {
	rec := FriendshipRecord{
		Initiator: f.Initiator().Username(),  // Initiator
		Target:    f.Target().Username(),     // Target
		Mutual:    f.Mutual(),                // Mutual or one-sided
		CreatedAt: f.CreatedAt().UnixMilli(), // When the friendship happened
	}
	return j.db.WithContext(ctx).Create(&rec).Error
}

// PaymentFilter narrows a payment listing
type PaymentFilter struct {
	Username string // Payer or payee
	Source   string // balance or card
	Page     int    // 1-based page number
	PageSize int    // Rows per page
}

// ListPayments returns a page of payments, newest first, and the total count
func (j *Journal) ListPayments(ctx context.Context, f PaymentFilter) ([]PaymentRecord, int64, error) {
	page, pageSize := normalizePage(f.Page, f.PageSize)    // Clamp pagination
	query := j.db.WithContext(ctx).Model(&PaymentRecord{}) // Start building the query
	if f.Username != "" {
		query = query.Where("(LOWER(payer) = LOWER(?) OR LOWER(payee) = LOWER(?))", f.Username, f.Username) // Filter by user, any case
	}
	if f.Source != "" {
		query = query.Where("source = ?", f.Source) // Filter by funding source
	}
	var total int64 // Total matching payments
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var recs []PaymentRecord // Page of payments
	if err := query.Order("created_at desc, id desc").Offset((page - 1) * pageSize).Limit(pageSize).Find(&recs).Error; err != nil {
		return nil, 0, err
	}
	return recs, total, nil
}

// ListFriendships returns every friendship the user took part in, oldest first
func (j *Journal) ListFriendships(ctx context.Context, username string) ([]FriendshipRecord, error) {
	var recs []FriendshipRecord
	err := j.db.WithContext(ctx).
		Where("LOWER(initiator) = LOWER(?) OR LOWER(target) = LOWER(?)", username, username). // Any case
		Order("id asc").
		Find(&recs).Error
	return recs, err
}

// CountUsers returns how many users have been recorded
func (j *Journal) CountUsers(ctx context.Context) (int64, error) {
	var total int64
	err := j.db.WithContext(ctx).Model(&UserRecord{}).Count(&total).Error
	return total, err
}

// normalizePage applies the default page (1) and page size (20, max 100)
func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1 // Default page number
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20 // Default page size
	}
	return page, pageSize
}
