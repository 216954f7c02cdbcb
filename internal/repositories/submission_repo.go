package repositories

import (
	"context"
	"fmt"

	"farmfresh/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Database is the subset of pgxpool.Pool the repositories use. pgxmock's
// pool satisfies it, which is what lets the order transaction be tested
// without a live database.
type Database interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// SubmissionRepository persists the two submission outcomes. CreateOrder
// is all-or-nothing: the header and every item commit together or nothing
// is written.
type SubmissionRepository interface {
	CreateOrder(ctx context.Context, order *models.Order, items []models.OrderItem) (int64, error)
	CreateInquiry(ctx context.Context, inquiry *models.Inquiry) error
}

type submissionRepo struct {
	db Database
}

func NewSubmissionRepo(db Database) SubmissionRepository {
	return &submissionRepo{db: db}
}

// CreateOrder inserts the order header, captures its generated id, and
// inserts every item row under that id inside a single transaction. Each
// request commits at most once; any failure rolls the whole order back.
func (r *submissionRepo) CreateOrder(ctx context.Context, order *models.Order, items []models.OrderItem) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin order transaction: %w", err)
	}

	var orderID int64
	headerQuery := `
		INSERT INTO orders (full_name, phone_number, email, delivery_area, delivery_datetime, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id
	`
	if err := tx.QueryRow(ctx, headerQuery,
		order.FullName, order.PhoneNumber, order.Email, order.DeliveryArea, order.DeliveryDateTime, order.Notes,
	).Scan(&orderID); err != nil {
		_ = tx.Rollback(ctx)
		return 0, fmt.Errorf("insert order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (order_id, product_id, product_name, quantity, price_per_unit)
		VALUES ($1, $2, $3, $4, $5)
	`
	for _, item := range items {
		if _, err := tx.Exec(ctx, itemQuery,
			orderID, item.ProductID, item.ProductName, item.Quantity, item.PricePerUnit,
		); err != nil {
			_ = tx.Rollback(ctx)
			return 0, fmt.Errorf("insert order item (product %d): %w", item.ProductID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit order: %w", err)
	}
	return orderID, nil
}

// CreateInquiry writes the single inquiry row. An insert that affects zero
// rows is treated as a failure and rolled back.
func (r *submissionRepo) CreateInquiry(ctx context.Context, inquiry *models.Inquiry) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin inquiry transaction: %w", err)
	}

	query := `
		INSERT INTO inquiries (full_name, phone_number, email, delivery_area, inquiry_product_id, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`
	tag, err := tx.Exec(ctx, query,
		inquiry.FullName, inquiry.PhoneNumber, inquiry.Email, inquiry.DeliveryArea, inquiry.InquiryProductID, inquiry.Message,
	)
	if err != nil {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("insert inquiry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("insert inquiry: no rows affected")
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit inquiry: %w", err)
	}
	return nil
}
