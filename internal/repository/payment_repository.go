package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

var (
	ErrPaymentNotFound = port.ErrPaymentNotFound
)

type paymentRepository struct {
	conn Conn
	q    *db.Queries
}

func NewPayment(pool *pgxpool.Pool) port.PaymentRepository {
	return &paymentRepository{
		conn: pool,
		q:    db.New(pool),
	}
}

func NewPaymentWithTx(tx pgx.Tx) port.PaymentRepository {
	return &paymentRepository{
		conn: tx,
		q:    db.New(tx),
	}
}

func (r *paymentRepository) GetPayment(ctx context.Context, orderID int64) (domain.Payment, error) {
	var p domain.Payment

	row, err := r.q.GetPayment(ctx, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return p, fmt.Errorf("q.GetPayment: %w", ErrPaymentNotFound)
		}
		return p, fmt.Errorf("q.GetPayment: %w", err)
	}

	p, err = mapDBPaymentToDomain(row)
	if err != nil {
		return p, fmt.Errorf("mapDBPaymentToDomain: %w", err)
	}

	return p, nil
}

// MarkPaid transitions the order to paid and upserts its payment row.
// A repeated call for a paid order overwrites the payment with the latest values.
// An unknown order yields ErrNotFound and writes nothing.
func (r *paymentRepository) MarkPaid(ctx context.Context, payment domain.Payment) (domain.Payment, error) {
	var p domain.Payment

	if payment.OrderID <= 0 {
		return p, errors.New("orderID is empty")
	}

	if payment.Status == "" {
		payment.Status = domain.PaymentStatusCompleted
	}

	saved, err := withTx(ctx, r.conn, func(q *db.Queries) (domain.Payment, error) {
		cmdTag, err := q.UpdateOrderStatus(ctx, db.UpdateOrderStatusParams{
			Status:       string(domain.OrderStatusPaid),
			ID:           payment.OrderID,
			FromStatuses: statusesToStrings(domain.TransitionSources(domain.OrderStatusPaid)),
		})
		if err != nil {
			return p, fmt.Errorf("q.UpdateOrderStatus: %w", err)
		}

		if cmdTag.RowsAffected() == 0 {
			return p, fmt.Errorf("q.UpdateOrderStatus: %w", ErrNotFound)
		}

		row, err := q.UpsertPayment(ctx, db.UpsertPaymentParams{
			OrderID:           payment.OrderID,
			ProviderPaymentID: payment.ProviderPaymentID,
			Amount:            payment.Amount.Amount,
			Currency:          payment.Amount.Currency.String(),
			Status:            string(payment.Status),
		})
		if err != nil {
			return p, fmt.Errorf("q.UpsertPayment: %w", err)
		}

		result := payment
		result.ID = row.ID
		result.CreatedAt = row.CreatedAt
		result.UpdatedAt = row.UpdatedAt

		return result, nil
	})
	if err != nil {
		return p, fmt.Errorf("withTx: %w", err)
	}

	return saved, nil
}

func mapDBPaymentToDomain(row db.Payment) (domain.Payment, error) {
	unit, err := domain.ParseCurrency(row.Currency)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("domain.ParseCurrency: %w", err)
	}

	return domain.Payment{
		ID:                row.ID,
		OrderID:           row.OrderID,
		ProviderPaymentID: row.ProviderPaymentID,
		Amount:            domain.NewMoney(row.Amount, unit),
		Status:            domain.PaymentStatus(row.Status),
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}, nil
}
