package repository

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/samber/lo"
)

var (
	ErrNotFound = port.ErrOrderNotFound
)

type orderRepository struct {
	conn Conn
	q    *db.Queries
}

func NewOrder(pool *pgxpool.Pool) port.OrderRepository {
	return &orderRepository{
		conn: pool,
		q:    db.New(pool),
	}
}

func NewOrderWithTx(tx pgx.Tx) port.OrderRepository {
	return &orderRepository{
		conn: tx,
		q:    db.New(tx),
	}
}

func (r *orderRepository) GetOrder(ctx context.Context, orderID int64) (domain.Order, error) {
	var o domain.Order

	order, err := withTx(ctx, r.conn, func(q *db.Queries) (domain.Order, error) {
		dbOrder, err := q.GetOrder(ctx, orderID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return o, fmt.Errorf("q.GetOrder: %w", ErrNotFound)
			}
			return o, fmt.Errorf("q.GetOrder: %w", err)
		}

		dbOrderItems, err := q.GetOrderItems(ctx, orderID)
		if err != nil {
			return o, fmt.Errorf("q.GetOrderItems: %w", err)
		}

		domainOrder, err := mapDBOrderToDomain(dbOrder, dbOrderItems)
		if err != nil {
			return o, fmt.Errorf("mapDBOrderToDomain: %w", err)
		}

		return domainOrder, nil
	})
	if err != nil {
		return o, fmt.Errorf("withTx: %w", err)
	}

	return order, nil
}

// CreateOrder persists a pending order with its lines, either everything is written or nothing.
func (r *orderRepository) CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	var o domain.Order

	if len(order.Lines) == 0 {
		return o, errors.New("no lines in order")
	}

	for _, line := range order.Lines {
		if line.Quantity <= 0 || line.Quantity > math.MaxInt32 {
			return o, fmt.Errorf("line[%d] quantity[%d] is out of range", line.ProductID, line.Quantity)
		}
	}

	if order.Status == "" {
		order.Status = domain.OrderStatusPending
	}

	created, err := withTx(ctx, r.conn, func(q *db.Queries) (domain.Order, error) {
		row, err := q.InsertOrder(ctx, db.InsertOrderParams{
			UserID:          order.UserID,
			CustomerName:    order.Customer.Name,
			CustomerEmail:   order.Customer.Email,
			CustomerPhone:   order.Customer.Phone,
			ShippingAddress: order.Customer.Address,
			TotalAmount:     order.Total.Amount,
			TotalCurrency:   order.Total.Currency.String(),
			Status:          string(order.Status),
		})
		if err != nil {
			return o, fmt.Errorf("q.InsertOrder: %w", err)
		}

		for _, line := range order.Lines {
			arg := db.InsertOrderItemParams{
				OrderID:       row.ID,
				ProductID:     line.ProductID,
				ProductName:   line.Name,
				Quantity:      int32(line.Quantity),
				PriceAmount:   line.UnitPrice.Amount,
				PriceCurrency: line.UnitPrice.Currency.String(),
			}
			if err := q.InsertOrderItem(ctx, arg); err != nil {
				return o, fmt.Errorf("q.InsertOrderItem[%d]: %w", line.ProductID, err)
			}
		}

		result := order
		result.ID = row.ID
		result.CreatedAt = row.CreatedAt
		result.UpdatedAt = row.UpdatedAt

		return result, nil
	})
	if err != nil {
		return o, fmt.Errorf("withTx: %w", err)
	}

	return created, nil
}

func mapGetOrderItemRowToDomain(row db.GetOrderItemsRow) (domain.OrderLine, error) {
	unit, err := domain.ParseCurrency(row.PriceCurrency)
	if err != nil {
		return domain.OrderLine{}, fmt.Errorf("domain.ParseCurrency: %w", err)
	}

	return domain.OrderLine{
		ProductID: row.ProductID,
		Name:      row.ProductName,
		Quantity:  int(row.Quantity),
		UnitPrice: domain.NewMoney(row.PriceAmount, unit),
	}, nil
}

func mapGetOrderItemRowsToDomain(rows []db.GetOrderItemsRow) ([]domain.OrderLine, error) {
	var lines []domain.OrderLine

	for _, row := range rows {
		line, err := mapGetOrderItemRowToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("mapGetOrderItemRowToDomain: %w", err)
		}

		lines = append(lines, line)
	}

	return lines, nil
}

func mapDBOrderToDomain(dbOrder db.Order, dbOrderItems []db.GetOrderItemsRow) (domain.Order, error) {
	var o domain.Order

	lines, err := mapGetOrderItemRowsToDomain(dbOrderItems)
	if err != nil {
		return o, fmt.Errorf("mapGetOrderItemRowsToDomain: %w", err)
	}

	unit, err := domain.ParseCurrency(dbOrder.TotalCurrency)
	if err != nil {
		return o, fmt.Errorf("domain.ParseCurrency: %w", err)
	}

	status, err := domain.ToOrderStatus(dbOrder.Status)
	if err != nil {
		return o, fmt.Errorf("domain.ToOrderStatus[%s]: %w", dbOrder.Status, err)
	}

	return domain.Order{
		ID:     dbOrder.ID,
		UserID: dbOrder.UserID,
		Customer: domain.Customer{
			Name:    dbOrder.CustomerName,
			Email:   dbOrder.CustomerEmail,
			Phone:   dbOrder.CustomerPhone,
			Address: dbOrder.ShippingAddress,
		},
		Total:     domain.NewMoney(dbOrder.TotalAmount, unit),
		Status:    status,
		Lines:     lines,
		CreatedAt: dbOrder.CreatedAt,
		UpdatedAt: dbOrder.UpdatedAt,
	}, nil
}

func statusesToStrings(statuses []domain.OrderStatus) []string {
	return lo.Map(statuses, func(s domain.OrderStatus, _ int) string {
		return string(s)
	})
}
