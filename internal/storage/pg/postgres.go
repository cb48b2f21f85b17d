package pg

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"bookpay/internal/domain"
	"bookpay/pkg/e"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Postgres struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewPostgres(ctx context.Context, logger *slog.Logger, postgresURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, postgresURL)
	if err != nil {
		return nil, fmt.Errorf("pg.NewPostgres: failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pg.NewPostgres: failed to ping: %w", err)
	}

	return &Postgres{
		pool:   pool,
		logger: logger,
	}, nil
}

func (p *Postgres) CreateOrder(ctx context.Context, order domain.Order) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return e.Wrap("pg.CreateOrder: begin", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO orders (txn_ref, customer_id, customer_email, total_amount, currency, status, payment_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		order.TxnRef, order.CustomerID, order.CustomerEmail, order.TotalAmount,
		order.Currency, domain.OrderStatusCreated, domain.PaymentStatusPending,
	)
	if err != nil {
		return e.Wrap("pg.CreateOrder: insert order", err)
	}

	for _, item := range order.Items {
		_, err = tx.Exec(ctx, `
			INSERT INTO order_items (txn_ref, book_id, title, author, isbn, price, quantity)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			order.TxnRef, item.BookID, item.Title, item.Author, item.ISBN, item.Price, item.Quantity,
		)
		if err != nil {
			return e.Wrap("pg.CreateOrder: insert item", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return e.Wrap("pg.CreateOrder: commit", err)
	}

	return nil
}

func (p *Postgres) GetByTxnRef(ctx context.Context, txnRef string) (domain.Order, error) {
	var order domain.Order
	err := p.pool.QueryRow(ctx, `
		SELECT txn_ref, customer_id, customer_email, total_amount, currency, status,
		       payment_status, COALESCE(payment_transaction_id, ''), COALESCE(bank_code, ''),
		       created_at, updated_at
		FROM orders WHERE txn_ref = $1`, txnRef,
	).Scan(
		&order.TxnRef, &order.CustomerID, &order.CustomerEmail, &order.TotalAmount,
		&order.Currency, &order.Status, &order.PaymentStatus,
		&order.PaymentTransactionID, &order.BankCode, &order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Order{}, e.ErrNotFound
		}
		return domain.Order{}, e.Wrap("pg.GetByTxnRef", err)
	}

	rows, err := p.pool.Query(ctx, `
		SELECT book_id, title, author, isbn, price, quantity
		FROM order_items WHERE txn_ref = $1`, txnRef)
	if err != nil {
		return domain.Order{}, e.Wrap("pg.GetByTxnRef: items", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.BookID, &item.Title, &item.Author, &item.ISBN, &item.Price, &item.Quantity); err != nil {
			return domain.Order{}, e.Wrap("pg.GetByTxnRef: scan item", err)
		}
		order.Items = append(order.Items, item)
	}
	if err := rows.Err(); err != nil {
		return domain.Order{}, e.Wrap("pg.GetByTxnRef: rows", err)
	}

	return order, nil
}

// ConfirmPayment applies the terminal payment transition in a single
// conditional UPDATE. The payment_status = 'PENDING' guard makes the
// transition atomic: of two concurrent notifications for the same ref,
// exactly one updates a row and the other gets ErrAlreadyProcessed.
func (p *Postgres) ConfirmPayment(ctx context.Context, txnRef string, paymentStatus domain.PaymentStatus, status domain.OrderStatus, transactionNo, bankCode string) error {
	tag, err := p.pool.Exec(ctx, `
		UPDATE orders
		SET payment_status = $2, status = $3, payment_transaction_id = $4, bank_code = $5, updated_at = now()
		WHERE txn_ref = $1 AND payment_status = $6`,
		txnRef, paymentStatus, status, transactionNo, bankCode, domain.PaymentStatusPending,
	)
	if err != nil {
		return e.Wrap("pg.ConfirmPayment", err)
	}

	if tag.RowsAffected() == 0 {
		return e.ErrAlreadyProcessed
	}

	p.logger.Info("payment transition applied",
		slog.String("txn_ref", txnRef),
		slog.String("payment_status", string(paymentStatus)),
	)
	return nil
}

func (p *Postgres) CloseConnection() {
	p.pool.Close()
}
