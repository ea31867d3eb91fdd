package pgrepo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fsdevblog/course-points/internal/domain"
	"github.com/fsdevblog/course-points/internal/repository/repoargs"
	"github.com/fsdevblog/course-points/pkg/uow"
)

type PaymentOrderRepository struct {
	db uow.DBTX
}

func NewPaymentOrderRepository(db uow.DBTX) *PaymentOrderRepository {
	return &PaymentOrderRepository{db: db}
}

const paymentOrderColumns = `id, created_at, updated_at, order_code, user_id,
	points_amount, amount_minor_units, currency, status`

// Create создает платежный ордер в статусе pending. Код ордера уникален: дубликат
// вернет ошибку domain.ErrDuplicateKey.
func (p *PaymentOrderRepository) Create(
	ctx context.Context,
	order repoargs.PaymentOrderCreate,
) (*domain.PaymentOrder, error) {
	row := p.db.QueryRow(ctx, `
		INSERT INTO payment_orders (order_code, user_id, points_amount, amount_minor_units, currency)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+paymentOrderColumns,
		order.OrderCode, order.UserID, order.PointsAmount, order.AmountMinorUnits, order.Currency)

	created, err := scanPaymentOrder(row)
	if err != nil {
		return nil, convertErr(err, "creating payment order `%s`", order.OrderCode)
	}
	return created, nil
}

func (p *PaymentOrderRepository) FindByOrderCode(ctx context.Context, orderCode string) (*domain.PaymentOrder, error) {
	row := p.db.QueryRow(ctx, `
		SELECT `+paymentOrderColumns+`
		FROM payment_orders
		WHERE order_code = $1`, orderCode)

	order, err := scanPaymentOrder(row)
	if err != nil {
		return nil, convertErr(err, "finding payment order by code `%s`", orderCode)
	}
	return order, nil
}

// UpdateStatusFromPending переводит ордер из pending в status. Условие `status = 'pending'`
// в запросе гарантирует монотонность переходов: verified и failed - конечные состояния.
// Если ордер не найден или уже не pending, вернется domain.ErrRecordNotFound.
func (p *PaymentOrderRepository) UpdateStatusFromPending(
	ctx context.Context,
	orderCode string,
	status domain.PaymentOrderStatus,
) (*domain.PaymentOrder, error) {
	row := p.db.QueryRow(ctx, `
		UPDATE payment_orders
		SET status = $2, updated_at = now()
		WHERE order_code = $1 AND status = 'pending'
		RETURNING `+paymentOrderColumns, orderCode, status)

	order, err := scanPaymentOrder(row)
	if err != nil {
		return nil, convertErr(err, "updating payment order `%s` to status %s", orderCode, status)
	}
	return order, nil
}

// FailStale помечает зависшие pending ордера (брошенный чекаут) как failed.
// Возвращает количество затронутых записей.
func (p *PaymentOrderRepository) FailStale(ctx context.Context, olderThan time.Duration) (int64, error) {
	tag, err := p.db.Exec(ctx, `
		UPDATE payment_orders
		SET status = 'failed', updated_at = now()
		WHERE status = 'pending' AND created_at < now() - $1 * interval '1 second'`, olderThan.Seconds())
	if err != nil {
		return 0, convertErr(err, "failing stale payment orders")
	}
	return tag.RowsAffected(), nil
}

// GetByUserID возвращает ордера юзера, отсортированные по дате создания по убыванию.
func (p *PaymentOrderRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]domain.PaymentOrder, error) {
	rows, err := p.db.Query(ctx, `
		SELECT `+paymentOrderColumns+`
		FROM payment_orders
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, convertErr(err, "getting payment orders by userID %s", userID)
	}
	defer rows.Close()

	var orders []domain.PaymentOrder
	for rows.Next() {
		order, scanErr := scanPaymentOrder(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "getting payment orders by userID %s", userID)
		}
		orders = append(orders, *order)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "getting payment orders by userID %s", userID)
	}
	return orders, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPaymentOrder(row rowScanner) (*domain.PaymentOrder, error) {
	var order domain.PaymentOrder
	err := row.Scan(
		&order.ID,
		&order.CreatedAt,
		&order.UpdatedAt,
		&order.OrderCode,
		&order.UserID,
		&order.PointsAmount,
		&order.AmountMinorUnits,
		&order.Currency,
		&order.Status,
	)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &order, nil
}
