package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fsdevblog/course-points/internal/domain"
	"github.com/fsdevblog/course-points/internal/repository/repoargs"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	DebitPoints(ctx context.Context, userID uuid.UUID, amount int64) (int64, error)
	CreditPoints(ctx context.Context, userID uuid.UUID, amount int64) (int64, error)
}

type CourseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Course, error)
	GetAll(ctx context.Context) ([]domain.Course, error)
	GetPurchasedByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Course, error)
}

type PurchaseRepository interface {
	Create(ctx context.Context, purchase repoargs.PurchaseCreate) (*domain.Purchase, error)
	FindByUserAndCourse(ctx context.Context, userID, courseID uuid.UUID) (*domain.Purchase, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Purchase, error)
}

type PaymentOrderRepository interface {
	Create(ctx context.Context, order repoargs.PaymentOrderCreate) (*domain.PaymentOrder, error)
	FindByOrderCode(ctx context.Context, orderCode string) (*domain.PaymentOrder, error)
	UpdateStatusFromPending(
		ctx context.Context,
		orderCode string,
		status domain.PaymentOrderStatus,
	) (*domain.PaymentOrder, error)
	FailStale(ctx context.Context, olderThan time.Duration) (int64, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]domain.PaymentOrder, error)
}

type QuestionRepository interface {
	ReplaceForCourse(ctx context.Context, courseID uuid.UUID, questions []repoargs.QuestionCreate) error
	GetByCourseID(ctx context.Context, courseID uuid.UUID) ([]domain.TestQuestion, error)
	GetByIDs(ctx context.Context, courseID uuid.UUID, ids []uuid.UUID) ([]domain.TestQuestion, error)
}

type QuestionJobRepository interface {
	Enqueue(ctx context.Context, courseID uuid.UUID) error
	ClaimBatch(ctx context.Context, limit uint) ([]domain.QuestionJob, error)
	MarkDone(ctx context.Context, id int64) error
	MarkFailed(ctx context.Context, id int64, maxAttempts int32) error
}

type TestResultRepository interface {
	Create(ctx context.Context, result repoargs.TestResultCreate) (*domain.TestResult, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]domain.TestResult, error)
}

type GatewayOrderArgs struct {
	AmountMinorUnits int64
	Currency         string
	Receipt          string
}

type GatewayOrder struct {
	OrderCode        string
	AmountMinorUnits int64
	Currency         string
}

// PaymentGateway контракт адаптера платежного шлюза. Сумма ордера считается на сервере,
// клиентская сумма шлюзу не передается никогда.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, args GatewayOrderArgs) (*GatewayOrder, error)
	VerifySignature(orderCode, paymentID, signature string) bool
	KeyID() string
}
