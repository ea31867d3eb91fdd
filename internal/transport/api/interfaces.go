package api

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/fsdevblog/course-points/internal/domain"
	"github.com/fsdevblog/course-points/internal/service"
)

type PurchaseServicer interface {
	Purchase(ctx context.Context, userID, courseID uuid.UUID) (*service.PurchaseResult, error)
	PurchasedCourses(ctx context.Context, userID uuid.UUID) ([]domain.Course, error)
	Courses(ctx context.Context) ([]domain.Course, error)
	CourseByID(ctx context.Context, courseID uuid.UUID) (*domain.Course, error)
}

type WalletServicer interface {
	Balance(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	TopUp(ctx context.Context, userID uuid.UUID, pointsAmount int64) (*service.CheckoutHandle, error)
	ConfirmTopUp(ctx context.Context, args service.ConfirmTopUpArgs) (int64, error)
	Orders(ctx context.Context, userID uuid.UUID) ([]domain.PaymentOrder, error)
}

type QuizServicer interface {
	QuestionsForAttempt(ctx context.Context, userID, courseID uuid.UUID) ([]domain.TestQuestion, error)
	SubmitAttempt(
		ctx context.Context,
		userID uuid.UUID,
		courseID uuid.UUID,
		answers []service.AttemptAnswer,
	) (*domain.TestResult, error)
	ResultsByUser(ctx context.Context, userID uuid.UUID) ([]domain.TestResult, error)
}
