package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
	FullName  string
	Points    int64
}

type Course struct {
	ID           uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Title        string
	Description  string
	PointsPrice  int64
	InstructorID *uuid.UUID
}

type Purchase struct {
	ID          uuid.UUID
	CreatedAt   time.Time
	UserID      uuid.UUID
	CourseID    uuid.UUID
	PointsSpent int64
}

type PaymentOrder struct {
	ID               int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
	OrderCode        string
	UserID           uuid.UUID
	PointsAmount     int64
	AmountMinorUnits int64
	Currency         string
	Status           PaymentOrderStatus
}

type TestQuestion struct {
	ID            uuid.UUID
	CreatedAt     time.Time
	CourseID      uuid.UUID
	Question      string
	Options       []string
	CorrectAnswer int16
	Marks         int32
}

type TestResult struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UserID    uuid.UUID
	CourseID  uuid.UUID
	Score     int32
	MaxScore  int32
}

// QuestionJob запись очереди генерации вопросов. Создается в транзакции покупки курса,
// обрабатывается фоновым процессором.
type QuestionJob struct {
	ID        int64
	CreatedAt time.Time
	UpdatedAt time.Time
	CourseID  uuid.UUID
	Status    QuestionJobStatus
	Attempts  int32
}
