package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateKey   = errors.New("duplicate key")
	ErrUnknown        = errors.New("unknown error")

	ErrInvalidInput       = errors.New("invalid input")
	ErrNotEnoughPoints    = errors.New("not enough points")
	ErrProfileUnavailable = errors.New("user profile unavailable")
	ErrCourseNotOwned     = errors.New("course not owned")

	ErrGateway          = errors.New("payment gateway unavailable")
	ErrInvalidSignature = errors.New("invalid payment signature")
	ErrOrderNotPending  = errors.New("payment order is not pending")
)

// AlreadyOwnedError возвращается при попытке повторной покупки курса. Содержит
// существующую запись о покупке.
type AlreadyOwnedError struct {
	Purchase *Purchase
}

func NewAlreadyOwnedError(purchase *Purchase) error {
	return &AlreadyOwnedError{Purchase: purchase}
}

func (e *AlreadyOwnedError) Error() string {
	return fmt.Sprintf(
		"course %s already purchased by user %s",
		e.Purchase.CourseID,
		e.Purchase.UserID,
	)
}

// UnknownPointsPackageError возвращается при запросе пополнения на количество баллов,
// отсутствующее в серверном каталоге пакетов.
type UnknownPointsPackageError struct {
	PointsAmount int64
	UserID       uuid.UUID
}

func (e *UnknownPointsPackageError) Error() string {
	return fmt.Sprintf("unknown points package %d requested by user %s", e.PointsAmount, e.UserID)
}

func (e *UnknownPointsPackageError) Unwrap() error {
	return ErrInvalidInput
}
