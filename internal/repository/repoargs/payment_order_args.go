package repoargs

import "github.com/google/uuid"

type PaymentOrderCreate struct {
	OrderCode        string
	UserID           uuid.UUID
	PointsAmount     int64
	AmountMinorUnits int64
	Currency         string
}
