package repoargs

import "github.com/google/uuid"

type PurchaseCreate struct {
	UserID      uuid.UUID
	CourseID    uuid.UUID
	PointsSpent int64
}
