package pgrepo

import (
	"context"

	"github.com/google/uuid"

	"github.com/fsdevblog/course-points/internal/domain"
	"github.com/fsdevblog/course-points/internal/repository/repoargs"
	"github.com/fsdevblog/course-points/pkg/uow"
)

type PurchaseRepository struct {
	db uow.DBTX
}

func NewPurchaseRepository(db uow.DBTX) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

// Create создает запись о покупке. Пара (user_id, course_id) уникальна: повторная покупка
// вернет ошибку domain.ErrDuplicateKey, во всех других случаях - domain.ErrUnknown.
func (p *PurchaseRepository) Create(
	ctx context.Context,
	purchase repoargs.PurchaseCreate,
) (*domain.Purchase, error) {
	row := p.db.QueryRow(ctx, `
		INSERT INTO course_purchases (user_id, course_id, points_spent)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, user_id, course_id, points_spent`,
		purchase.UserID, purchase.CourseID, purchase.PointsSpent)

	var created domain.Purchase
	err := row.Scan(&created.ID, &created.CreatedAt, &created.UserID, &created.CourseID, &created.PointsSpent)
	if err != nil {
		return nil, convertErr(err, "creating purchase of course %s by user %s", purchase.CourseID, purchase.UserID)
	}
	return &created, nil
}

// FindByUserAndCourse ищет покупку по паре (userID, courseID). Возвращает
// domain.ErrRecordNotFound если юзер курс не покупал.
func (p *PurchaseRepository) FindByUserAndCourse(
	ctx context.Context,
	userID uuid.UUID,
	courseID uuid.UUID,
) (*domain.Purchase, error) {
	row := p.db.QueryRow(ctx, `
		SELECT id, created_at, user_id, course_id, points_spent
		FROM course_purchases
		WHERE user_id = $1 AND course_id = $2`, userID, courseID)

	var purchase domain.Purchase
	err := row.Scan(&purchase.ID, &purchase.CreatedAt, &purchase.UserID, &purchase.CourseID, &purchase.PointsSpent)
	if err != nil {
		return nil, convertErr(err, "finding purchase of course %s by user %s", courseID, userID)
	}
	return &purchase, nil
}

// GetByUserID возвращает покупки юзера, отсортированные по дате создания по убыванию.
func (p *PurchaseRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Purchase, error) {
	rows, err := p.db.Query(ctx, `
		SELECT id, created_at, user_id, course_id, points_spent
		FROM course_purchases
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, convertErr(err, "getting purchases by userID %s", userID)
	}
	defer rows.Close()

	var purchases []domain.Purchase
	for rows.Next() {
		var purchase domain.Purchase
		scanErr := rows.Scan(
			&purchase.ID,
			&purchase.CreatedAt,
			&purchase.UserID,
			&purchase.CourseID,
			&purchase.PointsSpent,
		)
		if scanErr != nil {
			return nil, convertErr(scanErr, "getting purchases by userID %s", userID)
		}
		purchases = append(purchases, purchase)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "getting purchases by userID %s", userID)
	}
	return purchases, nil
}
