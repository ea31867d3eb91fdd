package pgrepo

import (
	"context"

	"github.com/google/uuid"

	"github.com/fsdevblog/course-points/internal/domain"
	"github.com/fsdevblog/course-points/pkg/uow"
)

type UserRepository struct {
	db uow.DBTX
}

func NewUserRepository(db uow.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// FindByID ищет юзера по id. Возвращает ошибку domain.ErrRecordNotFound если запись не найдена,
// во всех других случаях - domain.ErrUnknown.
func (u *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	row := u.db.QueryRow(ctx, `
		SELECT id, created_at, updated_at, full_name, points
		FROM users
		WHERE id = $1`, id)

	var user domain.User
	if err := row.Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt, &user.FullName, &user.Points); err != nil {
		return nil, convertErr(err, "finding user by id %s", id)
	}
	return &user, nil
}

// DebitPoints списывает amount баллов с баланса юзера одним условным обновлением:
// баланс меняется только если его хватает на списание. Отдельной проверки чтением нет,
// поэтому конкурентные списания не могут увести баланс в минус.
// Если условие не выполнено (юзер не найден или баллов недостаточно), возвращает
// domain.ErrRecordNotFound; различить эти случаи должен вызывающий код.
func (u *UserRepository) DebitPoints(ctx context.Context, userID uuid.UUID, amount int64) (int64, error) {
	row := u.db.QueryRow(ctx, `
		UPDATE users
		SET points = points - $2, updated_at = now()
		WHERE id = $1 AND points >= $2
		RETURNING points`, userID, amount)

	var balance int64
	if err := row.Scan(&balance); err != nil {
		return 0, convertErr(err, "debiting %d points from user %s", amount, userID)
	}
	return balance, nil
}

// CreditPoints начисляет amount баллов на баланс юзера. Именно инкремент, а не установка
// абсолютного значения: последовательные пополнения складываются.
func (u *UserRepository) CreditPoints(ctx context.Context, userID uuid.UUID, amount int64) (int64, error) {
	row := u.db.QueryRow(ctx, `
		UPDATE users
		SET points = points + $2, updated_at = now()
		WHERE id = $1
		RETURNING points`, userID, amount)

	var balance int64
	if err := row.Scan(&balance); err != nil {
		return 0, convertErr(err, "crediting %d points to user %s", amount, userID)
	}
	return balance, nil
}
