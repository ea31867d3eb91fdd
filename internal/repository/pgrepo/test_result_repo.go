package pgrepo

import (
	"context"

	"github.com/google/uuid"

	"github.com/fsdevblog/course-points/internal/domain"
	"github.com/fsdevblog/course-points/internal/repository/repoargs"
	"github.com/fsdevblog/course-points/pkg/uow"
)

type TestResultRepository struct {
	db uow.DBTX
}

func NewTestResultRepository(db uow.DBTX) *TestResultRepository {
	return &TestResultRepository{db: db}
}

func (t *TestResultRepository) Create(
	ctx context.Context,
	result repoargs.TestResultCreate,
) (*domain.TestResult, error) {
	row := t.db.QueryRow(ctx, `
		INSERT INTO test_results (user_id, course_id, score, max_score)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, user_id, course_id, score, max_score`,
		result.UserID, result.CourseID, result.Score, result.MaxScore)

	var created domain.TestResult
	err := row.Scan(
		&created.ID,
		&created.CreatedAt,
		&created.UserID,
		&created.CourseID,
		&created.Score,
		&created.MaxScore,
	)
	if err != nil {
		return nil, convertErr(err, "creating test result for course %s", result.CourseID)
	}
	return &created, nil
}

// GetByUserID возвращает результаты тестов юзера, отсортированные по дате по убыванию.
func (t *TestResultRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]domain.TestResult, error) {
	rows, err := t.db.Query(ctx, `
		SELECT id, created_at, user_id, course_id, score, max_score
		FROM test_results
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, convertErr(err, "getting test results by userID %s", userID)
	}
	defer rows.Close()

	var results []domain.TestResult
	for rows.Next() {
		var result domain.TestResult
		scanErr := rows.Scan(
			&result.ID,
			&result.CreatedAt,
			&result.UserID,
			&result.CourseID,
			&result.Score,
			&result.MaxScore,
		)
		if scanErr != nil {
			return nil, convertErr(scanErr, "getting test results by userID %s", userID)
		}
		results = append(results, result)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "getting test results by userID %s", userID)
	}
	return results, nil
}
