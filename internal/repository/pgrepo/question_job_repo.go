package pgrepo

import (
	"context"

	"github.com/google/uuid"

	"github.com/fsdevblog/course-points/internal/domain"
	"github.com/fsdevblog/course-points/pkg/uow"
)

type QuestionJobRepository struct {
	db uow.DBTX
}

func NewQuestionJobRepository(db uow.DBTX) *QuestionJobRepository {
	return &QuestionJobRepository{db: db}
}

const questionJobColumns = `id, created_at, updated_at, course_id, status, attempts`

// Enqueue ставит курс в очередь генерации вопросов. Если задача для курса уже есть,
// вставка молча пропускается: банк вопросов у курса один, перегенерация не нужна.
func (q *QuestionJobRepository) Enqueue(ctx context.Context, courseID uuid.UUID) error {
	_, err := q.db.Exec(ctx, `
		INSERT INTO question_jobs (course_id)
		VALUES ($1)
		ON CONFLICT (course_id) DO NOTHING`, courseID)
	if err != nil {
		return convertErr(err, "enqueueing question job for course %s", courseID)
	}
	return nil
}

// ClaimBatch забирает до limit задач в работу (NEW -> PROCESSING). FOR UPDATE SKIP LOCKED
// позволяет нескольким экземплярам процессора не наступать друг другу на задачи.
func (q *QuestionJobRepository) ClaimBatch(ctx context.Context, limit uint) ([]domain.QuestionJob, error) {
	safeLimit, safeLimitErr := safeConvertUintToInt32(limit)
	if safeLimitErr != nil {
		return nil, convertErr(safeLimitErr, "converting limit to int32")
	}

	rows, err := q.db.Query(ctx, `
		UPDATE question_jobs
		SET status = 'PROCESSING', updated_at = now()
		WHERE id IN (
			SELECT id FROM question_jobs
			WHERE status = 'NEW'
			ORDER BY created_at
			LIMIT $1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING `+questionJobColumns, safeLimit)
	if err != nil {
		return nil, convertErr(err, "claiming question jobs")
	}
	defer rows.Close()

	var jobs []domain.QuestionJob
	for rows.Next() {
		var job domain.QuestionJob
		scanErr := rows.Scan(&job.ID, &job.CreatedAt, &job.UpdatedAt, &job.CourseID, &job.Status, &job.Attempts)
		if scanErr != nil {
			return nil, convertErr(scanErr, "claiming question jobs")
		}
		jobs = append(jobs, job)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "claiming question jobs")
	}
	return jobs, nil
}

// MarkDone помечает задачу выполненной.
func (q *QuestionJobRepository) MarkDone(ctx context.Context, id int64) error {
	_, err := q.db.Exec(ctx, `
		UPDATE question_jobs
		SET status = 'DONE', updated_at = now()
		WHERE id = $1`, id)
	if err != nil {
		return convertErr(err, "marking question job %d done", id)
	}
	return nil
}

// MarkFailed инкрементирует счетчик попыток и возвращает задачу в очередь. После
// maxAttempts неудач задача помечается как INVALID и больше не обрабатывается.
func (q *QuestionJobRepository) MarkFailed(ctx context.Context, id int64, maxAttempts int32) error {
	_, err := q.db.Exec(ctx, `
		UPDATE question_jobs
		SET attempts = attempts + 1,
			status = CASE WHEN attempts + 1 >= $2 THEN 'INVALID' ELSE 'NEW' END,
			updated_at = now()
		WHERE id = $1`, id, maxAttempts)
	if err != nil {
		return convertErr(err, "marking question job %d failed", id)
	}
	return nil
}
