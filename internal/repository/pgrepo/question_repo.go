package pgrepo

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fsdevblog/course-points/internal/domain"
	"github.com/fsdevblog/course-points/internal/repository/repoargs"
	"github.com/fsdevblog/course-points/pkg/uow"
)

type QuestionRepository struct {
	db uow.DBTX
}

func NewQuestionRepository(db uow.DBTX) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// ReplaceForCourse заменяет банк вопросов курса новым набором. Вызывается из транзакции
// процессора генерации: удаление и вставка либо коммитятся вместе, либо не происходят вовсе.
func (q *QuestionRepository) ReplaceForCourse(
	ctx context.Context,
	courseID uuid.UUID,
	questions []repoargs.QuestionCreate,
) error {
	if _, err := q.db.Exec(ctx, `DELETE FROM test_questions WHERE course_id = $1`, courseID); err != nil {
		return convertErr(err, "deleting questions for course %s", courseID)
	}

	for _, question := range questions {
		options, marshalErr := json.Marshal(question.Options)
		if marshalErr != nil {
			return convertErr(marshalErr, "encoding options for course %s", courseID)
		}
		_, insertErr := q.db.Exec(ctx, `
			INSERT INTO test_questions (course_id, question, options, correct_answer, marks)
			VALUES ($1, $2, $3, $4, $5)`,
			courseID, question.Question, options, question.CorrectAnswer, question.Marks)
		if insertErr != nil {
			return convertErr(insertErr, "inserting question for course %s", courseID)
		}
	}
	return nil
}

// GetByCourseID возвращает весь банк вопросов курса.
func (q *QuestionRepository) GetByCourseID(ctx context.Context, courseID uuid.UUID) ([]domain.TestQuestion, error) {
	rows, err := q.db.Query(ctx, `
		SELECT id, created_at, course_id, question, options, correct_answer, marks
		FROM test_questions
		WHERE course_id = $1
		ORDER BY created_at`, courseID)
	if err != nil {
		return nil, convertErr(err, "getting questions for course %s", courseID)
	}
	defer rows.Close()

	return collectQuestions(rows, courseID)
}

// GetByIDs возвращает вопросы курса с указанными id. Вопросы других курсов не попадают
// в выборку даже при совпадении id.
func (q *QuestionRepository) GetByIDs(
	ctx context.Context,
	courseID uuid.UUID,
	ids []uuid.UUID,
) ([]domain.TestQuestion, error) {
	rows, err := q.db.Query(ctx, `
		SELECT id, created_at, course_id, question, options, correct_answer, marks
		FROM test_questions
		WHERE course_id = $1 AND id = ANY($2)`, courseID, ids)
	if err != nil {
		return nil, convertErr(err, "getting questions by ids for course %s", courseID)
	}
	defer rows.Close()

	return collectQuestions(rows, courseID)
}

func collectQuestions(rows pgx.Rows, courseID uuid.UUID) ([]domain.TestQuestion, error) {
	var questions []domain.TestQuestion
	for rows.Next() {
		var question domain.TestQuestion
		var options []byte
		scanErr := rows.Scan(
			&question.ID,
			&question.CreatedAt,
			&question.CourseID,
			&question.Question,
			&options,
			&question.CorrectAnswer,
			&question.Marks,
		)
		if scanErr != nil {
			return nil, convertErr(scanErr, "scanning question for course %s", courseID)
		}
		if unmarshalErr := json.Unmarshal(options, &question.Options); unmarshalErr != nil {
			return nil, convertErr(unmarshalErr, "decoding options for course %s", courseID)
		}
		questions = append(questions, question)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "getting questions for course %s", courseID)
	}
	return questions, nil
}
