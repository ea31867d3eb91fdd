package pgrepo

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fsdevblog/course-points/internal/domain"
	"github.com/fsdevblog/course-points/pkg/uow"
)

type CourseRepository struct {
	db uow.DBTX
}

func NewCourseRepository(db uow.DBTX) *CourseRepository {
	return &CourseRepository{db: db}
}

func (c *CourseRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	row := c.db.QueryRow(ctx, `
		SELECT id, created_at, updated_at, title, description, points_price, instructor_id
		FROM courses
		WHERE id = $1`, id)

	course, err := scanCourse(row)
	if err != nil {
		return nil, convertErr(err, "finding course by id %s", id)
	}
	return course, nil
}

func (c *CourseRepository) GetAll(ctx context.Context) ([]domain.Course, error) {
	rows, err := c.db.Query(ctx, `
		SELECT id, created_at, updated_at, title, description, points_price, instructor_id
		FROM courses
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, convertErr(err, "getting courses")
	}
	defer rows.Close()

	return collectCourses(rows, "getting courses")
}

// GetPurchasedByUserID возвращает курсы, купленные юзером, отсортированные по дате покупки по убыванию.
func (c *CourseRepository) GetPurchasedByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Course, error) {
	rows, err := c.db.Query(ctx, `
		SELECT c.id, c.created_at, c.updated_at, c.title, c.description, c.points_price, c.instructor_id
		FROM courses c
		JOIN course_purchases cp ON cp.course_id = c.id
		WHERE cp.user_id = $1
		ORDER BY cp.created_at DESC`, userID)
	if err != nil {
		return nil, convertErr(err, "getting purchased courses for user %s", userID)
	}
	defer rows.Close()

	return collectCourses(rows, "getting purchased courses for user "+userID.String())
}

func collectCourses(rows pgx.Rows, errMsg string) ([]domain.Course, error) {
	var courses []domain.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, convertErr(err, "%s", errMsg)
		}
		courses = append(courses, *course)
	}
	if err := rows.Err(); err != nil {
		return nil, convertErr(err, "%s", errMsg)
	}
	return courses, nil
}

func scanCourse(row pgx.Row) (*domain.Course, error) {
	var course domain.Course
	err := row.Scan(
		&course.ID,
		&course.CreatedAt,
		&course.UpdatedAt,
		&course.Title,
		&course.Description,
		&course.PointsPrice,
		&course.InstructorID,
	)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &course, nil
}
