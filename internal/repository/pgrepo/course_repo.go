package pgrepo

import (
	"context"

	"github.com/fsdevblog/lms-backend/internal/domain"
	"github.com/fsdevblog/lms-backend/internal/repository/repoargs"
	"github.com/fsdevblog/lms-backend/pkg/uow"
	"github.com/jackc/pgx/v5"
)

const courseColumns = "id, created_at, updated_at, title, description, category, created_by, number_of_lectures"

type CourseRepository struct {
	conn uow.DBTX
}

func NewCourseRepository(conn uow.DBTX) *CourseRepository {
	return &CourseRepository{conn: conn}
}

func (c *CourseRepository) Create(ctx context.Context, args repoargs.CreateCourse) (*domain.Course, error) {
	row := c.conn.QueryRow(ctx,
		`INSERT INTO courses (title, description, category, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING `+courseColumns,
		args.Title, args.Description, args.Category, args.CreatedBy,
	)
	course, err := scanCourse(row)
	if err != nil {
		return nil, convertErr(err, "creating course %s", args.Title)
	}
	return course, nil
}

func (c *CourseRepository) FindByID(ctx context.Context, id int64) (*domain.Course, error) {
	course, err := scanCourse(c.conn.QueryRow(ctx, `SELECT `+courseColumns+` FROM courses WHERE id = $1`, id))
	if err != nil {
		return nil, convertErr(err, "finding course %d", id)
	}
	return course, nil
}

// List возвращает все курсы, новые первыми.
func (c *CourseRepository) List(ctx context.Context) ([]domain.Course, error) {
	rows, err := c.conn.Query(ctx, `SELECT `+courseColumns+` FROM courses ORDER BY id DESC`)
	if err != nil {
		return nil, convertErr(err, "listing courses")
	}
	courses, collectErr := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Course, error) {
		course, scanErr := scanCourse(row)
		if scanErr != nil {
			return domain.Course{}, scanErr
		}
		return *course, nil
	})
	if collectErr != nil {
		return nil, convertErr(collectErr, "listing courses")
	}
	return courses, nil
}

// Delete возвращает domain.ErrRecordNotFound если курса нет.
func (c *CourseRepository) Delete(ctx context.Context, id int64) error {
	tag, err := c.conn.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return convertErr(err, "deleting course %d", id)
	}
	if tag.RowsAffected() == 0 {
		return convertErr(pgx.ErrNoRows, "deleting course %d", id)
	}
	return nil
}

func scanCourse(row pgx.Row) (*domain.Course, error) {
	var course domain.Course
	if err := row.Scan(
		&course.ID,
		&course.CreatedAt,
		&course.UpdatedAt,
		&course.Title,
		&course.Description,
		&course.Category,
		&course.CreatedBy,
		&course.NumberOfLectures,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &course, nil
}
