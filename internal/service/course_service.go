package service

import (
	"context"
	"fmt"

	"github.com/fsdevblog/lms-backend/internal/domain"
	"github.com/fsdevblog/lms-backend/internal/repository/repoargs"
	"github.com/fsdevblog/lms-backend/pkg/uow"
)

type CourseService struct {
	courseRepo CourseRepository
}

func NewCourseService(u uow.UOW) (*CourseService, error) {
	courseRepo, err := uow.GetRepositoryAs[CourseRepository](u, uow.RepositoryName(repoargs.CourseRepoName))
	if err != nil {
		return nil, fmt.Errorf("new course service: %w", err)
	}
	return &CourseService{courseRepo: courseRepo}, nil
}

func (c *CourseService) List(ctx context.Context) ([]domain.Course, error) {
	courses, err := c.courseRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// Get возвращает domain.ErrRecordNotFound для несуществующего курса.
func (c *CourseService) Get(ctx context.Context, id int64) (*domain.Course, error) {
	course, err := c.courseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get course: %w", err)
	}
	return course, nil
}

type CreateCourseArgs struct {
	Title       string
	Description string
	Category    string
	CreatedBy   string
}

func (c *CourseService) Create(ctx context.Context, args CreateCourseArgs) (*domain.Course, error) {
	course, err := c.courseRepo.Create(ctx, repoargs.CreateCourse(args))
	if err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}
	return course, nil
}

// Delete возвращает domain.ErrRecordNotFound для несуществующего курса.
func (c *CourseService) Delete(ctx context.Context, id int64) error {
	if err := c.courseRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	return nil
}
