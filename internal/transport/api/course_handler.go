package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/fsdevblog/lms-backend/internal/domain"
	"github.com/fsdevblog/lms-backend/internal/service"
	"github.com/gin-gonic/gin"
)

type CourseHandler struct {
	courseService CourseServicer
}

func NewCourseHandler(courseService CourseServicer) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

// Index GET RouteGroup + CoursesRoute.
func (h *CourseHandler) Index(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	courses, err := h.courseService.List(ctx)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err, gin.ErrorTypePrivate)
		return
	}

	resp := make([]CourseResponse, len(courses))
	for i := range courses {
		resp[i] = newCourseResponse(&courses[i])
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "All courses",
		"courses": resp,
	})
}

// Show GET RouteGroup + CourseRoute.
func (h *CourseHandler) Show(c *gin.Context) {
	id, ok := courseID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	course, err := h.courseService.Get(ctx, id)
	if err != nil {
		abortWithCourseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Course details",
		"course":  newCourseResponse(course),
	})
}

type CourseCreateParams struct {
	Title       string `binding:"required,min=8,max=60"  json:"title"`
	Description string `binding:"required,min=8,max=200" json:"description"`
	Category    string `binding:"required,max=50"        json:"category"`
	CreatedBy   string `binding:"required,max=50"        json:"createdBy"`
}

// Create POST RouteGroup + CoursesRoute. Только для ADMIN.
func (h *CourseHandler) Create(c *gin.Context) {
	var params CourseCreateParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		abortWithBindError(c, bindErr)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	course, err := h.courseService.Create(ctx, service.CreateCourseArgs{
		Title:       params.Title,
		Description: params.Description,
		Category:    params.Category,
		CreatedBy:   params.CreatedBy,
	})
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err, gin.ErrorTypePrivate)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Course created successfully",
		"course":  newCourseResponse(course),
	})
}

// Delete DELETE RouteGroup + CourseRoute. Только для ADMIN.
func (h *CourseHandler) Delete(c *gin.Context) {
	id, ok := courseID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	if err := h.courseService.Delete(ctx, id); err != nil {
		abortWithCourseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Course deleted successfully",
	})
}

func courseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		abortWithError(c, http.StatusBadRequest, errors.New("Invalid course id"), gin.ErrorTypePublic) //nolint:staticcheck
		return 0, false
	}
	return id, true
}

func abortWithCourseError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrRecordNotFound) {
		abortWithError(c, http.StatusNotFound, errors.New("Course not found"), gin.ErrorTypePublic) //nolint:staticcheck
		return
	}
	abortWithError(c, http.StatusInternalServerError, err, gin.ErrorTypePrivate)
}
