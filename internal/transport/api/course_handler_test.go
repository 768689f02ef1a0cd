package api

import (
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/fsdevblog/lms-backend/internal/domain"
	"github.com/fsdevblog/lms-backend/internal/logger"
	"github.com/fsdevblog/lms-backend/internal/service"
	"github.com/fsdevblog/lms-backend/internal/service/tokens"
	"github.com/fsdevblog/lms-backend/internal/transport/api/mocks"
	"github.com/fsdevblog/lms-backend/internal/transport/api/testutils"
	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"
)

type CourseHandlerTestSuite struct {
	suite.Suite
	mockCourseService *mocks.MockCourseServicer
	router            *gin.Engine
	userToken         string
	adminToken        string
}

func (s *CourseHandlerTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())
	s.mockCourseService = mocks.NewMockCourseServicer(mockCtrl)
	jwtSecret := []byte("super secret key")

	router, err := New(RouterArgs{
		Logger:        logger.New(io.Discard),
		CourseService: s.mockCourseService,
		JWTSecretKey:  jwtSecret,
	})
	s.Require().NoError(err)
	s.router = router

	var jwtErr error
	s.userToken, jwtErr = tokens.GenerateUserJWT(1, string(domain.RoleUser), time.Hour, jwtSecret)
	s.Require().NoError(jwtErr)
	s.adminToken, jwtErr = tokens.GenerateUserJWT(2, string(domain.RoleAdmin), time.Hour, jwtSecret)
	s.Require().NoError(jwtErr)
}

func TestCourseHandlerSuite(t *testing.T) {
	suite.Run(t, new(CourseHandlerTestSuite))
}

func testCourse() *domain.Course {
	return &domain.Course{
		ID:          10,
		Title:       "Go from scratch",
		Description: "Everything about goroutines",
		Category:    "Programming",
		CreatedBy:   "Rob",
	}
}

func (s *CourseHandlerTestSuite) TestIndex() {
	s.mockCourseService.EXPECT().List(gomock.Any()).Return([]domain.Course{*testCourse()}, nil)

	res, err := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodGet,
		URL:    RouteGroup + CoursesRoute,
	})
	s.Require().NoError(err)

	s.Equal(http.StatusOK, res.StatusCode)
	envelope := readEnvelope(s.T(), res)
	s.Equal("All courses", envelope["message"])
	courses, ok := envelope["courses"].([]any)
	s.Require().True(ok)
	s.Len(courses, 1)
}

func (s *CourseHandlerTestSuite) TestShow() {
	s.mockCourseService.EXPECT().Get(gomock.Any(), int64(10)).Return(testCourse(), nil)
	s.mockCourseService.EXPECT().Get(gomock.Any(), int64(11)).Return(nil, domain.ErrRecordNotFound)

	var cases = []struct {
		name        string
		url         string
		wantStatus  int
		wantMessage string
	}{
		{name: "found", url: "/course/10", wantStatus: http.StatusOK, wantMessage: "Course details"},
		{name: "unknown id", url: "/course/11", wantStatus: http.StatusNotFound, wantMessage: "Course not found"},
		{name: "bad id", url: "/course/abc", wantStatus: http.StatusBadRequest, wantMessage: "Invalid course id"},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			res, err := testutils.MakeRequest(testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodGet,
				URL:    RouteGroup + t.url,
			})
			s.Require().NoError(err)

			s.Equal(t.wantStatus, res.StatusCode)
			s.Equal(t.wantMessage, readEnvelope(s.T(), res)["message"])
		})
	}
}

func (s *CourseHandlerTestSuite) TestCreate() {
	params := CourseCreateParams{
		Title:       "Go from scratch",
		Description: "Everything about goroutines",
		Category:    "Programming",
		CreatedBy:   "Rob",
	}
	s.mockCourseService.EXPECT().Create(gomock.Any(), service.CreateCourseArgs{
		Title:       params.Title,
		Description: params.Description,
		Category:    params.Category,
		CreatedBy:   params.CreatedBy,
	}).Return(testCourse(), nil)

	var cases = []struct {
		name        string
		token       string
		params      CourseCreateParams
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "admin creates",
			token:       s.adminToken,
			params:      params,
			wantStatus:  http.StatusCreated,
			wantMessage: "Course created successfully",
		}, {
			name:        "user forbidden",
			token:       s.userToken,
			params:      params,
			wantStatus:  http.StatusForbidden,
			wantMessage: "You do not have permission to access this route",
		}, {
			name:        "unauthenticated",
			params:      params,
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Unauthenticated, please login again",
		}, {
			name:  "short title",
			token: s.adminToken,
			params: CourseCreateParams{
				Title:       "Go",
				Description: params.Description,
				Category:    params.Category,
				CreatedBy:   params.CreatedBy,
			},
			wantStatus:  http.StatusUnprocessableEntity,
			wantMessage: "Invalid title",
		},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			var opts []func(*testutils.RequestOptions)
			if t.token != "" {
				opts = append(opts, testutils.WithBearer(t.token))
			}
			res, err := testutils.MakeRequest(testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodPost,
				URL:    RouteGroup + CoursesRoute,
				Body:   jsonBody(s.T(), t.params),
			}, opts...)
			s.Require().NoError(err)

			s.Equal(t.wantStatus, res.StatusCode)
			s.Equal(t.wantMessage, readEnvelope(s.T(), res)["message"])
		})
	}
}

func (s *CourseHandlerTestSuite) TestDelete() {
	s.mockCourseService.EXPECT().Delete(gomock.Any(), int64(10)).Return(nil)
	s.mockCourseService.EXPECT().Delete(gomock.Any(), int64(11)).Return(domain.ErrRecordNotFound)

	var cases = []struct {
		name       string
		token      string
		url        string
		wantStatus int
	}{
		{name: "admin deletes", token: s.adminToken, url: "/course/10", wantStatus: http.StatusOK},
		{name: "unknown course", token: s.adminToken, url: "/course/11", wantStatus: http.StatusNotFound},
		{name: "user forbidden", token: s.userToken, url: "/course/10", wantStatus: http.StatusForbidden},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			res, err := testutils.MakeRequest(testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodDelete,
				URL:    RouteGroup + t.url,
			}, testutils.WithBearer(t.token))
			s.Require().NoError(err)
			s.Equal(t.wantStatus, res.StatusCode)
		})
	}
}
