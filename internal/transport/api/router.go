package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/fsdevblog/lms-backend/internal/transport/api/middlewares"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	DefaultServiceTimeout = 3 * time.Second
)

const (
	RouteGroup          = "/api/v1"
	RegisterRoute       = "/user/register"
	LoginRoute          = "/user/login"
	LogoutRoute         = "/user/logout"
	MeRoute             = "/user/me"
	UpdateProfileRoute  = "/user/update"
	ForgotPasswordRoute = "/user/reset"
	ResetPasswordRoute  = "/user/reset/:resetToken"
	ChangePasswordRoute = "/user/change-password"
	CoursesRoute        = "/course"
	CourseRoute         = "/course/:id"
	CreateOrderRoute    = "/payments/create-order"

	// маршруты вне RouteGroup.
	FixedOrderRoute  = "/api/payment/create-order"
	QuickSignupRoute = "/api/auth/signup"
	HomeRoute        = "/"
	PingRoute        = "/ping"

	UploadsRoute = "/uploads"
)

// AdminPolicies политики RBAC: какие маршруты доступны роли ADMIN.
func AdminPolicies() [][]string {
	return [][]string{
		{"ADMIN", RouteGroup + CoursesRoute, http.MethodPost},
		{"ADMIN", RouteGroup + CourseRoute, http.MethodDelete},
	}
}

type RouterArgs struct {
	Logger         *logrus.Logger
	UserService    UserServicer
	PaymentService PaymentServicer
	CourseService  CourseServicer
	Avatars        AvatarStorer
	// UploadsDir каталог, который раздается по UploadsRoute. Пустая строка - не раздавать.
	UploadsDir   string
	JWTSecretKey []byte
	Cookie       CookieConfig
}

func New(args RouterArgs) (*gin.Engine, error) {
	if err := registerValidators(); err != nil {
		return nil, err
	}
	enforcer, enfErr := middlewares.NewEnforcer(AdminPolicies())
	if enfErr != nil {
		return nil, fmt.Errorf("router: %w", enfErr)
	}

	r := gin.New()
	// таймауты сервисов отсчитываются от контекста запроса.
	r.ContextWithFallback = true

	r.Use(gin.Recovery())
	if args.Logger != nil {
		r.Use(middlewares.Logger(args.Logger))
	}
	r.Use(middlewares.Errors())

	userHandler := NewUserHandler(args.UserService, args.Avatars, args.Cookie)
	paymentHandler := NewPaymentHandler(args.PaymentService)
	courseHandler := NewCourseHandler(args.CourseService)

	authRequired := middlewares.AuthRequired(args.JWTSecretKey)
	adminOnly := middlewares.Authorize(enforcer)

	r.GET(HomeRoute, Home)
	r.GET(PingRoute, Ping)
	if args.UploadsDir != "" {
		r.Static(UploadsRoute, args.UploadsDir)
	}
	r.POST(FixedOrderRoute, paymentHandler.CreateFixedOrder)
	r.POST(QuickSignupRoute, userHandler.QuickSignup)

	api := r.Group(RouteGroup)

	api.POST(RegisterRoute, userHandler.Register)
	api.POST(LoginRoute, userHandler.Login)
	api.POST(LogoutRoute, userHandler.Logout)
	api.POST(ForgotPasswordRoute, userHandler.ForgotPassword)
	api.POST(ResetPasswordRoute, userHandler.ResetPassword)

	api.GET(MeRoute, authRequired, userHandler.Me)
	api.PUT(UpdateProfileRoute, authRequired, userHandler.Update)
	api.POST(ChangePasswordRoute, authRequired, userHandler.ChangePassword)

	api.GET(CoursesRoute, courseHandler.Index)
	api.GET(CourseRoute, courseHandler.Show)
	api.POST(CoursesRoute, authRequired, adminOnly, courseHandler.Create)
	api.DELETE(CourseRoute, authRequired, adminOnly, courseHandler.Delete)

	api.POST(CreateOrderRoute, paymentHandler.CreateOrder)

	r.NoRoute(NotFound)
	return r, nil
}
