package service

import (
	"fmt"

	"github.com/fsdevblog/lms-backend/pkg/uow"
)

type AppServices struct {
	UserService    *UserService
	PaymentService *PaymentService
	CourseService  *CourseService
}

type FactoryArgs struct {
	UserConfig UserServiceConfig
	Hasher     PasswordHasher
	Mailer     Mailer
	Gateway    OrderGateway
}

func Factory(unitOfWork uow.UOW, args FactoryArgs) (*AppServices, error) {
	userService, userServiceErr := NewUserService(unitOfWork, args.Hasher, args.Mailer, args.UserConfig)
	if userServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", userServiceErr.Error())
	}

	courseService, courseServiceErr := NewCourseService(unitOfWork)
	if courseServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", courseServiceErr.Error())
	}

	return &AppServices{
		UserService:    userService,
		PaymentService: NewPaymentService(args.Gateway),
		CourseService:  courseService,
	}, nil
}
