package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsdevblog/lms-backend/internal/config"
	"github.com/fsdevblog/lms-backend/internal/repository/pgrepo"
	"github.com/fsdevblog/lms-backend/internal/repository/repoargs"
	"github.com/fsdevblog/lms-backend/internal/service"
	"github.com/fsdevblog/lms-backend/internal/service/mailer"
	"github.com/fsdevblog/lms-backend/internal/service/psswd"
	"github.com/fsdevblog/lms-backend/internal/transport/api"
	"github.com/fsdevblog/lms-backend/internal/transport/paygate"
	"github.com/fsdevblog/lms-backend/internal/uploads"
	"github.com/fsdevblog/lms-backend/internal/worker/sweeper"
	"github.com/fsdevblog/lms-backend/pkg/uow"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	// driver for migration applying postgres.
	_ "github.com/golang-migrate/migrate/v4/database/postgres" //nolint:revive
	// driver to get migrations from files (*.sql in our case).
	_ "github.com/golang-migrate/migrate/v4/source/file" //nolint:revive
)

const shutdownTimeout = 10 * time.Second

type App struct {
	Config *config.Config
	Logger *logrus.Logger
}

func New(conf *config.Config, l *logrus.Logger) *App {
	return &App{
		Config: conf,
		Logger: l,
	}
}

func (a *App) Run() error {
	notifyCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.Logger.WithFields(logrus.Fields{
		"runAddress":    a.Config.RunAddress,
		"migrationsDir": a.Config.MigrationsDir,
		"uploadsDir":    a.Config.UploadsDir,
	}).Info("Starting app")

	conn, connErr := pgrepo.Connect(notifyCtx, pgrepo.ConnectArgs{
		DSN:           a.Config.DatabaseDSN,
		MigrationsDir: a.Config.MigrationsDir,
		Logger:        a.Logger,
	})
	if connErr != nil {
		return fmt.Errorf("app run: %w", connErr)
	}
	defer conn.Close()

	unitOfWork, uowErr := initUOW(conn)
	if uowErr != nil {
		return fmt.Errorf("app run: %s", uowErr.Error())
	}

	avatars, storageErr := uploads.New(a.Config.UploadsDir)
	if storageErr != nil {
		return fmt.Errorf("app run: %s", storageErr.Error())
	}

	jwtSecret := []byte(a.Config.JWTSecret)
	services, sErr := service.Factory(unitOfWork, service.FactoryArgs{
		UserConfig: service.UserServiceConfig{
			JWTSecret:    jwtSecret,
			JWTExpire:    a.Config.JWTExpiry,
			ResetURLBase: a.Config.FrontendURL,
		},
		Hasher:  psswd.New(bcrypt.DefaultCost),
		Mailer:  mailer.NewLogMailer(a.Logger),
		Gateway: paygate.NewMockGateway(),
	})
	if sErr != nil {
		return fmt.Errorf("app run: %s", sErr.Error())
	}

	router, routerErr := api.New(api.RouterArgs{
		Logger:         a.Logger,
		UserService:    services.UserService,
		PaymentService: services.PaymentService,
		CourseService:  services.CourseService,
		Avatars:        avatars,
		UploadsDir:     avatars.Dir(),
		JWTSecretKey:   jwtSecret,
		Cookie:         api.CookieConfig{MaxAge: a.Config.JWTExpiry},
	})
	if routerErr != nil {
		return fmt.Errorf("app run: %s", routerErr.Error())
	}

	server := &http.Server{
		Addr:              a.Config.RunAddress,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second, //nolint:mnd
	}

	errChan := make(chan error, 1)
	go func() {
		if runErr := server.ListenAndServe(); runErr != nil && !errors.Is(runErr, http.ErrServerClosed) {
			errChan <- runErr
		}
	}()

	go sweeper.New(services.UserService, a.Logger).Run(notifyCtx)

	select {
	case <-notifyCtx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			a.Logger.WithError(err).Error("http server shutdown")
		}
		return notifyCtx.Err() //nolint:wrapcheck
	case err := <-errChan:
		return err
	}
}

func initUOW(conn uow.Pool) (*uow.UnitOfWork, error) {
	unitOfWork := uow.NewUnitOfWork(conn)

	repos := map[repoargs.RepositoryName]uow.RepositoryFactory{
		repoargs.UserRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewUserRepository(dbtx)
		},
		repoargs.PasswordResetRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewPasswordResetRepository(dbtx)
		},
		repoargs.CourseRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewCourseRepository(dbtx)
		},
	}
	for name, factory := range repos {
		if regErr := unitOfWork.Register(uow.RepositoryName(name), factory); regErr != nil {
			return nil, fmt.Errorf("init UOW: %s", regErr.Error())
		}
	}

	return unitOfWork, nil
}
