// lmsctl консольный клиент LMS. Состояние авторизации хранится в файле между запусками.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/fsdevblog/lms-backend/internal/config"
	"github.com/fsdevblog/lms-backend/internal/logger"
	"github.com/fsdevblog/lms-backend/internal/session"
	"github.com/fsdevblog/lms-backend/internal/transport/lmsclient"
)

func main() {
	if err := run(); err != nil {
		if !errors.Is(err, session.ErrInvalidForm) {
			_, _ = fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conf, err := config.LoadClientConfig()
	if err != nil {
		return err //nolint:wrapcheck
	}

	store, err := session.NewFileStore(conf.SessionFile)
	if err != nil {
		return err //nolint:wrapcheck
	}

	client := lmsclient.New(conf.APIURL, &http.Client{})
	sess, err := session.New(ctx, client, store,
		session.WriterNotifier{Out: os.Stdout, Err: os.Stderr},
		session.WithRequestTimeout(conf.Timeout),
		session.WithLogger(logger.New(os.Stderr)),
	)
	if err != nil {
		return err //nolint:wrapcheck
	}
	defer func() {
		_ = sess.Close()
	}()

	return execute(ctx, sess, os.Args[1:], os.Stdout)
}
