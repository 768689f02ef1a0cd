// Package mailer доставка писем пользователям. Почтового транспорта нет, письма пишутся в лог.
package mailer

import (
	"context"

	"github.com/sirupsen/logrus"
)

type LogMailer struct {
	l *logrus.Entry
}

func NewLogMailer(l *logrus.Logger) *LogMailer {
	return &LogMailer{
		l: l.WithFields(logrus.Fields{
			"component": "mailer",
			"module":    "log",
		}),
	}
}

func (m *LogMailer) SendPasswordReset(ctx context.Context, email string, resetURL string) error {
	if err := ctx.Err(); err != nil {
		return err //nolint:wrapcheck
	}
	m.l.WithFields(logrus.Fields{
		"email":    email,
		"resetURL": resetURL,
	}).Info("password reset requested")
	return nil
}
