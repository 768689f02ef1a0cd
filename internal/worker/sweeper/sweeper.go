// Package sweeper периодически удаляет просроченные токены сброса пароля.
package sweeper

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	defaultServiceTimeout         = 3 * time.Second
	defaultInterval               = time.Minute
	defaultLimitPerIteration uint = 500
)

// Sweeper удаляет просроченные токены пачками через сервисный слой.
type Sweeper struct {
	svs               Servicer
	l                 *logrus.Entry
	interval          time.Duration
	limitPerIteration uint
}

func New(svs Servicer, l *logrus.Logger) *Sweeper {
	return &Sweeper{
		svs: svs,
		l: l.WithFields(logrus.Fields{
			"component": "sweeper",
			"module":    "password_resets",
		}),
		interval:          defaultInterval,
		limitPerIteration: defaultLimitPerIteration,
	}
}

// SetInterval устанавливает паузу между проходами.
func (s *Sweeper) SetInterval(interval time.Duration) *Sweeper {
	s.interval = interval
	return s
}

// SetLimit устанавливает максимальное кол-во токенов, удаляемых за одну пачку.
func (s *Sweeper) SetLimit(limit uint) *Sweeper {
	s.limitPerIteration = limit
	return s
}

// Run выполняет проходы с интервалом до отмены контекста. Первый проход сразу после запуска.
func (s *Sweeper) Run(ctx context.Context) {
	s.l.WithFields(logrus.Fields{
		"interval":          s.interval.String(),
		"limitPerIteration": s.limitPerIteration,
	}).Info("Starting")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		if err := s.sweep(ctx); err != nil {
			s.l.WithError(err).Error("sweep error")
		}

		select {
		case <-ctx.Done():
			s.l.Info("Got stop signal, exiting...")
			return
		case <-ticker.C:
		}
	}
}

// sweep удаляет пачки просроченных токенов, пока пачка заполняется целиком.
func (s *Sweeper) sweep(ctx context.Context) error {
	var total int64
	for {
		if ctx.Err() != nil {
			return nil
		}

		svcCtx, cancel := context.WithTimeout(ctx, defaultServiceTimeout)
		deleted, err := s.svs.PurgeExpiredResets(svcCtx, s.limitPerIteration)
		cancel()
		if err != nil {
			return fmt.Errorf("sweep: %w", err)
		}

		total += deleted
		if s.limitPerIteration == 0 || deleted < int64(s.limitPerIteration) { //nolint:gosec
			break
		}
	}

	if total > 0 {
		s.l.WithField("deleted", total).Info("expired reset tokens removed")
	}
	return nil
}
