package sweeper

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/fsdevblog/lms-backend/internal/worker/sweeper/mocks"
	"github.com/golang/mock/gomock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
)

type SweeperTestSuite struct {
	suite.Suite
	sweeper     *Sweeper
	mockService *mocks.MockServicer
}

func (s *SweeperTestSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.mockService = mocks.NewMockServicer(ctrl)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	s.sweeper = New(s.mockService, logger).SetLimit(10)
}

func TestSweeperSuite(t *testing.T) {
	suite.Run(t, new(SweeperTestSuite))
}

// TestSweep_FullBatches полные пачки удаляются подряд, пока не придет неполная.
func (s *SweeperTestSuite) TestSweep_FullBatches() {
	gomock.InOrder(
		s.mockService.EXPECT().PurgeExpiredResets(gomock.Any(), uint(10)).Return(int64(10), nil),
		s.mockService.EXPECT().PurgeExpiredResets(gomock.Any(), uint(10)).Return(int64(10), nil),
		s.mockService.EXPECT().PurgeExpiredResets(gomock.Any(), uint(10)).Return(int64(3), nil),
	)

	s.NoError(s.sweeper.sweep(s.T().Context()))
}

func (s *SweeperTestSuite) TestSweep_Nothing() {
	s.mockService.EXPECT().PurgeExpiredResets(gomock.Any(), uint(10)).Return(int64(0), nil)

	s.NoError(s.sweeper.sweep(s.T().Context()))
}

func (s *SweeperTestSuite) TestSweep_Error() {
	dbErr := errors.New("db down")
	s.mockService.EXPECT().PurgeExpiredResets(gomock.Any(), uint(10)).Return(int64(0), dbErr)

	s.ErrorIs(s.sweeper.sweep(s.T().Context()), dbErr)
}

// TestRun_StopsOnCancel первый проход выполняется сразу, после отмены контекста Run завершается.
func (s *SweeperTestSuite) TestRun_StopsOnCancel() {
	ctx, cancel := context.WithCancel(s.T().Context())
	swept := make(chan struct{})

	s.mockService.EXPECT().PurgeExpiredResets(gomock.Any(), uint(10)).
		DoAndReturn(func(context.Context, uint) (int64, error) {
			close(swept)
			return 0, nil
		})

	done := make(chan struct{})
	go func() {
		s.sweeper.SetInterval(time.Hour).Run(ctx)
		close(done)
	}()

	<-swept
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		s.Fail("sweeper did not stop")
	}
}
