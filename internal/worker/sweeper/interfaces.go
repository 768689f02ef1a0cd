package sweeper

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import "context"

type Servicer interface {
	PurgeExpiredResets(ctx context.Context, limit uint) (int64, error)
}
