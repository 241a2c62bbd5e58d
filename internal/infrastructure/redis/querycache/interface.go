package querycache

import (
	"context"

	v1 "github.com/muhammadchandra19/tickstore/internal/domain/tick/v1"
)

// Cache stores window aggregates of one store build.
//
//go:generate mockgen -source=interface.go -destination=mock/interface_mock.go -package=mock
type Cache interface {
	Get(ctx context.Context, buildID string, window v1.Window) (v1.Aggregate, bool, error)
	Set(ctx context.Context, buildID string, window v1.Window, agg v1.Aggregate) error
}
