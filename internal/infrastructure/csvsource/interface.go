package csvsource

import (
	"context"

	v1 "github.com/muhammadchandra19/tickstore/internal/domain/tick/v1"
)

// Result is the cleaned output of one load.
type Result struct {
	Ticks   []v1.Tick
	Files   int
	Rows    int64
	Dropped int64
}

// TickSource is the interface for the cleaned tick source.
//
//go:generate mockgen -source=interface.go -destination=mock/interface_mock.go -package=mock
type TickSource interface {
	Load(ctx context.Context) (Result, error)
}
