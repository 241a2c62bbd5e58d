package binstore

import (
	"context"

	v1 "github.com/muhammadchandra19/tickstore/internal/domain/tick/v1"
)

// Reader is the read side of an opened store.
//
//go:generate mockgen -source=interface.go -destination=mock/interface_mock.go -package=mock
type Reader interface {
	Index() *Index
	Query(ctx context.Context, window v1.Window, workers int) (v1.Aggregate, Range, error)
}

var _ Reader = (*Store)(nil)
