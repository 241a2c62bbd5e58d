package binstore

import (
	"fmt"

	"github.com/muhammadchandra19/tickstore/pkg/errors"
)

func errNoDataInRange(field string, minute int64) error {
	return errors.NewErrorDetailsWithObject(
		"no data available for the specified time range",
		string(errors.StoreNoDataInRange), field, minute)
}

func errCorrupt(field, format string, args ...any) *errors.ErrorDetails {
	return errors.NewErrorDetails(fmt.Sprintf(format, args...), string(errors.StoreCorrupt), field)
}

func errIO(action string, err error) error {
	return errors.NewTracer(action).Wrap(
		errors.NewErrorDetails(err.Error(), string(errors.StoreIOError), action))
}

// IsNoDataInRange reports whether err means the query window is not covered by the index.
func IsNoDataInRange(err error) bool {
	return errors.ErrorCodeEquals(err, string(errors.StoreNoDataInRange))
}

// IsCorrupt reports whether err means the index and binary file are inconsistent.
func IsCorrupt(err error) bool {
	return errors.ErrorCodeEquals(err, string(errors.StoreCorrupt))
}
