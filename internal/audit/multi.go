package audit

import (
	"context"
	"errors"
)

// Multi fans a check out to several recorders and joins their errors.
type Multi []Recorder

// Record calls every recorder, even after a failure.
func (m Multi) Record(ctx context.Context, check Check) error {
	var errs []error
	for _, r := range m {
		if r == nil {
			continue
		}
		if err := r.Record(ctx, check); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
