package audit

import (
	"context"
	"errors"
)

// Fanout appends every event to each configured store. A failing store does
// not stop delivery to the others; their errors are joined.
type Fanout struct {
	stores []Store
}

// NewFanout ignores nil stores so optional sinks can be passed unconditionally.
func NewFanout(stores ...Store) *Fanout {
	f := &Fanout{}
	for _, s := range stores {
		if s != nil {
			f.stores = append(f.stores, s)
		}
	}
	return f
}

func (f *Fanout) Append(ctx context.Context, event Event) error {
	var errs []error
	for _, s := range f.stores {
		if err := s.Append(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f *Fanout) Len() int {
	return len(f.stores)
}
