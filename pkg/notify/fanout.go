package notify

import (
	"context"
	"errors"
)

// Fanout entrega para todos os sinks, mesmo quando um deles falha.
type Fanout []Notifier

func (f Fanout) Notify(ctx context.Context, msg OrderMessage) error {
	var errs []error
	for _, n := range f {
		if n == nil {
			continue
		}
		if err := n.Notify(ctx, msg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
