package repository

import (
	"time"

	"github.com/google/uuid"
)

// Option ajusta relógio e gerador de ids dos repositórios.
type Option func(*options)

type options struct {
	now   func() time.Time
	newID func() string
}

func defaultOptions(opts []Option) options {
	o := options{
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithClock substitui time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithIDGenerator substitui uuid.NewString.
func WithIDGenerator(newID func() string) Option {
	return func(o *options) { o.newID = newID }
}
