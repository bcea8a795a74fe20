// Package log bootstraps the process-wide slog logger.
package log

import (
	"io"
	"log/slog"
	"os"
)

type options struct {
	w    io.Writer
	opts *slog.HandlerOptions
	text bool
	args []any
}

type Option func(*options)

func WithWriter(w io.Writer) Option {
	return func(opts *options) {
		opts.w = w
	}
}

func WithHandlerOptions(ho *slog.HandlerOptions) Option {
	return func(opts *options) {
		opts.opts = ho
	}
}

func WithSource(add bool) Option {
	return func(opts *options) {
		opts.opts.AddSource = add
	}
}

func WithLevel(level slog.Level) Option {
	return func(opts *options) {
		opts.opts.Level = level
	}
}

// WithText switches from the default JSON handler to the text one.
func WithText() Option {
	return func(opts *options) {
		opts.text = true
	}
}

func WithAttrs(args ...any) Option {
	return func(opts *options) {
		clear(opts.args)
		opts.args = append(opts.args, args...)
	}
}

// New builds a logger without touching the process default.
func New(opt ...Option) *slog.Logger {
	opts := options{
		w:    os.Stdout,
		opts: &slog.HandlerOptions{},
	}

	for _, v := range opt {
		v(&opts)
	}

	var h slog.Handler
	if opts.text {
		h = slog.NewTextHandler(opts.w, opts.opts)
	} else {
		h = slog.NewJSONHandler(opts.w, opts.opts)
	}

	return slog.New(h).With(opts.args...)
}

// Init installs the configured logger as slog's default.
func Init(opt ...Option) {
	slog.SetDefault(New(opt...))
}
