package sink

import (
	"fmt"
	"io"
)

// PrintOption configures a printing sink.
type PrintOption func(*printOptions)

type printOptions struct {
	sep string
	end string
}

// WithSeparator sets the text written between items. The default is a
// newline.
func WithSeparator(sep string) PrintOption {
	return func(o *printOptions) { o.sep = sep }
}

// WithEnd sets the text written once on Close.
func WithEnd(end string) PrintOption {
	return func(o *printOptions) { o.end = end }
}

// Printing returns a sink that writes each item to w in its default format.
func Printing[T any](w io.Writer, opts ...PrintOption) Sink[T] {
	o := printOptions{sep: "\n"}
	for _, opt := range opts {
		opt(&o)
	}
	return &printing[T]{w: w, opts: o}
}

type printing[T any] struct {
	gate
	w       io.Writer
	opts    printOptions
	written bool
}

func (p *printing[T]) Send(item T) (Ack, error) {
	if !p.open() {
		return Stop, nil
	}
	if p.written {
		if _, err := io.WriteString(p.w, p.opts.sep); err != nil {
			return Stop, err
		}
	}
	p.written = true
	if _, err := fmt.Fprint(p.w, item); err != nil {
		return Stop, err
	}
	return Accept, nil
}

func (p *printing[T]) Close() error {
	if !p.shut() || p.opts.end == "" {
		return nil
	}
	_, err := io.WriteString(p.w, p.opts.end)
	return err
}
