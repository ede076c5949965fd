package transducer

import "slices"

// WindowOption configures Windowing and WindowingInto.
type WindowOption[A any] func(*windowOptions[A])

type windowOptions[A any] struct {
	padding    A
	hasPadding bool
}

// WithPadding starts the window full of v and, on completion, pushes size-1
// more copies of v through it, so every emitted window has exactly size
// elements.
func WithPadding[A any](v A) WindowOption[A] {
	return func(o *windowOptions[A]) {
		o.padding = v
		o.hasPadding = true
	}
}

// Windowing emits a sliding window of the last size items after every
// item. Without padding the windows grow from one element up to size and,
// on completion, shrink from the front until one element remains, giving
// n+size-1 windows for n >= size items. A shorter input of n items only
// grows the window to n, giving 2n-1 windows. With padding every window
// has size elements and there are always n+size-1 of them.
func Windowing[R, A any](size int, opts ...WindowOption[A]) (Transducer[R, A, []A], error) {
	return WindowingInto[R](size, func(w []A) []A { return w }, opts...)
}

// WindowingInto is Windowing with each window converted by as. The slice
// handed to as is a fresh copy it may keep.
func WindowingInto[R, A, W any](size int, as func([]A) W, opts ...WindowOption[A]) (Transducer[R, A, W], error) {
	if err := positive("size", size); err != nil {
		return nil, err
	}
	var o windowOptions[A]
	for _, opt := range opts {
		opt(&o)
	}
	return func(next Reducer[R, W]) Reducer[R, A] {
		s := &windowing[R, A, W]{stage: newStage(next), size: size, as: as, opts: o}
		s.window = make([]A, 0, size)
		if o.hasPadding {
			for range size {
				s.window = append(s.window, o.padding)
			}
		}
		return s
	}, nil
}

type windowing[R, A, W any] struct {
	stage[R, W]
	size   int
	as     func([]A) W
	opts   windowOptions[A]
	window []A
}

func (s *windowing[R, A, W]) push(item A) W {
	if len(s.window) < s.size {
		s.window = append(s.window, item)
	} else {
		copy(s.window, s.window[1:])
		s.window[s.size-1] = item
	}
	return s.as(slices.Clone(s.window))
}

func (s *windowing[R, A, W]) Step(acc R, item A) (Result[R], error) {
	return s.step(acc, s.push(item))
}

func (s *windowing[R, A, W]) Complete(acc R) (R, error) {
	var tail []W
	if s.opts.hasPadding {
		for range s.size - 1 {
			tail = append(tail, s.push(s.opts.padding))
		}
	} else {
		for len(s.window) > 1 {
			s.window = s.window[1:]
			tail = append(tail, s.as(slices.Clone(s.window)))
		}
	}
	return s.flush(acc, tail...)
}
