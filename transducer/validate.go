package transducer

import "github.com/kbukum/transduce/validation"

func nonNegative(field string, n int) error {
	return validation.NonNegative(field, n)
}

func positive(field string, n int) error {
	return validation.Positive(field, n)
}
