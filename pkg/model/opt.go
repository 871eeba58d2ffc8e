/*
 * Copyright 2022 Holoinsight Project Authors. Licensed under Apache-2.0.
 */

package model

// Opt is a measurement that is either present or absent.
// An absent value is not the same as a zero reading and is serialized as an empty cell.
type Opt[T any] struct {
	value   T
	present bool
}

// Some returns a present value.
func Some[T any](v T) Opt[T] {
	return Opt[T]{value: v, present: true}
}

// None returns an absent value.
func None[T any]() Opt[T] {
	return Opt[T]{}
}

func (o Opt[T]) Get() (T, bool) {
	return o.value, o.present
}

func (o Opt[T]) IsPresent() bool {
	return o.present
}

// OrElse returns the value if present, d otherwise.
func (o Opt[T]) OrElse(d T) T {
	if o.present {
		return o.value
	}
	return d
}

func formatOpt[T any](o Opt[T], format func(T) string) string {
	if v, ok := o.Get(); ok {
		return format(v)
	}
	return ""
}
