// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package irqrt

import "code.hybscloud.com/irqrt/fault"

// Result carries either a success value of type T or a failure value of
// type E. A Result is always exactly one of Ok or Err; there is no
// third, empty state.
//
// Go forbids type parameters on methods, so and_then/or_else/map/
// map_or_else-style combinators that need to introduce a new type
// parameter are package-level functions (AndThen, OrElse, Map, MapErr,
// MapOrElse) operating on the method-receiver core below.
type Result[T, E any] struct {
	ok    bool
	value T
	err   E
}

// Ok constructs a success Result holding v.
func Ok[T, E any](v T) Result[T, E] {
	return Result[T, E]{ok: true, value: v}
}

// Err constructs a failure Result holding e.
func Err[T, E any](e E) Result[T, E] {
	return Result[T, E]{err: e}
}

// IsOk reports whether r holds a success value.
func (r Result[T, E]) IsOk() bool { return r.ok }

// IsErr reports whether r holds a failure value.
func (r Result[T, E]) IsErr() bool { return !r.ok }

// Unwrap returns the success value, or diverges via fault.Panic if r is Err.
func (r Result[T, E]) Unwrap() T {
	if !r.ok {
		fault.Panic(r.err)
	}
	return r.value
}

// UnwrapErr returns the failure value, or diverges via fault.Panic if r is Ok.
func (r Result[T, E]) UnwrapErr() E {
	if r.ok {
		fault.Panic(r.value)
	}
	return r.err
}

// UnwrapOr returns the success value, or def if r is Err.
func (r Result[T, E]) UnwrapOr(def T) T {
	if r.ok {
		return r.value
	}
	return def
}

// UnwrapOrElse returns the success value, or f(err) if r is Err.
func (r Result[T, E]) UnwrapOrElse(f func(E) T) T {
	if r.ok {
		return r.value
	}
	return f(r.err)
}

// MaybeValue projects r to its success value and a found flag; never panics.
func (r Result[T, E]) MaybeValue() (T, bool) {
	return r.value, r.ok
}

// MaybeErr projects r to its failure value and a found flag; never panics.
func (r Result[T, E]) MaybeErr() (E, bool) {
	return r.err, !r.ok
}

// IgnoreValue discards the success payload, preserving the error arm.
func (r Result[T, E]) IgnoreValue() Result[struct{}, E] {
	if r.ok {
		return Ok[struct{}, E](struct{}{})
	}
	return Err[struct{}, E](r.err)
}

// Map transforms the success value with f, leaving an Err untouched.
func Map[T, U, E any](r Result[T, E], f func(T) U) Result[U, E] {
	if r.ok {
		return Ok[U, E](f(r.value))
	}
	return Err[U, E](r.err)
}

// MapErr transforms the failure value with f, leaving an Ok untouched.
func MapErr[T, E, F any](r Result[T, E], f func(E) F) Result[T, F] {
	if r.ok {
		return Ok[T, F](r.value)
	}
	return Err[T, F](f(r.err))
}

// MapOrElse applies okFn to the success value or errFn to the failure value,
// collapsing both arms into a common type U.
func MapOrElse[T, E, U any](r Result[T, E], okFn func(T) U, errFn func(E) U) U {
	if r.ok {
		return okFn(r.value)
	}
	return errFn(r.err)
}

// AndThen chains f onto the success value; on Err it propagates the
// existing error unchanged. f's own Ok(v)/Err(e) bare-return constructors
// fill the role the tie-break table plays in languages with overload
// resolution on closure return type.
func AndThen[T, U, E any](r Result[T, E], f func(T) Result[U, E]) Result[U, E] {
	if r.ok {
		return f(r.value)
	}
	return Err[U, E](r.err)
}

// OrElse chains f onto the failure value; on Ok it propagates the existing
// success value unchanged, now against the new error type F.
func OrElse[T, E, F any](r Result[T, E], f func(E) Result[T, F]) Result[T, F] {
	if !r.ok {
		return f(r.err)
	}
	return Ok[T, F](r.value)
}
