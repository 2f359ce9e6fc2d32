// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package irqrt_test

import (
	"testing"

	"code.hybscloud.com/irqrt"
)

func TestResultOkErr(t *testing.T) {
	ok := irqrt.Ok[int, string](7)
	if !ok.IsOk() || ok.IsErr() {
		t.Fatalf("Ok: IsOk=%v IsErr=%v, want true/false", ok.IsOk(), ok.IsErr())
	}
	if got := ok.Unwrap(); got != 7 {
		t.Fatalf("Unwrap: got %d, want 7", got)
	}

	fail := irqrt.Err[int, string]("bad")
	if fail.IsOk() || !fail.IsErr() {
		t.Fatalf("Err: IsOk=%v IsErr=%v, want false/true", fail.IsOk(), fail.IsErr())
	}
	if got := fail.UnwrapErr(); got != "bad" {
		t.Fatalf("UnwrapErr: got %q, want bad", got)
	}
}

func TestResultUnwrapMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Unwrap on Err: expected panic, got none")
		}
	}()
	irqrt.Err[int, string]("bad").Unwrap()
}

func TestResultUnwrapOr(t *testing.T) {
	if got := irqrt.Ok[int, string](1).UnwrapOr(99); got != 1 {
		t.Fatalf("UnwrapOr on Ok: got %d, want 1", got)
	}
	if got := irqrt.Err[int, string]("x").UnwrapOr(99); got != 99 {
		t.Fatalf("UnwrapOr on Err: got %d, want 99", got)
	}
}

func TestResultUnwrapOrElse(t *testing.T) {
	got := irqrt.Err[int, string]("x").UnwrapOrElse(func(e string) int { return len(e) })
	if got != 1 {
		t.Fatalf("UnwrapOrElse: got %d, want 1", got)
	}
}

func TestResultMaybeValueAndErr(t *testing.T) {
	v, ok := irqrt.Ok[int, string](5).MaybeValue()
	if !ok || v != 5 {
		t.Fatalf("MaybeValue on Ok: got (%d, %v), want (5, true)", v, ok)
	}
	_, ok = irqrt.Ok[int, string](5).MaybeErr()
	if ok {
		t.Fatalf("MaybeErr on Ok: got found=true, want false")
	}
	e, ok := irqrt.Err[int, string]("bad").MaybeErr()
	if !ok || e != "bad" {
		t.Fatalf("MaybeErr on Err: got (%q, %v), want (bad, true)", e, ok)
	}
}

func TestResultIgnoreValue(t *testing.T) {
	r := irqrt.Ok[int, string](5).IgnoreValue()
	if !r.IsOk() {
		t.Fatalf("IgnoreValue on Ok: got Err, want Ok")
	}
	r = irqrt.Err[int, string]("bad").IgnoreValue()
	if !r.IsErr() || r.UnwrapErr() != "bad" {
		t.Fatalf("IgnoreValue on Err: error not preserved")
	}
}

func TestResultMap(t *testing.T) {
	r := irqrt.Map(irqrt.Ok[int, string](3), func(v int) string {
		return "n=" + string(rune('0'+v))
	})
	if got := r.Unwrap(); got != "n=3" {
		t.Fatalf("Map on Ok: got %q, want n=3", got)
	}

	r = irqrt.Map(irqrt.Err[int, string]("bad"), func(v int) string { return "unused" })
	if !r.IsErr() || r.UnwrapErr() != "bad" {
		t.Fatalf("Map on Err: error not propagated")
	}
}

func TestResultMapErr(t *testing.T) {
	r := irqrt.MapErr(irqrt.Err[int, string]("bad"), func(e string) int { return len(e) })
	if got := r.UnwrapErr(); got != 3 {
		t.Fatalf("MapErr on Err: got %d, want 3", got)
	}
}

func TestResultMapOrElse(t *testing.T) {
	got := irqrt.MapOrElse(irqrt.Ok[int, string](2),
		func(v int) int { return v * 10 },
		func(e string) int { return -1 },
	)
	if got != 20 {
		t.Fatalf("MapOrElse on Ok: got %d, want 20", got)
	}

	got = irqrt.MapOrElse(irqrt.Err[int, string]("x"),
		func(v int) int { return v * 10 },
		func(e string) int { return -1 },
	)
	if got != -1 {
		t.Fatalf("MapOrElse on Err: got %d, want -1", got)
	}
}

func TestResultAndThenOrElse(t *testing.T) {
	r := irqrt.AndThen(irqrt.Ok[int, string](3), func(v int) irqrt.Result[int, string] {
		return irqrt.Ok[int, string](v + 1)
	})
	if got := r.Unwrap(); got != 4 {
		t.Fatalf("AndThen on Ok: got %d, want 4", got)
	}

	r = irqrt.AndThen(irqrt.Err[int, string]("bad"), func(v int) irqrt.Result[int, string] {
		t.Fatal("AndThen: closure must not run on Err")
		return irqrt.Ok[int, string](0)
	})
	if !r.IsErr() || r.UnwrapErr() != "bad" {
		t.Fatalf("AndThen on Err: error not propagated")
	}

	recovered := irqrt.OrElse(irqrt.Err[int, string]("bad"), func(e string) irqrt.Result[int, string] {
		return irqrt.Ok[int, string](len(e))
	})
	if got := recovered.Unwrap(); got != 3 {
		t.Fatalf("OrElse on Err: got %d, want 3", got)
	}
}
