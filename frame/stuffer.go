// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package frame implements a byte-stuffed, CRC-checked STX/ETX framing
// layer for self-delimiting messages over a byte stream.
package frame

// Sink receives one raw output byte at a time. It is the Go replacement for
// the C++ SinkFunction template parameter: a closure does the same job a
// per-sink-type template instantiation did, with none of the boilerplate.
type Sink func(b byte)

// Stuffer escapes reserved bytes on the way out of a frame.
type Stuffer interface {
	// RawSink writes b to the underlying sink unescaped, bypassing any
	// reserved-byte check. Used for framing bytes (STX) that must reach
	// the wire exactly as given.
	RawSink(b byte)
	// Stuff writes b to the underlying sink, escaping it first if it
	// collides with a reserved byte for this dialect.
	Stuff(b byte)
}

// Unstuffer reverses a Stuffer's escaping on the way into a frame.
type Unstuffer interface {
	// Unstuff feeds one raw input byte through the unstuffing state
	// machine, calling the underlying sink with each unstuffed byte.
	Unstuff(b byte)
	// NeedMoreData reports whether the unstuffer is mid-escape-sequence,
	// i.e. it has consumed an escape byte and is waiting for the byte it
	// introduces. A stream that ends in this state is truncated.
	NeedMoreData() bool
	// Reset clears mid-escape-sequence state, for reuse across frames.
	Reset()
}

// DefaultStuffer escapes STX (0x02), ETX (0x03), and DLE (0x04) by
// prefixing them with DLE and bitwise-complementing the value: byte 0x02
// becomes [0x04, 0xFD].
type DefaultStuffer struct {
	sink Sink
}

const (
	defaultSTX = 0x02
	defaultETX = 0x03
	defaultDLE = 0x04
)

// NewDefaultStuffer constructs a DefaultStuffer writing to sink.
func NewDefaultStuffer(sink Sink) *DefaultStuffer {
	return &DefaultStuffer{sink: sink}
}

func (s *DefaultStuffer) RawSink(b byte) { s.sink(b) }

func (s *DefaultStuffer) Stuff(b byte) {
	if b == defaultSTX || b == defaultETX || b == defaultDLE {
		s.sink(defaultDLE)
		s.sink(^b)
		return
	}
	s.sink(b)
}

// DefaultUnstuffer reverses DefaultStuffer's escaping.
type DefaultUnstuffer struct {
	sink        Sink
	unstuffNext bool
}

// NewDefaultUnstuffer constructs a DefaultUnstuffer writing to sink.
func NewDefaultUnstuffer(sink Sink) *DefaultUnstuffer {
	return &DefaultUnstuffer{sink: sink}
}

func (u *DefaultUnstuffer) Reset() { u.unstuffNext = false }

func (u *DefaultUnstuffer) NeedMoreData() bool { return u.unstuffNext }

func (u *DefaultUnstuffer) Unstuff(b byte) {
	if b == defaultDLE {
		u.unstuffNext = true
		return
	}
	if u.unstuffNext {
		u.unstuffNext = false
		b = ^b
	}
	u.sink(b)
}

// LegacyStuffer escapes every byte at or below DLE (0x10) by prefixing it
// with DLE and adding DLE to the value: byte 0x00 becomes [0x10, 0x10].
type LegacyStuffer struct {
	sink Sink
}

const legacyDLE = 0x10

// NewLegacyStuffer constructs a LegacyStuffer writing to sink.
func NewLegacyStuffer(sink Sink) *LegacyStuffer {
	return &LegacyStuffer{sink: sink}
}

func (s *LegacyStuffer) RawSink(b byte) { s.sink(b) }

func (s *LegacyStuffer) Stuff(b byte) {
	if b <= legacyDLE {
		s.sink(legacyDLE)
		s.sink(b + legacyDLE)
		return
	}
	s.sink(b)
}

// LegacyUnstuffer reverses LegacyStuffer's escaping.
type LegacyUnstuffer struct {
	sink        Sink
	unstuffNext bool
}

// NewLegacyUnstuffer constructs a LegacyUnstuffer writing to sink.
func NewLegacyUnstuffer(sink Sink) *LegacyUnstuffer {
	return &LegacyUnstuffer{sink: sink}
}

func (u *LegacyUnstuffer) Reset() { u.unstuffNext = false }

func (u *LegacyUnstuffer) NeedMoreData() bool { return u.unstuffNext }

func (u *LegacyUnstuffer) Unstuff(b byte) {
	if !u.unstuffNext && b == legacyDLE {
		u.unstuffNext = true
		return
	}
	if u.unstuffNext {
		b -= legacyDLE
		u.unstuffNext = false
	}
	u.sink(b)
}

// Dialect bundles matching stuffer/unstuffer constructors so framer and
// deframer can be parameterized over byte-stuffing scheme without a
// type-level template parameter.
type Dialect struct {
	NewStuffer   func(sink Sink) Stuffer
	NewUnstuffer func(sink Sink) Unstuffer
}

// DefaultDialect escapes STX/ETX/DLE via bitwise complement. This is the
// dialect new callers should use.
var DefaultDialect = Dialect{
	NewStuffer:   func(sink Sink) Stuffer { return NewDefaultStuffer(sink) },
	NewUnstuffer: func(sink Sink) Unstuffer { return NewDefaultUnstuffer(sink) },
}

// LegacyDialect escapes bytes at or below 0x10 via offset. Provided for
// interoperating with peers built against the older wire format.
var LegacyDialect = Dialect{
	NewStuffer:   func(sink Sink) Stuffer { return NewLegacyStuffer(sink) },
	NewUnstuffer: func(sink Sink) Unstuffer { return NewLegacyUnstuffer(sink) },
}
