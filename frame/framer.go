// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package frame

const (
	stx = 0x02
	etx = 0x03
)

type encoderState uint8

const (
	encoderStarted encoderState = iota
	encoderFinished
	encoderClosed
)

// Encoder wraps a byte sink and emits one STX/ETX-delimited, CRC-16/CCITT
// checked frame: Write each payload byte in order, then call Finish to emit
// the trailing CRC and ETX. An Encoder is single-use; construct a new one
// for the next frame.
//
// There is no move constructor substitute here: Go has no moved-from state,
// so Close stands in for it directly. Callers that want "finish no matter
// how this function returns" should `defer enc.Finish()` right after
// construction, the idiomatic Go analogue of a C++ destructor running
// finish() unconditionally.
type Encoder struct {
	stuffer Stuffer
	crc     CRC16
	state   encoderState
}

// NewEncoder constructs an Encoder writing a stuffed, framed byte stream to
// sink. STX is written immediately.
func NewEncoder(sink Sink, opts ...Option) *Encoder {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	e := &Encoder{
		stuffer: cfg.dialect.NewStuffer(sink),
		crc:     NewCRC16(),
	}
	e.stuffer.RawSink(stx)
	return e
}

// Close marks the Encoder as permanently done without emitting a trailing
// CRC or ETX. Further Write/Finish calls are no-ops.
func (e *Encoder) Close() { e.state = encoderClosed }

// Finish emits the CRC trailer and ETX, ending the frame. A no-op if the
// Encoder is already finished or closed.
func (e *Encoder) Finish() {
	if e.state != encoderStarted {
		return
	}
	e.state = encoderFinished
	sum := e.crc.Sum()
	e.stuffer.Stuff(byte(sum & 0x00FF))
	e.stuffer.Stuff(byte(sum >> 8))
	e.stuffer.RawSink(etx)
}

// IsFinished reports whether Finish has run.
func (e *Encoder) IsFinished() bool { return e.state == encoderFinished }

// IsClosed reports whether Close has run.
func (e *Encoder) IsClosed() bool { return e.state == encoderClosed }

// Write stuffs and emits one payload byte, folding it into the running CRC.
// A no-op once the Encoder is finished or closed.
func (e *Encoder) Write(b byte) {
	if e.state != encoderStarted {
		return
	}
	e.crc = e.crc.Update(b)
	e.stuffer.Stuff(b)
}

// WriteBytes writes every byte of data in order via Write.
func (e *Encoder) WriteBytes(data []byte) {
	if e.state != encoderStarted {
		return
	}
	for _, b := range data {
		e.Write(b)
	}
}
