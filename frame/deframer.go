// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package frame

import "errors"

var (
	// ErrBadCRC means a frame's trailing CRC did not match the payload.
	ErrBadCRC = errors.New("frame: bad crc")
	// ErrBadFraming means ETX arrived before two unstuffed bytes were seen
	// (too short to carry the CRC trailer), or STX arrived before the
	// previous frame closed.
	ErrBadFraming = errors.New("frame: bad framing")
	// ErrBadByteStuffing means ETX arrived mid-escape-sequence.
	ErrBadByteStuffing = errors.New("frame: bad byte stuffing")
)

// FramedByte is one unit of Decoder output: either a payload byte, a
// terminal success, or a terminal error for the frame currently being
// decoded. HasByte and Done distinguish the three cases in place of
// optional<T>, which Go lacks; a payload byte never sets Done, and a
// terminal result (success or error) never sets HasByte.
type FramedByte struct {
	Err            error
	Byte           byte
	HasByte        bool
	ConsumedLength int
	Done           bool
}

// Decoder reverses Encoder: feed it a raw, stuffed byte stream and it
// reports payload bytes as they become available, trailing two bytes
// behind the input so it can hold back the CRC trailer until ETX confirms
// where the frame ends.
type Decoder struct {
	cfg       config
	unstuffer Unstuffer
	history   [2]byte
	histLen   int
	crc       CRC16
	stxFound  bool
	out       *[]FramedByte
}

// NewDecoder constructs a Decoder. It starts outside any frame, waiting
// for STX.
func NewDecoder(opts ...Option) *Decoder {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	d := &Decoder{cfg: cfg}
	d.resetFrame()
	return d
}

func (d *Decoder) resetFrame() {
	d.crc = NewCRC16()
	d.histLen = 0
	d.unstuffer = d.cfg.dialect.NewUnstuffer(d.unstuffedSink)
}

// unstuffedSink receives each unstuffed byte, in order, from d.unstuffer.
// It holds back the last two bytes seen as candidate CRC trailer bytes,
// releasing the oldest held byte as a payload byte once a third arrives.
func (d *Decoder) unstuffedSink(b byte) {
	if d.histLen == 2 {
		front := d.history[0]
		d.history[0] = d.history[1]
		d.history[1] = b
		*d.out = append(*d.out, FramedByte{Byte: front, HasByte: true})
		d.crc = d.crc.Update(front)
		return
	}
	d.history[d.histLen] = b
	d.histLen++
}

// Write feeds a single raw byte through the deframer.
func (d *Decoder) Write(b byte) []FramedByte {
	return d.WriteBytes([]byte{b})
}

// WriteBytes feeds data through the deframer in order, returning every
// payload byte, terminal success, or terminal error produced while
// consuming it. ConsumedLength on a success result counts bytes consumed
// since the start of this call or the previous success within it,
// whichever is more recent — it does not span across separate WriteBytes
// calls.
func (d *Decoder) WriteBytes(data []byte) []FramedByte {
	var out []FramedByte
	d.out = &out
	length := 0
	for _, b := range data {
		length++
		if !d.stxFound {
			if b == stx {
				d.stxFound = true
				d.resetFrame()
			}
			continue
		}
		if b == etx {
			d.stxFound = false
			switch {
			case d.unstuffer.NeedMoreData():
				out = append(out, FramedByte{Err: ErrBadByteStuffing})
			case d.histLen < 2:
				out = append(out, FramedByte{Err: ErrBadFraming})
			default:
				sum := d.crc.Sum()
				lsb := byte(sum & 0x00FF)
				msb := byte(sum >> 8)
				if lsb != d.history[0] || msb != d.history[1] {
					out = append(out, FramedByte{Err: ErrBadCRC})
				} else {
					out = append(out, FramedByte{ConsumedLength: length, Done: true})
					length = 0
				}
			}
			continue
		}
		if b == stx {
			out = append(out, FramedByte{Err: ErrBadFraming})
			d.resetFrame()
			continue
		}
		d.unstuffer.Unstuff(b)
	}
	d.out = nil
	return out
}
