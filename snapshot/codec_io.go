package snapshot

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"

	"github.com/pkg/errors"
)

// encoder/decoder are small helpers around bytes.Buffer/bytes.Reader
// that latch the first error they hit, so every put/get call site in
// snapshot.go can stay error-check-free; callers check err once at the
// end.
type encoder struct {
	buf *bytes.Buffer
	err error
}

func (e *encoder) putRaw(b []byte) {
	if e.err != nil {
		return
	}
	_, e.err = e.buf.Write(b)
}

func (e *encoder) putUint8(v uint8) {
	e.putRaw([]byte{v})
}

func (e *encoder) putInt64(v int64) {
	if e.err != nil {
		return
	}
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(v))
	e.putRaw(b[:])
}

func (e *encoder) putFloat64(v float64) {
	if e.err != nil {
		return
	}
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], math.Float64bits(v))
	e.putRaw(b[:])
}

func (e *encoder) putString(s string) {
	if e.err != nil {
		return
	}
	e.putInt64(int64(len(s)))
	e.putRaw([]byte(s))
}

type decoder struct {
	r   *bytes.Reader
	err error
}

func (d *decoder) getRaw(n int) []byte {
	if d.err != nil {
		return nil
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(d.r, b); err != nil {
		d.err = errors.Wrap(err, "reading snapshot field")
		return nil
	}
	return b
}

func (d *decoder) getUint8() uint8 {
	b := d.getRaw(1)
	if d.err != nil || len(b) == 0 {
		return 0
	}
	return b[0]
}

func (d *decoder) getInt64() int64 {
	b := d.getRaw(8)
	if d.err != nil || len(b) < 8 {
		return 0
	}
	return int64(binary.LittleEndian.Uint64(b))
}

func (d *decoder) getFloat64() float64 {
	b := d.getRaw(8)
	if d.err != nil || len(b) < 8 {
		return 0
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b))
}

func (d *decoder) getString() string {
	n := d.getCount()
	if d.err != nil {
		return ""
	}
	b := d.getRaw(int(n))
	if d.err != nil {
		return ""
	}
	return string(b)
}

// getCount reads a length/count field that is about to be used as a
// slice capacity or loop bound. Unlike getInt64, a negative or
// implausibly large value is treated as corruption rather than passed
// through to make(), which would panic on a negative length or stall
// on an attempted multi-terabyte allocation.
func (d *decoder) getCount() int64 {
	n := d.getInt64()
	if d.err != nil {
		return 0
	}
	if n < 0 || n > 1<<32 {
		d.err = errors.Errorf("corrupt snapshot: implausible count %d", n)
		return 0
	}
	return n
}
