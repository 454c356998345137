// Package scratch is a per-frame byte buffer for HUD strings that change
// every frame (score, clock, frame rate). Reset it once per frame before
// the first builder call; strings viewed from it are valid until then.
package scratch

import (
	"strconv"
	"unsafe"
)

// Single render thread; not safe for concurrent use.
var buf []byte

// Init allocates the buffer. Call once at startup.
func Init(capacity int) {
	if capacity <= 0 {
		capacity = 1024
	}
	buf = make([]byte, 0, capacity)
}

// Reset empties the buffer without freeing it.
func Reset() { buf = buf[:0] }

func Len() int { return len(buf) }
func Cap() int { return cap(buf) }

// Mark bookmarks the current end of the buffer.
func Mark() int { return len(buf) }

// StringFrom copies everything written since mark.
func StringFrom(mark int) string { return string(buf[mark:]) }

// ViewFrom is a zero-copy view of everything written since mark. Growing
// the buffer moves it, so a view is only safe while capacity suffices;
// size the buffer with Init so the frame's text fits.
func ViewFrom(mark int) string {
	b := buf[mark:]
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(&b[0], len(b))
}

// Builder appends to the global buffer. The zero value is ready to use.
type Builder struct{ mark int }

// F starts a builder at the current end of the buffer.
func F() Builder { return Builder{mark: len(buf)} }

func (b Builder) S(s string) Builder {
	buf = append(buf, s...)
	return b
}

func (b Builder) C(c byte) Builder {
	buf = append(buf, c)
	return b
}

func (b Builder) I(v int) Builder {
	buf = strconv.AppendInt(buf, int64(v), 10)
	return b
}

// F64 appends v with prec digits after the point.
func (b Builder) F64(v float64, prec int) Builder {
	buf = strconv.AppendFloat(buf, v, 'f', prec, 64)
	return b
}

// Pad appends n copies of c.
func (b Builder) Pad(n int, c byte) Builder {
	for ; n > 0; n-- {
		buf = append(buf, c)
	}
	return b
}

// Clock appends ms as m:ss.
func (b Builder) Clock(ms int64) Builder {
	s := ms / 1000
	buf = strconv.AppendInt(buf, s/60, 10)
	buf = append(buf, ':')
	if s%60 < 10 {
		buf = append(buf, '0')
	}
	buf = strconv.AppendInt(buf, s%60, 10)
	return b
}

// View ends the chain with a zero-copy view of what it wrote.
func (b Builder) View() string { return ViewFrom(b.mark) }

// String ends the chain with a copy of what it wrote.
func (b Builder) String() string { return StringFrom(b.mark) }
