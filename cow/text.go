package cow

import "bytes"

// Text is a growable byte buffer with copy-on-write sharing. It is a thin
// façade over Handle[[]byte]: cloning a Text is O(1), and the first
// mutation through a clone that still shares its buffer copies the bytes
// exactly once. Operations that perform several edits go through Mutate a
// single time, so each Text operation can force at most one copy.
type Text struct {
	h *Handle[[]byte]
}

// NewText wraps s in a Text that is the sole owner of its buffer.
// Payload-appropriate Clone and Size defaults are installed when opt
// leaves them nil; Stats and Metrics pass through to the Handle.
func NewText(s string, opt Options[[]byte]) *Text {
	if opt.Clone == nil {
		opt.Clone = func(b []byte) []byte { return append([]byte(nil), b...) }
	}
	if opt.Size == nil {
		opt.Size = func(b []byte) int { return len(b) }
	}
	return &Text{h: New([]byte(s), opt)}
}

// Clone returns a new Text sharing the same buffer (no copy).
func (t *Text) Clone() *Text { return &Text{h: t.h.Clone()} }

// Len returns the buffer length in bytes.
func (t *Text) Len() int { return len(t.h.Read()) }

// String returns the buffer contents. The returned string is an
// independent copy, safe to hold across later mutations.
func (t *Text) String() string { return string(t.h.Read()) }

// Contains reports whether the buffer contains sub.
func (t *Text) Contains(sub string) bool {
	return bytes.Contains(t.h.Read(), []byte(sub))
}

// Append appends s to the buffer, copying the buffer first if it is
// still shared.
func (t *Text) Append(s string) {
	p := t.h.Mutate()
	*p = append(*p, s...)
}

// AppendByte appends a single byte.
func (t *Text) AppendByte(b byte) {
	p := t.h.Mutate()
	*p = append(*p, b)
}

// Truncate shortens the buffer to n bytes. Panics if n is negative or
// beyond the current length, mirroring slice semantics.
func (t *Text) Truncate(n int) {
	p := t.h.Mutate()
	*p = (*p)[:n]
}

// StrongCount returns the share count of the underlying buffer (diagnostic).
func (t *Text) StrongCount() int { return t.h.StrongCount() }

// TryUnwrap takes the buffer out without copying if this Text is the sole
// owner, consuming the Text. Otherwise the Text is unchanged and ok is false.
func (t *Text) TryUnwrap() (b []byte, ok bool) { return t.h.TryUnwrap() }

// Release drops this Text's reference to the buffer.
func (t *Text) Release() { t.h.Release() }
