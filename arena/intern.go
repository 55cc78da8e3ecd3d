package arena

// StrRef is a non-owning view into arena-allocated bytes: a
// pointer+length pair rather than an independent string allocation, the
// same role the original's StrRef.hpp plays for names and values pulled
// out of the source document.
type StrRef struct {
	data []byte
}

// Bytes returns the referenced bytes.
func (s StrRef) Bytes() []byte { return s.data }

// String converts the reference to a Go string (a copy, since Go
// strings are immutable).
func (s StrRef) String() string { return string(s.data) }

// Len returns the length in bytes.
func (s StrRef) Len() int { return len(s.data) }

// Empty reports whether the reference has zero length.
func (s StrRef) Empty() bool { return len(s.data) == 0 }

// Interner copies byte runs into an Arena, handing back stable StrRefs.
// This is the "copy mode" path (spec's parse-option toggle
// ParseNonDestructive off): source bytes are duplicated into
// arena-owned storage so the original input buffer can be discarded or
// mutated afterward.
type Interner struct {
	a *Arena
}

// NewInterner creates an Interner backed by a.
func NewInterner(a *Arena) *Interner {
	return &Interner{a: a}
}

// Intern copies b into the arena and returns a StrRef over the copy.
func (in *Interner) Intern(b []byte) StrRef {
	if len(b) == 0 {
		return StrRef{}
	}
	dst := in.a.Allocate(len(b), 1)
	copy(dst, b)
	return StrRef{data: dst}
}

// InternString is a convenience wrapper over Intern for string sources.
func (in *Interner) InternString(s string) StrRef {
	return in.Intern([]byte(s))
}

// NonDestructiveRef wraps a slice of the original input buffer directly,
// without copying — the "non-destructive" parse mode, valid only as
// long as the caller keeps the original buffer alive and unmodified.
func NonDestructiveRef(b []byte) StrRef {
	return StrRef{data: b}
}
