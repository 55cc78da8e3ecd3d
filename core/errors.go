package core

import (
	"fmt"
	"io"

	Text "github.com/linkdotnet/golang-stringbuilder"
)

// Kind classifies an ExiError. The zero Kind is KindOk: a cleared
// ExiError is always a success value.
type Kind uint8

const (
	KindOk Kind = iota
	KindStop
	KindUnimplemented
	KindUnexpected
	KindOutOfBounds
	KindNullRef
	KindInvalidMemoryAlloc
	KindInvalidEXIHeader
	KindInconsistentProcState
	KindInvalidEXIInput
	KindBufferEndReached
	KindParsingComplete
	KindInvalidConfig
	KindNoPrefixesPreservedXMLSchema
	KindInvalidStringOp
	KindHeaderOptionsMismatch
)

func (k Kind) String() string {
	switch k {
	case KindOk:
		return "Ok"
	case KindStop:
		return "Stop"
	case KindUnimplemented:
		return "Unimplemented"
	case KindUnexpected:
		return "Unexpected"
	case KindOutOfBounds:
		return "OutOfBounds"
	case KindNullRef:
		return "NullRef"
	case KindInvalidMemoryAlloc:
		return "InvalidMemoryAlloc"
	case KindInvalidEXIHeader:
		return "InvalidEXIHeader"
	case KindInconsistentProcState:
		return "InconsistentProcState"
	case KindInvalidEXIInput:
		return "InvalidEXIInput"
	case KindBufferEndReached:
		return "BufferEndReached"
	case KindParsingComplete:
		return "ParsingComplete"
	case KindInvalidConfig:
		return "InvalidConfig"
	case KindNoPrefixesPreservedXMLSchema:
		return "NoPrefixesPreservedXMLSchema"
	case KindInvalidStringOp:
		return "InvalidStringOp"
	case KindHeaderOptionsMismatch:
		return "HeaderOptionsMismatch"
	default:
		return "Unknown"
	}
}

// UnsetExtra is the sentinel value of ExiError.Extra when a Kind carries
// no auxiliary payload.
const UnsetExtra uint32 = 0xFFFFFFFF

// ExiError is a fixed-shape, allocation-free error value: a Kind, an
// optional 32-bit payload (bits requested on a BufferEndReached, the
// header sub-code on InvalidEXIHeader/HeaderOptionsMismatch), and a
// category tag distinguishing which subsystem raised it. It replaces
// the teacher's plain `error` return per the Result-typed re-architecture.
type ExiError struct {
	Kind     Kind
	Extra    uint32
	Category string
}

// Ok is the success ExiError (KindOk with no payload).
var Ok = ExiError{Kind: KindOk, Extra: UnsetExtra}

func (e *ExiError) IsOk() bool {
	return e == nil || e.Kind == KindOk
}

func (e *ExiError) IsErr() bool {
	return !e.IsOk()
}

// New builds a plain ExiError of the given kind with no payload.
func New(kind Kind) *ExiError {
	return &ExiError{Kind: kind, Extra: UnsetExtra}
}

// Full builds a BufferEndReached error carrying the number of bits that
// were requested but unavailable.
func Full(bitsRequested uint32) *ExiError {
	return &ExiError{Kind: KindBufferEndReached, Extra: bitsRequested, Category: "bitstream"}
}

// Header builds an InvalidEXIHeader error carrying a header-specific
// sub-code (see header.go's HeaderSubcode* constants).
func Header(subcode uint32) *ExiError {
	return &ExiError{Kind: KindInvalidEXIHeader, Extra: subcode, Category: "header"}
}

// Mismatch builds a HeaderOptionsMismatch error carrying the mismatching
// rule number (R1..R5, see options.go's Rule* constants).
func Mismatch(rule uint32) *ExiError {
	return &ExiError{Kind: KindHeaderOptionsMismatch, Extra: rule, Category: "header"}
}

// WithCategory returns a copy of e tagged with the given category.
func (e *ExiError) WithCategory(category string) *ExiError {
	if e == nil {
		return nil
	}
	cp := *e
	cp.Category = category
	return &cp
}

// Message renders a short human-readable description of the error,
// assembled incrementally the way the teacher builds multi-part text.
func (e *ExiError) Message() string {
	if e.IsOk() {
		return "ok"
	}

	sb := Text.NewStringBuilder()
	sb.Append(e.Kind.String())
	if e.Category != "" {
		sb.Append(" [").Append(e.Category).Append("]")
	}
	if e.Extra != UnsetExtra {
		sb.Append(fmt.Sprintf(" (extra=%d)", e.Extra))
	}
	return sb.ToString()
}

// Error implements the standard error interface so an *ExiError can be
// returned anywhere a Go error is expected (e.g. wrapped by fmt.Errorf
// at a package boundary), without forcing every internal call site to
// allocate one.
func (e *ExiError) Error() string {
	return e.Message()
}

// Print writes the error's message to w, mirroring the teacher's
// "print context to a writer" helper shape.
func (e *ExiError) Print(w io.Writer) {
	fmt.Fprint(w, e.Message())
}

// Invariant panics with msg if cond is false. Used sparingly, only for
// states that indicate a programming error rather than bad input (the
// teacher never needs this since it has no arena/bit-position cursors
// whose invariants can be violated by a caller bypassing constructors).
func Invariant(cond bool, msg string) {
	if !cond {
		panic(msg)
	}
}
