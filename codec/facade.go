// Package codec implements the EXI body facade: a minimal event-driven
// Parser/Writer pair over core's bit-stream and header layers. This
// package is a narrowed replacement for the teacher's grammar-heavy
// sax/structs packages (full schema-informed grammar derivation and the
// adaptive string-table layer those packages build on are explicitly
// out of scope), scoped instead to a fixed-alphabet "built-in" grammar
// comparable to the teacher's NewSchemaLessGrammars — a minimal
// Document/DocContent/DocEnd structure — but without string-table
// learning, since there is no string table in this core.
package codec

import (
	"github.com/dkowalski/exicore/core"
)

// Directive is returned by every EventSink callback to tell the Parser
// whether to keep going or stop early, mirroring SAX-style handler
// return codes.
type Directive uint8

const (
	Continue Directive = iota
	Stop
)

// EventSink receives the stream of structural events a Parser produces
// while decoding an EXI body, the decode-side half of the facade
// described in spec.md's component table.
type EventSink interface {
	StartDocument() Directive
	EndDocument() Directive
	StartElement(qname string) Directive
	EndElement() Directive
	Attribute(qname, value string) Directive
	NamespaceDeclaration(uri, prefix string, isLocal bool) Directive
	CharacterData(data string) Directive
}

// WarningSink is an optional extension EventSink implementations may
// provide to receive non-fatal diagnostics (a malformed-but-recoverable
// namespace declaration, for instance). Parser checks for it with a type
// assertion rather than requiring every sink to implement it.
type WarningSink interface {
	Warning(err *core.ExiError)
}

// EventSource is the encode-side mirror of EventSink: callers push
// structural events into a Writer by calling these methods directly
// (Writer itself implements the emit side; EventSource exists so other
// code can be written generically against "a thing accepting XML
// events" regardless of whether it's a Writer or a test recorder).
type EventSource interface {
	EmitStartDocument() *core.ExiError
	EmitEndDocument() *core.ExiError
	EmitStartElement(qname string) *core.ExiError
	EmitEndElement() *core.ExiError
	EmitAttribute(qname, value string) *core.ExiError
	EmitNamespaceDeclaration(uri, prefix string, isLocal bool) *core.ExiError
	EmitCharacters(data string) *core.ExiError
}
