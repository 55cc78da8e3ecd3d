package codec

import "github.com/dkowalski/exicore/core"

// bodyState tracks which of the built-in grammar's four states
// (document start, document content, element content, document end) is
// active, mirroring the teacher's minimal SchemaLessGrammars
// Document/DocContent/DocEnd structure (NewSchemaLessGrammars), but
// without per-element/per-type grammar specialization: every element
// uses the same generic "content" production regardless of name, since
// there is no schema and no learned string-table grammar here.
type bodyState uint8

const (
	stateDocStart bodyState = iota
	stateDocContent
	stateElementContent
	stateDocEnd
)

// Event codes within the docContent production: a generic
// StartElement or EndDocument, 1 bit wide (two alternatives).
const (
	eventDocContentSE uint64 = 0
	eventDocContentED uint64 = 1
)

const docContentAlphabet = 2

// Event codes within the elementContent production: generic Attribute,
// NamespaceDeclaration, StartElement, CharacterData, or EndElement —
// five alternatives, ceil(log2(5)) = 3 bits.
const (
	eventElementAT uint64 = 0
	eventElementNS uint64 = 1
	eventElementSE uint64 = 2
	eventElementCH uint64 = 3
	eventElementEE uint64 = 4
)

const elementContentAlphabet = 5

var (
	docContentCodeWidth  = core.BitWidth(docContentAlphabet)
	elementContentCodeWidth = core.BitWidth(elementContentAlphabet)
)

// writeLengthPrefixedString writes s as an unsigned-LEB128 byte length
// followed by its UTF-8 bytes. Every qname/value is written this way —
// there is no string table to intern against and emit a compact "hit"
// code for, since that machinery is out of scope for this core.
func writeLengthPrefixedString(w *core.BitWriter, s string) *core.ExiError {
	b := []byte(s)
	if err := w.WriteUintLEB(uint64(len(b))); err != nil {
		return err
	}
	return w.WriteByteSlice(b)
}

func readLengthPrefixedString(r *core.BitReader) (string, *core.ExiError) {
	length, err := r.ReadUintLEB()
	if err != nil {
		return "", err
	}
	b, err := r.ReadByteSlice(int(length))
	if err != nil {
		return "", err
	}
	return string(b), nil
}
