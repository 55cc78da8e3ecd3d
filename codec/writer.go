package codec

import (
	"github.com/dkowalski/exicore/core"
	"github.com/dkowalski/exicore/diagnostics"
)

// Writer is the encode-side mirror of Parser: EmitX calls push
// structural events through the same built-in grammar Parser decodes,
// producing an EXI-encoded byte buffer on Finalize.
type Writer struct {
	writer *core.BitWriter
	opts   *core.Options
	diag   *diagnostics.Diagnostics

	state        bodyState
	depth        int
	headerWritten bool
}

// NewWriter creates a Writer that will encode according to opts (nil
// selects core.NewOptions defaults). diag may be nil.
func NewWriter(opts *core.Options, diag *diagnostics.Diagnostics) *Writer {
	if opts == nil {
		opts = core.NewOptions()
	}
	return &Writer{
		writer: core.NewBitWriter(256),
		opts:   opts,
		diag:   diag,
		state:  stateDocStart,
	}
}

// WriteHeader encodes the stream header. Must be called exactly once
// before the first Emit call.
func (w *Writer) WriteHeader() *core.ExiError {
	if err := core.EncodeHeader(w.writer, w.opts); err != nil {
		return err
	}
	w.headerWritten = true
	return nil
}

func (w *Writer) checkReady() *core.ExiError {
	if !w.headerWritten {
		return core.New(core.KindInconsistentProcState).WithCategory("codec")
	}
	return nil
}

func (w *Writer) EmitStartDocument() *core.ExiError {
	if err := w.checkReady(); err != nil {
		return err
	}
	if w.state != stateDocStart {
		return core.New(core.KindInconsistentProcState).WithCategory("codec")
	}
	w.state = stateDocContent
	return nil
}

func (w *Writer) EmitEndDocument() *core.ExiError {
	if w.state != stateDocContent {
		return core.New(core.KindInconsistentProcState).WithCategory("codec")
	}
	if err := w.writer.WriteBitsU64(eventDocContentED, docContentCodeWidth); err != nil {
		return err
	}
	w.state = stateDocEnd
	return nil
}

func (w *Writer) EmitStartElement(qname string) *core.ExiError {
	switch w.state {
	case stateDocContent:
		if err := w.writer.WriteBitsU64(eventDocContentSE, docContentCodeWidth); err != nil {
			return err
		}
	case stateElementContent:
		if err := w.writer.WriteBitsU64(eventElementSE, elementContentCodeWidth); err != nil {
			return err
		}
	default:
		return core.New(core.KindInconsistentProcState).WithCategory("codec")
	}
	if err := writeLengthPrefixedString(w.writer, qname); err != nil {
		return err
	}
	w.state = stateElementContent
	w.depth++
	return nil
}

func (w *Writer) EmitEndElement() *core.ExiError {
	if w.state != stateElementContent {
		return core.New(core.KindInconsistentProcState).WithCategory("codec")
	}
	if err := w.writer.WriteBitsU64(eventElementEE, elementContentCodeWidth); err != nil {
		return err
	}
	w.depth--
	if w.depth == 0 {
		w.state = stateDocContent
	}
	return nil
}

func (w *Writer) EmitAttribute(qname, value string) *core.ExiError {
	if w.state != stateElementContent {
		return core.New(core.KindInconsistentProcState).WithCategory("codec")
	}
	if err := w.writer.WriteBitsU64(eventElementAT, elementContentCodeWidth); err != nil {
		return err
	}
	if err := writeLengthPrefixedString(w.writer, qname); err != nil {
		return err
	}
	return writeLengthPrefixedString(w.writer, value)
}

func (w *Writer) EmitNamespaceDeclaration(uri, prefix string, isLocal bool) *core.ExiError {
	if w.state != stateElementContent {
		return core.New(core.KindInconsistentProcState).WithCategory("codec")
	}
	if err := w.writer.WriteBitsU64(eventElementNS, elementContentCodeWidth); err != nil {
		return err
	}
	if err := writeLengthPrefixedString(w.writer, uri); err != nil {
		return err
	}
	if err := writeLengthPrefixedString(w.writer, prefix); err != nil {
		return err
	}
	bit := uint8(0)
	if isLocal {
		bit = 1
	}
	return w.writer.WriteBit(bit)
}

func (w *Writer) EmitCharacters(data string) *core.ExiError {
	if w.state != stateElementContent {
		return core.New(core.KindInconsistentProcState).WithCategory("codec")
	}
	if err := w.writer.WriteBitsU64(eventElementCH, elementContentCodeWidth); err != nil {
		return err
	}
	return writeLengthPrefixedString(w.writer, data)
}

// Finalize pads the stream with zero bits to the next byte boundary (in
// every alignment mode) and returns the encoded bytes.
func (w *Writer) Finalize() ([]byte, *core.ExiError) {
	if w.state != stateDocEnd {
		return nil, core.New(core.KindInconsistentProcState).WithCategory("codec")
	}
	if err := w.writer.AlignUp(); err != nil {
		return nil, err
	}
	return w.writer.WrittenBytes(), nil
}

var _ EventSource = (*Writer)(nil)
