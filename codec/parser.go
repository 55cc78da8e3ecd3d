package codec

import (
	"github.com/dkowalski/exicore/core"
	"github.com/dkowalski/exicore/diagnostics"
)

// Parser drives an EventSink from an EXI-encoded byte buffer: ParseHeader
// decodes the stream header (cookie/distinguishing bits/version/options),
// then repeated ParseNext calls walk the body's built-in grammar,
// invoking sink callbacks for each structural event, mirroring the
// Parser/Reader half of spec.md §4.H's facade.
type Parser struct {
	reader *core.BitReader
	opts   *core.Options
	sink   EventSink
	diag   *diagnostics.Diagnostics

	state        bodyState
	depth        int
	headerParsed bool
}

// New creates a Parser over buf, ready to ParseHeader. diag may be nil,
// in which case warnings are silently dropped.
func New(buf []byte, sink EventSink, diag *diagnostics.Diagnostics) *Parser {
	return &Parser{
		reader: core.NewBitReader(buf),
		sink:   sink,
		diag:   diag,
		state:  stateDocStart,
	}
}

// ParseHeader decodes the stream header and records the resulting
// Options for body decoding. It must be called exactly once before the
// first ParseNext. allowOutOfBand is forwarded to core.DecodeHeader:
// pass true only when the caller has another source of Options to fall
// back on if the header carries none.
func (p *Parser) ParseHeader(allowOutOfBand bool) *core.ExiError {
	opts, _, err := core.DecodeHeader(p.reader, allowOutOfBand)
	if err != nil {
		return err
	}
	p.opts = opts
	p.headerParsed = true
	return nil
}

func (p *Parser) warn(err *core.ExiError) {
	if ws, ok := p.sink.(WarningSink); ok {
		ws.Warning(err)
	}
	if p.diag != nil {
		p.diag.Warning(err.Message())
	}
}

// ParseNext decodes and dispatches exactly one structural event,
// returning KindParsingComplete once the document end has been reached.
func (p *Parser) ParseNext() *core.ExiError {
	if !p.headerParsed {
		return core.New(core.KindInconsistentProcState).WithCategory("codec")
	}

	switch p.state {
	case stateDocStart:
		p.state = stateDocContent
		if p.sink.StartDocument() == Stop {
			return core.New(core.KindStop)
		}
		return nil

	case stateDocContent:
		code, err := p.reader.ReadBitsU64(docContentCodeWidth)
		if err != nil {
			return err
		}
		switch code {
		case eventDocContentSE:
			qname, err := readLengthPrefixedString(p.reader)
			if err != nil {
				return err
			}
			p.state = stateElementContent
			p.depth++
			if p.sink.StartElement(qname) == Stop {
				return core.New(core.KindStop)
			}
			return nil
		case eventDocContentED:
			p.state = stateDocEnd
			if p.sink.EndDocument() == Stop {
				return core.New(core.KindStop)
			}
			return core.New(core.KindParsingComplete)
		default:
			return core.New(core.KindInvalidEXIInput).WithCategory("codec")
		}

	case stateElementContent:
		code, err := p.reader.ReadBitsU64(elementContentCodeWidth)
		if err != nil {
			return err
		}
		switch code {
		case eventElementAT:
			qname, err := readLengthPrefixedString(p.reader)
			if err != nil {
				return err
			}
			value, err := readLengthPrefixedString(p.reader)
			if err != nil {
				return err
			}
			if p.sink.Attribute(qname, value) == Stop {
				return core.New(core.KindStop)
			}
			return nil
		case eventElementNS:
			uri, err := readLengthPrefixedString(p.reader)
			if err != nil {
				return err
			}
			prefix, err := readLengthPrefixedString(p.reader)
			if err != nil {
				return err
			}
			localBit, err := p.reader.ReadBit()
			if err != nil {
				return err
			}
			if p.sink.NamespaceDeclaration(uri, prefix, localBit != 0) == Stop {
				return core.New(core.KindStop)
			}
			return nil
		case eventElementSE:
			qname, err := readLengthPrefixedString(p.reader)
			if err != nil {
				return err
			}
			p.depth++
			if p.sink.StartElement(qname) == Stop {
				return core.New(core.KindStop)
			}
			return nil
		case eventElementCH:
			data, err := readLengthPrefixedString(p.reader)
			if err != nil {
				return err
			}
			if p.sink.CharacterData(data) == Stop {
				return core.New(core.KindStop)
			}
			return nil
		case eventElementEE:
			p.depth--
			if p.depth == 0 {
				p.state = stateDocContent
			}
			if p.sink.EndElement() == Stop {
				return core.New(core.KindStop)
			}
			return nil
		default:
			return core.New(core.KindInvalidEXIInput).WithCategory("codec")
		}

	case stateDocEnd:
		return core.New(core.KindParsingComplete)
	}

	return core.New(core.KindUnexpected).WithCategory("codec")
}

// ParseAll drives ParseNext to completion, stopping on KindParsingComplete
// (treated as success) or any other error.
func (p *Parser) ParseAll() *core.ExiError {
	for {
		err := p.ParseNext()
		if err == nil {
			continue
		}
		if err.Kind == core.KindParsingComplete {
			return nil
		}
		return err
	}
}
