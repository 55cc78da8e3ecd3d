package xmldom

import (
	"unicode/utf8"

	"github.com/dkowalski/exicore/core"
	"github.com/dkowalski/exicore/utils"
)

// Parse reads an XML document from src into a fresh Document, honoring
// opts' non-destructive/copy interning mode and which auxiliary node
// kinds (comments, PIs, DOCTYPE) are kept. It is a small hand-rolled
// recursive-descent scanner grounded on the structure of the original's
// vendored rapidxml parser: a single forward pass over the byte buffer,
// no backtracking. Whitespace before a tag or before character data is
// skipped, so whitespace-only runs between tags produce no node; other
// character data becomes KindData nodes, and is discarded when
// opts.NoDataNodes is set.
func Parse(src []byte, opts ParseOptions) (*Document, *core.ExiError) {
	d := NewDocument(opts.NonDestructive)
	p := &parser{src: src, opts: opts, doc: d}
	if err := p.parseNodes(d.Root()); err != nil {
		return nil, err
	}
	if opts.ValidateClosingTags && p.pos < len(p.src) {
		return nil, core.New(core.KindInvalidEXIInput).WithCategory("xmldom")
	}
	return d, nil
}

type parser struct {
	src  []byte
	pos  int
	opts ParseOptions
	doc  *Document
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) skipWhitespace() {
	for !p.eof() && isWS(p.src[p.pos]) {
		p.pos++
	}
}

func isWS(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

func isNameChar(b byte) bool {
	return b == ':' || b == '_' || b == '-' || b == '.' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func (p *parser) parseName() []byte {
	start := p.pos
	for !p.eof() && isNameChar(p.src[p.pos]) {
		p.pos++
	}
	return p.src[start:p.pos]
}

// parseNodes parses a run of sibling nodes under parent until EOF or a
// closing tag is encountered (the closing tag itself is consumed by the
// caller, parseElement).
func (p *parser) parseNodes(parent NodeId) *core.ExiError {
	for {
		p.skipWhitespace()
		if p.eof() {
			return nil
		}
		if p.peek() != '<' {
			if err := p.parseData(parent); err != nil {
				return err
			}
			continue
		}
		if p.pos+1 < len(p.src) && p.src[p.pos+1] == '/' {
			return nil
		}
		if err := p.parseTag(parent); err != nil {
			return err
		}
	}
}

func (p *parser) parseData(parent NodeId) *core.ExiError {
	start := p.pos
	for !p.eof() && p.src[p.pos] != '<' {
		p.pos++
	}
	if p.opts.NoDataNodes {
		return nil
	}
	text := unescape(p.src[start:p.pos])
	if err := validateCodePoints(text); err != nil {
		return err
	}
	node := p.doc.AllocateNode(KindData, nil, text)
	p.doc.AppendChild(parent, node)
	return nil
}

// validateCodePoints rejects character data containing a code point
// outside U+0000–U+10FFFF, using the teacher's utils.IsValidCodePoint
// (the same check the teacher applies before treating a decoded integer
// as a character, e.g. in its surrogate-pair handling).
func validateCodePoints(b []byte) *core.ExiError {
	count, cpErr := utils.CodePointCount(string(b), 0, len(b))
	if cpErr != nil {
		return core.New(core.KindInvalidEXIInput).WithCategory("xmldom")
	}
	seen := 0
	for i := 0; i < len(b) && seen < count; {
		r, size := utf8.DecodeRune(b[i:])
		if !utils.IsValidCodePoint(int(r)) {
			return core.New(core.KindInvalidEXIInput).WithCategory("xmldom")
		}
		i += size
		seen++
	}
	return nil
}

func (p *parser) parseTag(parent NodeId) *core.ExiError {
	// p.src[p.pos] == '<'
	if startsWith(p.src[p.pos:], "<?xml") {
		return p.parseDeclaration(parent)
	}
	if startsWith(p.src[p.pos:], "<!--") {
		return p.parseComment(parent)
	}
	if startsWith(p.src[p.pos:], "<![CDATA[") {
		return p.parseCDATA(parent)
	}
	if startsWith(p.src[p.pos:], "<!DOCTYPE") {
		return p.parseDoctype(parent)
	}
	if startsWith(p.src[p.pos:], "<?") {
		return p.parsePI(parent)
	}
	return p.parseElement(parent)
}

func startsWith(b []byte, prefix string) bool {
	if len(b) < len(prefix) {
		return false
	}
	return string(b[:len(prefix)]) == prefix
}

func findClose(src []byte, from int, closer string) int {
	for i := from; i+len(closer) <= len(src); i++ {
		if string(src[i:i+len(closer)]) == closer {
			return i
		}
	}
	return -1
}

func (p *parser) parseDeclaration(parent NodeId) *core.ExiError {
	end := findClose(p.src, p.pos, "?>")
	if end < 0 {
		return core.New(core.KindInvalidEXIInput).WithCategory("xmldom")
	}
	body := p.src[p.pos+len("<?xml") : end]
	p.pos = end + len("?>")
	node := p.doc.AllocateNode(KindDeclaration, nil, trimSpace(body))
	p.doc.AppendChild(parent, node)
	return nil
}

func (p *parser) parseComment(parent NodeId) *core.ExiError {
	end := findClose(p.src, p.pos, "-->")
	if end < 0 {
		return core.New(core.KindInvalidEXIInput).WithCategory("xmldom")
	}
	body := p.src[p.pos+len("<!--") : end]
	p.pos = end + len("-->")
	if p.opts.CommentNodes {
		node := p.doc.AllocateNode(KindComment, nil, body)
		p.doc.AppendChild(parent, node)
	}
	return nil
}

func (p *parser) parseCDATA(parent NodeId) *core.ExiError {
	end := findClose(p.src, p.pos, "]]>")
	if end < 0 {
		return core.New(core.KindInvalidEXIInput).WithCategory("xmldom")
	}
	body := p.src[p.pos+len("<![CDATA[") : end]
	p.pos = end + len("]]>")
	node := p.doc.AllocateNode(KindCDATA, nil, body)
	p.doc.AppendChild(parent, node)
	return nil
}

func (p *parser) parseDoctype(parent NodeId) *core.ExiError {
	end := findClose(p.src, p.pos, ">")
	if end < 0 {
		return core.New(core.KindInvalidEXIInput).WithCategory("xmldom")
	}
	body := p.src[p.pos+len("<!DOCTYPE") : end]
	p.pos = end + len(">")
	if p.opts.DoctypeNode {
		node := p.doc.AllocateNode(KindDoctype, nil, trimSpace(body))
		p.doc.AppendChild(parent, node)
	}
	return nil
}

func (p *parser) parsePI(parent NodeId) *core.ExiError {
	end := findClose(p.src, p.pos, "?>")
	if end < 0 {
		return core.New(core.KindInvalidEXIInput).WithCategory("xmldom")
	}
	p.pos += len("<?")
	name := p.parseName()
	p.skipWhitespace()
	body := p.src[p.pos:end]
	p.pos = end + len("?>")
	if p.opts.PINodes {
		node := p.doc.AllocateNode(KindPI, name, trimSpace(body))
		p.doc.AppendChild(parent, node)
	}
	return nil
}

func (p *parser) parseElement(parent NodeId) *core.ExiError {
	p.pos++ // consume '<'
	name := p.parseName()
	if len(name) == 0 {
		return core.New(core.KindInvalidEXIInput).WithCategory("xmldom")
	}
	node := p.doc.AllocateNode(KindElement, name, nil)

	for {
		p.skipWhitespace()
		if p.eof() {
			return core.New(core.KindInvalidEXIInput).WithCategory("xmldom")
		}
		if p.peek() == '/' && p.pos+1 < len(p.src) && p.src[p.pos+1] == '>' {
			p.pos += 2
			p.doc.AppendChild(parent, node)
			return nil
		}
		if p.peek() == '>' {
			p.pos++
			break
		}
		if err := p.parseAttribute(node); err != nil {
			return err
		}
	}

	p.doc.AppendChild(parent, node)
	if err := p.parseNodes(node); err != nil {
		return err
	}

	// consume "</name>"
	if p.eof() || p.src[p.pos] != '<' || p.pos+1 >= len(p.src) || p.src[p.pos+1] != '/' {
		return core.New(core.KindInvalidEXIInput).WithCategory("xmldom")
	}
	p.pos += 2
	closeName := p.parseName()
	p.skipWhitespace()
	if p.eof() || p.src[p.pos] != '>' {
		return core.New(core.KindInvalidEXIInput).WithCategory("xmldom")
	}
	p.pos++
	if p.opts.ValidateClosingTags && string(closeName) != string(name) {
		return core.New(core.KindInvalidEXIInput).WithCategory("xmldom")
	}
	return nil
}

func (p *parser) parseAttribute(owner NodeId) *core.ExiError {
	name := p.parseName()
	if len(name) == 0 {
		return core.New(core.KindInvalidEXIInput).WithCategory("xmldom")
	}
	p.skipWhitespace()
	if p.eof() || p.src[p.pos] != '=' {
		return core.New(core.KindInvalidEXIInput).WithCategory("xmldom")
	}
	p.pos++
	p.skipWhitespace()
	if p.eof() || (p.src[p.pos] != '"' && p.src[p.pos] != '\'') {
		return core.New(core.KindInvalidEXIInput).WithCategory("xmldom")
	}
	quote := p.src[p.pos]
	p.pos++
	start := p.pos
	for !p.eof() && p.src[p.pos] != quote {
		p.pos++
	}
	if p.eof() {
		return core.New(core.KindInvalidEXIInput).WithCategory("xmldom")
	}
	value := p.src[start:p.pos]
	p.pos++ // consume closing quote

	attr := p.doc.AllocateAttribute(name, unescape(value))
	p.doc.AppendAttribute(owner, attr)
	return nil
}

func trimSpace(b []byte) []byte {
	start, end := 0, len(b)
	for start < end && isWS(b[start]) {
		start++
	}
	for end > start && isWS(b[end-1]) {
		end--
	}
	return b[start:end]
}

// unescape resolves the five predefined XML entities. Numeric character
// references and DTD-declared entities are out of scope, matching the
// core codec's non-goal of full DTD processing beyond capturing the
// DOCTYPE value verbatim.
func unescape(b []byte) []byte {
	hasAmp := false
	for _, c := range b {
		if c == '&' {
			hasAmp = true
			break
		}
	}
	if !hasAmp {
		return b
	}

	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); {
		if b[i] == '&' {
			switch {
			case startsWith(b[i:], "&amp;"):
				out = append(out, '&')
				i += 5
				continue
			case startsWith(b[i:], "&lt;"):
				out = append(out, '<')
				i += 4
				continue
			case startsWith(b[i:], "&gt;"):
				out = append(out, '>')
				i += 4
				continue
			case startsWith(b[i:], "&quot;"):
				out = append(out, '"')
				i += 6
				continue
			case startsWith(b[i:], "&apos;"):
				out = append(out, '\'')
				i += 6
				continue
			}
		}
		out = append(out, b[i])
		i++
	}
	return out
}
