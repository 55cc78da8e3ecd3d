package xmldom

import (
	Text "github.com/linkdotnet/golang-stringbuilder"
)

// Render serializes the subtree rooted at id back to canonical XML text,
// grounded on the original's XMLDumper.cpp straight tree-walk: attribute
// and child order are preserved exactly as stored, with no reordering.
// XMLDumper's SortAttrsQName (an xsi:type-first attribute reordering
// rule) is deliberately not ported here, per the design notes that call
// for leaving that convenience out of the core tree-walker.
func Render(d *Document, id NodeId) string {
	sb := Text.NewStringBuilder()
	renderNode(d, id, sb)
	return sb.ToString()
}

func renderNode(d *Document, id NodeId, sb *Text.StringBuilder) {
	n := d.Node(id)
	switch n.Kind {
	case KindDocument:
		d.Children(id, "", func(c NodeId) { renderNode(d, c, sb) })
	case KindElement:
		name := n.Name.String()
		sb.Append("<").Append(name)
		d.Attributes(id, func(a NodeId) {
			at := d.Attr(a)
			sb.Append(" ").Append(at.Name.String()).Append("=\"")
			appendEscaped(sb, at.Value.String(), true)
			sb.Append("\"")
		})
		if n.FirstChild == NilNode {
			sb.Append("/>")
			return
		}
		sb.Append(">")
		d.Children(id, "", func(c NodeId) { renderNode(d, c, sb) })
		sb.Append("</").Append(name).Append(">")
	case KindData:
		appendEscaped(sb, n.Data.String(), false)
	case KindCDATA:
		sb.Append("<![CDATA[").Append(n.Data.String()).Append("]]>")
	case KindComment:
		sb.Append("<!--").Append(n.Data.String()).Append("-->")
	case KindDeclaration:
		sb.Append("<?xml ").Append(n.Data.String()).Append("?>")
	case KindDoctype:
		sb.Append("<!DOCTYPE ").Append(n.Data.String()).Append(">")
	case KindPI:
		sb.Append("<?").Append(n.Name.String()).Append(" ").Append(n.Data.String()).Append("?>")
	}
}

func appendEscaped(sb *Text.StringBuilder, s string, attr bool) {
	for _, r := range s {
		switch r {
		case '&':
			sb.Append("&amp;")
		case '<':
			sb.Append("&lt;")
		case '>':
			sb.Append("&gt;")
		case '"':
			if attr {
				sb.Append("&quot;")
			} else {
				sb.Append(string(r))
			}
		default:
			sb.Append(string(r))
		}
	}
}
