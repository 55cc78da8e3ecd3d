package xmldom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSimpleElement(t *testing.T) {
	doc, err := Parse([]byte(`<root id="1">hello</root>`), ParseOptions{ValidateClosingTags: true})
	require.Nil(t, err)

	var rootID NodeId = NilNode
	doc.Children(doc.Root(), "", func(id NodeId) { rootID = id })
	require.NotEqual(t, NilNode, rootID)
	require.Equal(t, "root", doc.Node(rootID).Name.String())

	var attrs []string
	doc.Attributes(rootID, func(id NodeId) {
		a := doc.Attr(id)
		attrs = append(attrs, a.Name.String()+"="+a.Value.String())
	})
	require.Equal(t, []string{"id=1"}, attrs)

	var text string
	doc.Children(rootID, "", func(id NodeId) {
		if doc.Node(id).Kind == KindData {
			text = doc.Node(id).Data.String()
		}
	})
	require.Equal(t, "hello", text)
}

func TestParseNestedElementsAndSelfClosing(t *testing.T) {
	doc, err := Parse([]byte(`<a><b/><c>x</c></a>`), ParseOptions{})
	require.Nil(t, err)

	var a NodeId
	doc.Children(doc.Root(), "", func(id NodeId) { a = id })
	var names []string
	doc.Children(a, "", func(id NodeId) {
		if doc.Node(id).Kind == KindElement {
			names = append(names, doc.Node(id).Name.String())
		}
	})
	require.Equal(t, []string{"b", "c"}, names)
}

func TestParseCommentsSkippedByDefault(t *testing.T) {
	doc, err := Parse([]byte(`<a><!-- note --></a>`), ParseOptions{})
	require.Nil(t, err)
	var a NodeId
	doc.Children(doc.Root(), "", func(id NodeId) { a = id })
	count := 0
	doc.Children(a, "", func(id NodeId) { count++ })
	require.Equal(t, 0, count)
}

func TestParseCommentsKeptWhenRequested(t *testing.T) {
	doc, err := Parse([]byte(`<a><!-- note --></a>`), ParseOptions{CommentNodes: true})
	require.Nil(t, err)
	var a NodeId
	doc.Children(doc.Root(), "", func(id NodeId) { a = id })
	var kind NodeKind
	doc.Children(a, "", func(id NodeId) { kind = doc.Node(id).Kind })
	require.Equal(t, KindComment, kind)
}

func TestParseRejectsMismatchedClosingTag(t *testing.T) {
	_, err := Parse([]byte(`<a></b>`), ParseOptions{ValidateClosingTags: true})
	require.NotNil(t, err)
}

func TestParseEscapedEntities(t *testing.T) {
	doc, err := Parse([]byte(`<a>&lt;x&gt; &amp; &quot;y&quot;</a>`), ParseOptions{})
	require.Nil(t, err)
	var a NodeId
	doc.Children(doc.Root(), "", func(id NodeId) { a = id })
	var text string
	doc.Children(a, "", func(id NodeId) { text = doc.Node(id).Data.String() })
	require.Equal(t, `<x> & "y"`, text)
}

func TestParseMultiByteCharacterData(t *testing.T) {
	doc, err := Parse([]byte(`<a>héllo wörld 日本語</a>`), ParseOptions{})
	require.Nil(t, err)
	var a NodeId
	doc.Children(doc.Root(), "", func(id NodeId) { a = id })
	var text string
	doc.Children(a, "", func(id NodeId) { text = doc.Node(id).Data.String() })
	require.Equal(t, "héllo wörld 日本語", text)
}

func TestRenderRoundTrip(t *testing.T) {
	src := `<root id="1"><child>text</child></root>`
	doc, err := Parse([]byte(src), ParseOptions{})
	require.Nil(t, err)
	out := Render(doc, doc.Root())
	require.Equal(t, src, out)
}
