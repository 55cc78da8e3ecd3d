package xmldom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppendAndIterateChildren(t *testing.T) {
	d := NewDocument(false)
	root := d.Root()

	a := d.AllocateNode(KindElement, []byte("a"), nil)
	b := d.AllocateNode(KindElement, []byte("b"), nil)
	d.AppendChild(root, a)
	d.AppendChild(root, b)

	var names []string
	d.Children(root, "", func(id NodeId) {
		names = append(names, d.Node(id).Name.String())
	})
	require.Equal(t, []string{"a", "b"}, names)
}

func TestPrependChild(t *testing.T) {
	d := NewDocument(false)
	root := d.Root()
	a := d.AllocateNode(KindElement, []byte("a"), nil)
	b := d.AllocateNode(KindElement, []byte("b"), nil)
	d.AppendChild(root, a)
	d.PrependChild(root, b)

	var names []string
	d.Children(root, "", func(id NodeId) { names = append(names, d.Node(id).Name.String()) })
	require.Equal(t, []string{"b", "a"}, names)
}

func TestRemoveChild(t *testing.T) {
	d := NewDocument(false)
	root := d.Root()
	a := d.AllocateNode(KindElement, []byte("a"), nil)
	b := d.AllocateNode(KindElement, []byte("b"), nil)
	d.AppendChild(root, a)
	d.AppendChild(root, b)
	d.RemoveChild(a)

	var names []string
	d.Children(root, "", func(id NodeId) { names = append(names, d.Node(id).Name.String()) })
	require.Equal(t, []string{"b"}, names)
}

func TestAttributesRoundTrip(t *testing.T) {
	d := NewDocument(false)
	root := d.Root()
	el := d.AllocateNode(KindElement, []byte("el"), nil)
	d.AppendChild(root, el)
	at := d.AllocateAttribute([]byte("id"), []byte("42"))
	d.AppendAttribute(el, at)

	var got []string
	d.Attributes(el, func(id NodeId) {
		a := d.Attr(id)
		got = append(got, a.Name.String()+"="+a.Value.String())
	})
	require.Equal(t, []string{"id=42"}, got)
}

func TestCloneNodeDeepCopies(t *testing.T) {
	src := NewDocument(false)
	root := src.Root()
	el := src.AllocateNode(KindElement, []byte("el"), nil)
	src.AppendChild(root, el)
	child := src.AllocateNode(KindData, nil, []byte("text"))
	src.AppendChild(el, child)

	dst := NewDocument(false)
	clone := src.CloneNode(dst, el)
	dst.AppendChild(dst.Root(), clone)

	require.Equal(t, "el", dst.Node(clone).Name.String())
	var childText string
	dst.Children(clone, "", func(id NodeId) { childText = dst.Node(id).Data.String() })
	require.Equal(t, "text", childText)
}

func TestNonDestructiveModeReferencesSourceBytes(t *testing.T) {
	src := []byte("hello")
	d := NewDocument(true)
	n := d.AllocateNode(KindData, nil, src)
	require.Equal(t, "hello", d.Node(n).Data.String())
}
