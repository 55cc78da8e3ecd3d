// Package arena provides a bump allocator and byte-slice interning,
// grounded on the exiCPP original's StrRef.hpp / SmallStr.hpp non-owning
// string-view types: rather than a pointer-linked DOM where every node
// and string is independently heap-allocated, nodes and interned bytes
// live in large slabs and are addressed by stable index, so the whole
// document can be released (or reset and reused) in one shot.
package arena

import "github.com/dkowalski/exicore/utils"

const defaultSlabSize = 64 * 1024

// Arena is a bump allocator over a list of byte slabs. Allocate never
// moves previously returned bytes, so slices handed out remain valid
// until Reset.
type Arena struct {
	slabSize int
	slabs    [][]byte
	cur      []byte
}

// New creates an Arena with the default 64 KiB slab size.
func New() *Arena {
	return NewWithSlabSize(defaultSlabSize)
}

// NewWithSlabSize creates an Arena whose slabs are slabSize bytes.
func NewWithSlabSize(slabSize int) *Arena {
	if slabSize <= 0 {
		slabSize = defaultSlabSize
	}
	a := &Arena{slabSize: slabSize}
	a.newSlab(slabSize)
	return a
}

func (a *Arena) newSlab(size int) {
	slab := make([]byte, 0, size)
	a.slabs = append(a.slabs, slab)
	a.cur = a.slabs[len(a.slabs)-1]
}

// Allocate returns n zeroed bytes with the requested alignment. Pointers
// into the returned slice stay valid until Reset.
func (a *Arena) Allocate(n int, align int) []byte {
	if align < 1 {
		align = 1
	}
	pad := alignPad(len(a.cur), align)
	needed := pad + n
	if cap(a.cur)-len(a.cur) < needed {
		size := utils.Max(a.slabSize, n+align)
		a.newSlab(size)
		pad = alignPad(len(a.cur), align)
	}
	start := len(a.cur) + pad
	end := start + n
	a.cur = a.cur[:end]
	slabIdx := len(a.slabs) - 1
	a.slabs[slabIdx] = a.cur
	out := a.cur[start:end]
	clear(out) // a slab reused after Reset still holds earlier bytes
	return out
}

func alignPad(offset, align int) int {
	rem := offset % align
	if rem == 0 {
		return 0
	}
	return align - rem
}

// Reset releases all allocations, keeping the first slab's backing
// array for reuse. Identical to the state of a newly constructed Arena
// except the first slab's capacity is preserved.
func (a *Arena) Reset() {
	first := a.slabs[0][:0]
	a.slabs = a.slabs[:1]
	a.slabs[0] = first
	a.cur = first
}

// Bytes returns the total number of bytes currently allocated across
// all slabs.
func (a *Arena) Bytes() int {
	total := 0
	for _, s := range a.slabs {
		total += len(s)
	}
	return total
}
