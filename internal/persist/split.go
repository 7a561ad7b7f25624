package persist

import (
	"fmt"

	"github.com/relicdev/relic/internal/codec"
	"github.com/relicdev/relic/internal/histfile"
)

// Layout is the split direction of a window layout node.
type Layout uint32

const (
	LayoutHorizontal Layout = iota
	LayoutVertical
)

func (l Layout) String() string {
	switch l {
	case LayoutHorizontal:
		return "horizontal"
	case LayoutVertical:
		return "vertical"
	default:
		return fmt.Sprintf("Layout(%d)", uint32(l))
	}
}

// SplitTree is a window layout snapshot: either a *SplitLeaf or a
// *SplitNode. It is a strict tree with owned children.
type SplitTree interface {
	isSplitTree()
}

// SplitLeaf is a single pane. Data is nil for a pane with no document.
type SplitLeaf struct {
	Data *SplitLeafData
}

func (*SplitLeaf) isSplitTree() {}

// SplitLeafData describes the document shown in a pane and whether the
// pane held focus when the layout was saved.
type SplitLeafData struct {
	Path         string
	ViewPosition ViewPosition
	Selection    Selection
	Focus        bool
}

// SplitNode is an inner node splitting its children horizontally or
// vertically.
type SplitNode struct {
	Layout   Layout
	Children []SplitTree
}

func (*SplitNode) isSplitTree() {}

// SplitEntry is a named layout snapshot. Multiple snapshots with the same
// name may accumulate in the file between trims; trimming keeps the newest
// per name.
type SplitEntry struct {
	Name string
	Tree SplitTree
}

var splitCodec = histfile.Codec[SplitEntry]{
	Append: appendSplitEntry,
	Decode: decodeSplitEntry,
}

// Tree variant tags, in declaration order.
const (
	splitTagLeaf uint32 = iota
	splitTagNode
)

func appendSplitEntry(dst []byte, e SplitEntry) []byte {
	dst = codec.AppendString(dst, e.Name)
	return appendSplitTree(dst, e.Tree)
}

func appendSplitTree(dst []byte, t SplitTree) []byte {
	switch n := t.(type) {
	case *SplitLeaf:
		dst = codec.AppendUint32(dst, splitTagLeaf)
		dst = codec.AppendBool(dst, n.Data != nil)
		if n.Data != nil {
			dst = appendSplitLeafData(dst, n.Data)
		}
		return dst
	case *SplitNode:
		dst = codec.AppendUint32(dst, splitTagNode)
		dst = codec.AppendUint32(dst, uint32(n.Layout))
		dst = codec.AppendUint64(dst, uint64(len(n.Children)))
		for _, child := range n.Children {
			dst = appendSplitTree(dst, child)
		}
		return dst
	default:
		// A nil tree encodes as an empty leaf so a zero-value entry still
		// round-trips.
		dst = codec.AppendUint32(dst, splitTagLeaf)
		return codec.AppendBool(dst, false)
	}
}

func appendSplitLeafData(dst []byte, d *SplitLeafData) []byte {
	dst = codec.AppendString(dst, d.Path)
	dst = appendViewPosition(dst, d.ViewPosition)
	dst = appendSelection(dst, d.Selection)
	return codec.AppendBool(dst, d.Focus)
}

func decodeSplitEntry(r *codec.Reader) (SplitEntry, error) {
	var e SplitEntry
	name, err := r.String()
	if err != nil {
		return e, err
	}
	tree, err := decodeSplitTree(r)
	if err != nil {
		return e, err
	}
	e.Name = name
	e.Tree = tree
	return e, nil
}

func decodeSplitTree(r *codec.Reader) (SplitTree, error) {
	tag, err := r.Uint32()
	if err != nil {
		return nil, err
	}
	switch tag {
	case splitTagLeaf:
		present, err := r.Bool()
		if err != nil {
			return nil, err
		}
		leaf := &SplitLeaf{}
		if present {
			data, err := decodeSplitLeafData(r)
			if err != nil {
				return nil, err
			}
			leaf.Data = data
		}
		return leaf, nil
	case splitTagNode:
		layout, err := r.Uint32()
		if err != nil {
			return nil, err
		}
		if layout > uint32(LayoutVertical) {
			return nil, fmt.Errorf("persist: invalid layout tag %d", layout)
		}
		count, err := r.Uint64()
		if err != nil {
			return nil, err
		}
		// Every subtree takes at least 5 bytes (tag plus leaf option).
		if count > uint64(r.Len())/5 {
			return nil, codec.ErrShortBuffer
		}
		node := &SplitNode{Layout: Layout(layout), Children: make([]SplitTree, count)}
		for i := range node.Children {
			child, err := decodeSplitTree(r)
			if err != nil {
				return nil, err
			}
			node.Children[i] = child
		}
		return node, nil
	default:
		return nil, fmt.Errorf("persist: invalid split tree tag %d", tag)
	}
}

func decodeSplitLeafData(r *codec.Reader) (*SplitLeafData, error) {
	path, err := r.String()
	if err != nil {
		return nil, err
	}
	view, err := decodeViewPosition(r)
	if err != nil {
		return nil, err
	}
	sel, err := decodeSelection(r)
	if err != nil {
		return nil, err
	}
	focus, err := r.Bool()
	if err != nil {
		return nil, err
	}
	return &SplitLeafData{Path: path, ViewPosition: view, Selection: sel, Focus: focus}, nil
}
