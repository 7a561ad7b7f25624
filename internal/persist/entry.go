package persist

import (
	"github.com/relicdev/relic/internal/codec"
	"github.com/relicdev/relic/internal/histfile"
)

// ViewPosition is the viewport a file was last displayed at.
type ViewPosition struct {
	Anchor           int
	HorizontalOffset int
	VerticalOffset   int
}

// Range is a single selection range, anchor to head, in character
// positions.
type Range struct {
	Anchor int
	Head   int
}

// Selection is one or more ranges with a primary index.
type Selection struct {
	Ranges       []Range
	PrimaryIndex int
}

// FileHistoryEntry records the last known viewport and selection for a
// visited file.
type FileHistoryEntry struct {
	Path         string
	ViewPosition ViewPosition
	Selection    Selection
}

// lineCodec encodes plain text lines for command and search history, and
// the individual clipboard register values.
var lineCodec = histfile.Codec[string]{
	Append: codec.AppendString,
	Decode: (*codec.Reader).String,
}

var fileCodec = histfile.Codec[FileHistoryEntry]{
	Append: appendFileHistoryEntry,
	Decode: decodeFileHistoryEntry,
}

func appendViewPosition(dst []byte, v ViewPosition) []byte {
	dst = codec.AppendUint64(dst, uint64(v.Anchor))
	dst = codec.AppendUint64(dst, uint64(v.HorizontalOffset))
	return codec.AppendUint64(dst, uint64(v.VerticalOffset))
}

func decodeViewPosition(r *codec.Reader) (ViewPosition, error) {
	var v ViewPosition
	anchor, err := r.Uint64()
	if err != nil {
		return v, err
	}
	horizontal, err := r.Uint64()
	if err != nil {
		return v, err
	}
	vertical, err := r.Uint64()
	if err != nil {
		return v, err
	}
	v.Anchor = int(anchor)
	v.HorizontalOffset = int(horizontal)
	v.VerticalOffset = int(vertical)
	return v, nil
}

func appendSelection(dst []byte, s Selection) []byte {
	dst = codec.AppendUint64(dst, uint64(len(s.Ranges)))
	for _, rg := range s.Ranges {
		dst = codec.AppendUint64(dst, uint64(rg.Anchor))
		dst = codec.AppendUint64(dst, uint64(rg.Head))
	}
	return codec.AppendUint64(dst, uint64(s.PrimaryIndex))
}

func decodeSelection(r *codec.Reader) (Selection, error) {
	var s Selection
	count, err := r.Uint64()
	if err != nil {
		return s, err
	}
	// Each range takes at least 16 bytes; reject counts the buffer cannot
	// hold before allocating.
	if count > uint64(r.Len())/16 {
		return s, codec.ErrShortBuffer
	}
	s.Ranges = make([]Range, count)
	for i := range s.Ranges {
		anchor, err := r.Uint64()
		if err != nil {
			return s, err
		}
		head, err := r.Uint64()
		if err != nil {
			return s, err
		}
		s.Ranges[i] = Range{Anchor: int(anchor), Head: int(head)}
	}
	primary, err := r.Uint64()
	if err != nil {
		return s, err
	}
	s.PrimaryIndex = int(primary)
	return s, nil
}

func appendFileHistoryEntry(dst []byte, e FileHistoryEntry) []byte {
	dst = codec.AppendString(dst, e.Path)
	dst = appendViewPosition(dst, e.ViewPosition)
	return appendSelection(dst, e.Selection)
}

func decodeFileHistoryEntry(r *codec.Reader) (FileHistoryEntry, error) {
	var e FileHistoryEntry
	path, err := r.String()
	if err != nil {
		return e, err
	}
	view, err := decodeViewPosition(r)
	if err != nil {
		return e, err
	}
	sel, err := decodeSelection(r)
	if err != nil {
		return e, err
	}
	e.Path = path
	e.ViewPosition = view
	e.Selection = sel
	return e, nil
}
