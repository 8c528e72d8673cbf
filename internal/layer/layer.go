// Package layer orders overlay elements by z index.
//
// Texts and icons share one z space: NextZ over every overlay gives a new
// element an index above all of them, and the renderer draws the merged
// list in ascending z.
package layer

import "sort"

// Item is an element with an ID and a z index. WithZ returns a copy with
// the index replaced.
type Item[T any] interface {
	LayerID() string
	Z() int
	WithZ(z int) T
}

// Op moves an element within the z order.
type Op string

const (
	MoveUp       Op = "up"
	MoveDown     Op = "down"
	MoveToTop    Op = "top"
	MoveToBottom Op = "bottom"
)

// Sort returns a copy of items in ascending z. Equal indices keep their
// input order.
func Sort[T Item[T]](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Z() < out[j].Z() })
	return out
}

// Next returns a z index above every item in every group.
func Next(zs ...int) int {
	next := 1
	for _, z := range zs {
		if z >= next {
			next = z + 1
		}
	}
	return next
}

// Zs collects the z indices of items, for Next.
func Zs[T Item[T]](items []T) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.Z()
	}
	return out
}

// Reorder applies op to the item with the given id and renumbers the z
// indices 1..n in the resulting order. It reports false when id is unknown
// or op is not an Op; items is never modified.
func Reorder[T Item[T]](items []T, id string, op Op) ([]T, bool) {
	out := Sort(items)
	idx := -1
	for i, it := range out {
		if it.LayerID() == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}

	switch op {
	case MoveUp:
		if idx < len(out)-1 {
			out[idx], out[idx+1] = out[idx+1], out[idx]
		}
	case MoveDown:
		if idx > 0 {
			out[idx], out[idx-1] = out[idx-1], out[idx]
		}
	case MoveToTop:
		it := out[idx]
		out = append(out[:idx], out[idx+1:]...)
		out = append(out, it)
	case MoveToBottom:
		it := out[idx]
		copy(out[1:idx+1], out[:idx])
		out[0] = it
	default:
		return nil, false
	}

	for i := range out {
		out[i] = out[i].WithZ(i + 1)
	}
	return out, true
}
