package text

import "github.com/AnyUserName/imgsplice/internal/layer"

// LayerOp moves an element within the z order.
type LayerOp = layer.Op

const (
	MoveUp       = layer.MoveUp
	MoveDown     = layer.MoveDown
	MoveToTop    = layer.MoveToTop
	MoveToBottom = layer.MoveToBottom
)

// LayerID implements layer.Item.
func (e Element) LayerID() string { return e.ID }

// Z implements layer.Item.
func (e Element) Z() int { return e.ZIndex }

// WithZ implements layer.Item.
func (e Element) WithZ(z int) Element {
	e.ZIndex = z
	return e
}

// SortByZ returns a copy of elems in ascending ZIndex. Equal indices keep
// their input order.
func SortByZ(elems []Element) []Element {
	return layer.Sort(elems)
}

// NextZIndex returns a z index above every element in elems.
func NextZIndex(elems []Element) int {
	return layer.Next(layer.Zs(elems)...)
}

// Reorder applies op to the element with the given id and renumbers the z
// indices 1..n in the resulting order. It reports false when id is unknown
// or op is not a LayerOp; elems is never modified.
func Reorder(elems []Element, id string, op LayerOp) ([]Element, bool) {
	return layer.Reorder(elems, id, op)
}
