package donut

// Event identifies a pointer event a listener can be attached to.
type Event string

const (
	PointerEnter Event = "pointerenter"
	PointerLeave Event = "pointerleave"
)

type Listener func()

// Node is an element of a drawing surface. Appending methods return the newly
// created child.
type Node interface {
	Group(class string) Node
	Circle(radius float64, fill string) Node
	Path(sector Sector, fill string) Node
	// Text appends a line of text anchored at its middle, dy pixels below
	// the origin of the node.
	Text(content, class string, dy float64) Node

	// Reshape replaces the sector and fill of a path node.
	Reshape(sector Sector, fill string)
	Translate(x, y float64)
	SetID(id string)

	On(Event, Listener)
	Off(Event)

	// Remove detaches the node and its subtree from its parent.
	Remove()
}

// Surface is what a chart draws on.
type Surface interface {
	// Canvas discards everything previously drawn and returns a new root of
	// the given dimension.
	Canvas(width, height float64) Node
}
