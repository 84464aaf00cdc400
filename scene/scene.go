package scene

import (
	"github.com/midbel/donut"
)

type Kind int

const (
	KindRoot Kind = iota
	KindGroup
	KindCircle
	KindPath
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "svg"
	case KindGroup:
		return "g"
	case KindCircle:
		return "circle"
	case KindPath:
		return "path"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Node is an element of a scene. It implements donut.Node.
type Node struct {
	Kind  Kind
	ID    string
	Class string

	Width  float64
	Height float64
	X      float64
	Y      float64

	Radius  float64
	Fill    string
	Sector  donut.Sector
	Content string
	Dy      float64

	parent    *Node
	children  []*Node
	listeners map[donut.Event]donut.Listener
}

func (n *Node) Group(class string) donut.Node {
	return n.append(&Node{
		Kind:  KindGroup,
		Class: class,
	})
}

func (n *Node) Circle(radius float64, fill string) donut.Node {
	return n.append(&Node{
		Kind:   KindCircle,
		Radius: radius,
		Fill:   fill,
	})
}

func (n *Node) Path(sector donut.Sector, fill string) donut.Node {
	return n.append(&Node{
		Kind:   KindPath,
		Sector: sector,
		Fill:   fill,
	})
}

func (n *Node) Text(content, class string, dy float64) donut.Node {
	return n.append(&Node{
		Kind:    KindText,
		Class:   class,
		Content: content,
		Dy:      dy,
	})
}

func (n *Node) Reshape(sector donut.Sector, fill string) {
	n.Sector = sector
	n.Fill = fill
}

func (n *Node) Translate(x, y float64) {
	n.X, n.Y = x, y
}

func (n *Node) SetID(id string) {
	n.ID = id
}

func (n *Node) On(ev donut.Event, fn donut.Listener) {
	if n.listeners == nil {
		n.listeners = make(map[donut.Event]donut.Listener)
	}
	n.listeners[ev] = fn
}

func (n *Node) Off(ev donut.Event) {
	delete(n.listeners, ev)
}

func (n *Node) Remove() {
	if n.parent == nil {
		return
	}
	p := n.parent
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = nil
}

func (n *Node) Parent() *Node {
	return n.parent
}

func (n *Node) Children() []*Node {
	return n.children
}

// Dispatch calls the listener registered for ev, if any.
func (n *Node) Dispatch(ev donut.Event) bool {
	fn, ok := n.listeners[ev]
	if ok && fn != nil {
		fn()
	}
	return ok
}

func (n *Node) Listens(ev donut.Event) bool {
	_, ok := n.listeners[ev]
	return ok
}

// Walk visits n and its descendants in document order until fn returns
// false.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// FindAll returns the descendants of n having the given class.
func (n *Node) FindAll(class string) []*Node {
	var list []*Node
	n.Walk(func(c *Node) bool {
		if c != n && c.Class == class {
			list = append(list, c)
		}
		return true
	})
	return list
}

// Find returns the first descendant of n having the given class.
func (n *Node) Find(class string) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if c != n && c.Class == class {
			found = c
		}
		return found == nil
	})
	return found
}

// Texts returns the content of the text nodes below n.
func (n *Node) Texts() []string {
	var list []string
	n.Walk(func(c *Node) bool {
		if c.Kind == KindText {
			list = append(list, c.Content)
		}
		return true
	})
	return list
}

func (n *Node) append(c *Node) *Node {
	c.parent = n
	n.children = append(n.children, c)
	return c
}

// Scene is a retained drawing surface.
type Scene struct {
	root  *Node
	hover *Node
}

func New() *Scene {
	return &Scene{}
}

func (s *Scene) Canvas(width, height float64) donut.Node {
	s.root = &Node{
		Kind:   KindRoot,
		Width:  width,
		Height: height,
	}
	s.hover = nil
	return s.root
}

// Root returns the root of the scene or nil if nothing was drawn yet.
func (s *Scene) Root() *Node {
	return s.root
}

// Move moves the pointer at x, y in the coordinates of the root. The nodes
// listening for pointer events that the pointer leaves and enters are
// notified.
func (s *Scene) Move(x, y float64) {
	var target *Node
	if s.root != nil {
		target = s.hit(s.root, x, y)
	}
	if target == s.hover {
		return
	}
	if s.hover != nil && s.attached(s.hover) {
		s.hover.Dispatch(donut.PointerLeave)
	}
	s.hover = target
	if target != nil {
		target.Dispatch(donut.PointerEnter)
	}
}

// Leave moves the pointer out of the scene.
func (s *Scene) Leave() {
	if s.hover != nil && s.attached(s.hover) {
		s.hover.Dispatch(donut.PointerLeave)
	}
	s.hover = nil
}

// hit returns the closest listening ancestor of the topmost path under x, y.
func (s *Scene) hit(n *Node, x, y float64) *Node {
	x -= n.X
	y -= n.Y
	for i := len(n.children) - 1; i >= 0; i-- {
		c := n.children[i]
		if c.Kind == KindPath && c.Sector.Contains(x, y) {
			return listening(c)
		}
		if t := s.hit(c, x, y); t != nil {
			return t
		}
	}
	return nil
}

func (s *Scene) attached(n *Node) bool {
	for n.parent != nil {
		n = n.parent
	}
	return n == s.root
}

func listening(n *Node) *Node {
	for ; n != nil; n = n.parent {
		if n.Listens(donut.PointerEnter) || n.Listens(donut.PointerLeave) {
			return n
		}
	}
	return nil
}
