package tree

import (
	"fmt"

	"github.com/pbanos/arbor/feature"
)

/*
Edge is the attribute value on the edge that leads from a parent node to
one of its children. The root of a tree is reached by no edge.
*/
type Edge struct {
	value string
	ok    bool
}

// RootEdge returns the edge of a root node, which carries no value.
func RootEdge() Edge {
	return Edge{}
}

// EdgeFor returns an edge carrying the given attribute value.
func EdgeFor(value string) Edge {
	return Edge{value, true}
}

// Value returns the attribute value of the edge and true, or false for
// the edge of a root node.
func (e Edge) Value() (string, bool) {
	return e.value, e.ok
}

func (e Edge) String() string {
	if !e.ok {
		return "ROOT"
	}
	return e.value
}

/*
Node is a node of the tree: either a *Leaf or an *Internal node.

Every node knows the edge that reaches it from its parent and the
majority label among the training instances that reached it while the
tree was being grown.
*/
type Node interface {
	Edge() Edge
	Majority() string
	IsLeaf() bool
	node()
}

// Leaf is a terminal node that predicts a label.
type Leaf struct {
	edge  Edge
	label string
}

// Internal is a node that splits on an attribute, with one child per
// value of the attribute's domain, in domain order.
type Internal struct {
	edge      Edge
	attribute *feature.Feature
	majority  string
	children  []Node
}

// NewLeaf returns a leaf reached through the given edge that predicts the
// given label.
func NewLeaf(edge Edge, label string) *Leaf {
	return &Leaf{edge, label}
}

/*
NewInternal returns an internal node reached through the given edge that
splits on the given attribute. The children slice must hold exactly one
node per value of the attribute's domain, in domain order, each reached
through an edge carrying that value. Otherwise an error wrapping
ErrMalformedTree is returned.
*/
func NewInternal(edge Edge, attribute *feature.Feature, majority string, children []Node) (*Internal, error) {
	values := attribute.AvailableValues()
	if len(children) != len(values) {
		return nil, fmt.Errorf("%w: attribute %s has %d values but node has %d children", ErrMalformedTree, attribute.Name(), len(values), len(children))
	}
	cs := make([]Node, len(children))
	for i, c := range children {
		if c == nil {
			return nil, fmt.Errorf("%w: nil child for %s = %s", ErrMalformedTree, attribute.Name(), values[i])
		}
		v, ok := c.Edge().Value()
		if !ok || v != values[i] {
			return nil, fmt.Errorf("%w: child %d of %s is reached by %s instead of %s", ErrMalformedTree, i, attribute.Name(), c.Edge(), values[i])
		}
		cs[i] = c
	}
	return &Internal{edge, attribute, majority, cs}, nil
}

// Edge returns the edge that reaches the leaf.
func (l *Leaf) Edge() Edge { return l.edge }

// Label returns the label predicted by the leaf.
func (l *Leaf) Label() string { return l.label }

// Majority returns the label of the leaf.
func (l *Leaf) Majority() string { return l.label }

// IsLeaf returns true.
func (l *Leaf) IsLeaf() bool { return true }

func (l *Leaf) node() {}

// Edge returns the edge that reaches the node.
func (in *Internal) Edge() Edge { return in.edge }

// Attribute returns the attribute the node splits on.
func (in *Internal) Attribute() *feature.Feature { return in.attribute }

// Majority returns the majority label among the training instances that
// reached the node.
func (in *Internal) Majority() string { return in.majority }

// IsLeaf returns false.
func (in *Internal) IsLeaf() bool { return false }

func (in *Internal) node() {}

// Children returns a copy of the children of the node in domain order.
func (in *Internal) Children() []Node {
	cs := make([]Node, len(in.children))
	copy(cs, in.children)
	return cs
}

// Child returns the child reached through the given attribute value and
// true, or false if the value is outside the attribute's domain.
func (in *Internal) Child(value string) (Node, bool) {
	i := in.attribute.IndexOf(value)
	if i < 0 {
		return nil, false
	}
	return in.children[i], true
}

/*
Slot is a position in a tree that holds a node: the root of the tree or
one of the children of an internal node. Slots allow replacing a subtree
with another one reached through the same edge.
*/
type Slot struct {
	n *Node
}

// ChildSlots returns the slots holding the children of the node, in
// domain order.
func (in *Internal) ChildSlots() []Slot {
	slots := make([]Slot, len(in.children))
	for i := range in.children {
		slots[i] = Slot{&in.children[i]}
	}
	return slots
}

// Node returns the node currently held by the slot.
func (s Slot) Node() Node {
	return *s.n
}

/*
Replace puts the given node in the slot and returns the node it held
before. The new node must be reached through the same edge as the
previous one, otherwise the slot is left untouched and an error wrapping
ErrMalformedTree is returned.
*/
func (s Slot) Replace(n Node) (Node, error) {
	prev := *s.n
	if n == nil || n.Edge() != prev.Edge() {
		return nil, fmt.Errorf("%w: replacement node must be reached by %s", ErrMalformedTree, prev.Edge())
	}
	*s.n = n
	return prev, nil
}
