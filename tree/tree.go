package tree

import (
	"fmt"
	"strings"

	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/feature"
)

// Tree represents a decision tree. It is composed of its root node,
// the ordered attributes its nodes may split on and the label feature
// it predicts.
//
// A tree may only be mutated through its slots, and must not be while
// it is being used to classify samples. Otherwise it is safe for
// concurrent use.
type Tree struct {
	root       Node
	attributes []*feature.Feature
	label      *feature.Feature
}

/*
New takes a root node, the ordered attributes and the label feature and
returns a tree made of them. An error wrapping ErrMalformedTree is returned
if the root is reached by an edge, an internal node splits on an attribute
that is not in the given slice or that an ancestor already splits on, or a
node refers to a label outside the label domain.
*/
func New(root Node, attributes []*feature.Feature, label *feature.Feature) (*Tree, error) {
	t := &Tree{root, attributes, label}
	if root == nil {
		return nil, fmt.Errorf("%w: no root node", ErrMalformedTree)
	}
	if _, ok := root.Edge().Value(); ok {
		return nil, fmt.Errorf("%w: root node reached by edge %s", ErrMalformedTree, root.Edge())
	}
	known := make(map[string]*feature.Feature, len(attributes))
	for _, a := range attributes {
		known[a.Name()] = a
	}
	err := t.validate(root, known, make(map[string]bool))
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Tree) validate(n Node, known map[string]*feature.Feature, used map[string]bool) error {
	if t.label.IndexOf(n.Majority()) < 0 {
		return fmt.Errorf("%w: label %q outside of label %s domain", ErrMalformedTree, n.Majority(), t.label.Name())
	}
	in, ok := n.(*Internal)
	if !ok {
		return nil
	}
	name := in.attribute.Name()
	if _, ok := known[name]; !ok {
		return fmt.Errorf("%w: node splits on unknown attribute %s", ErrMalformedTree, name)
	}
	if used[name] {
		return fmt.Errorf("%w: attribute %s reused on a path", ErrMalformedTree, name)
	}
	used[name] = true
	defer delete(used, name)
	for _, c := range in.children {
		err := t.validate(c, known, used)
		if err != nil {
			return err
		}
	}
	return nil
}

// Root returns the root node of the tree.
func (t *Tree) Root() Node {
	return t.root
}

// RootSlot returns the slot holding the root node of the tree.
func (t *Tree) RootSlot() Slot {
	return Slot{&t.root}
}

// Attributes returns the attributes nodes of the tree may split on.
func (t *Tree) Attributes() []*feature.Feature {
	return t.attributes
}

// Label returns the label feature the tree predicts.
func (t *Tree) Label() *feature.Feature {
	return t.label
}

// Classify takes a sample and returns the label the tree predicts for it
// and an error if the prediction could not be made.
func (t *Tree) Classify(s feature.Sample) (string, error) {
	if t == nil {
		return "", fmt.Errorf("nil tree cannot classify samples")
	}
	n := t.root
	for {
		switch cn := n.(type) {
		case *Leaf:
			return cn.label, nil
		case *Internal:
			v, err := s.ValueFor(cn.attribute)
			if err != nil {
				return "", fmt.Errorf("classifying sample: %w", err)
			}
			child, ok := cn.Child(v)
			if !ok {
				return "", fmt.Errorf("classifying sample: %w: %q for attribute %s", ErrValueOutsideDomain, v, cn.attribute.Name())
			}
			n = child
		default:
			return "", fmt.Errorf("classifying sample: %w: unknown node type %T", ErrMalformedTree, n)
		}
	}
}

/*
Accuracy takes a dataset and returns the fraction of its instances for which
the tree predicts their label. It returns ErrEmptyExamples if the dataset has
no instances, and the classification error of the first instance that cannot
be classified, if any.
*/
func (t *Tree) Accuracy(s *dataset.Dataset) (float64, error) {
	if s.Count() == 0 {
		return 0.0, ErrEmptyExamples
	}
	var correct int
	for i, inst := range s.Instances() {
		label, err := t.Classify(inst)
		if err != nil {
			return 0.0, fmt.Errorf("instance %d: %w", i, err)
		}
		if label == inst.Label() {
			correct++
		}
	}
	return float64(correct) / float64(s.Count()), nil
}

// Traverse takes a bottomup boolean and an error-returning function that
// takes a node and its depth, and goes through the tree running the
// function with every traversed node.
// Traverse will call the function with a parent node before calling it
// for its children if bottomup is false, and after its children if
// bottomup is true. Children are traversed in domain order. If the call
// to the function returns an error, the traversing is aborted and the
// error is returned.
func (t *Tree) Traverse(bottomup bool, f func(n Node, depth int) error) error {
	return traverse(t.root, 0, bottomup, f)
}

func traverse(n Node, depth int, bottomup bool, f func(Node, int) error) error {
	if !bottomup {
		err := f(n, depth)
		if err != nil {
			return err
		}
	}
	if in, ok := n.(*Internal); ok {
		for _, c := range in.children {
			err := traverse(c, depth+1, bottomup, f)
			if err != nil {
				return err
			}
		}
	}
	if bottomup {
		return f(n, depth)
	}
	return nil
}

// Size returns the number of nodes and the number of leaves in the tree.
func (t *Tree) Size() (nodes, leaves int) {
	t.Traverse(false, func(n Node, _ int) error {
		nodes++
		if n.IsLeaf() {
			leaves++
		}
		return nil
	})
	return
}

/*
String renders the tree with a line per node, indented four spaces per
level. Each line starts with the value on the edge reaching the node, ROOT
for the root, followed by " {Attribute?}" for internal nodes or " (label)"
for leaves.
*/
func (t *Tree) String() string {
	var b strings.Builder
	t.Traverse(false, func(n Node, depth int) error {
		b.WriteString(strings.Repeat("    ", depth))
		b.WriteString(n.Edge().String())
		switch cn := n.(type) {
		case *Leaf:
			fmt.Fprintf(&b, " (%s)\n", cn.label)
		case *Internal:
			fmt.Fprintf(&b, " {%s?}\n", cn.attribute.Name())
		}
		return nil
	})
	return b.String()
}
