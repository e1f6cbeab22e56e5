/*
Package json encodes trees as JSON documents and decodes them back.

A tree is serialized as a JSON object with the following fields:
  - "attributes": an array with the attributes nodes may split on, each an
    object with its "name" and its ordered domain as "values"
  - "label": the label feature as an object with the same fields
  - "root": the root node.

Every node is an object with the "value" of the edge reaching it (absent on
the root) and the "majority" label of the training instances that reached
it. Leaves add the "label" they predict, internal nodes add the name of the
"attribute" they split on and their "children" in domain order.
*/
package json

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pbanos/arbor/feature"
	featurejson "github.com/pbanos/arbor/feature/json"
	"github.com/pbanos/arbor/tree"
)

type jsonTree struct {
	Attributes []*featurejson.Feature `json:"attributes"`
	Label      *featurejson.Feature   `json:"label"`
	Root       *jsonNode              `json:"root"`
}

type jsonNode struct {
	Value     *string     `json:"value,omitempty"`
	Majority  string      `json:"majority"`
	Label     *string     `json:"label,omitempty"`
	Attribute string      `json:"attribute,omitempty"`
	Children  []*jsonNode `json:"children,omitempty"`
}

/*
Marshal takes a tree and returns its JSON encoding or an error.
*/
func Marshal(t *tree.Tree) ([]byte, error) {
	jt := &jsonTree{
		Attributes: make([]*featurejson.Feature, 0, len(t.Attributes())),
		Label:      featurejson.NewFeature(t.Label()),
		Root:       encodeNode(t.Root()),
	}
	for _, a := range t.Attributes() {
		jt.Attributes = append(jt.Attributes, featurejson.NewFeature(a))
	}
	return json.Marshal(jt)
}

/*
Unmarshal takes a JSON encoding of a tree and returns the tree or an error.
Errors on the shape of the tree wrap tree.ErrMalformedTree.
*/
func Unmarshal(data []byte) (*tree.Tree, error) {
	jt := &jsonTree{}
	err := json.Unmarshal(data, jt)
	if err != nil {
		return nil, err
	}
	return decodeTree(jt)
}

/*
WriteJSONTree takes a tree and an io.Writer and serializes the given tree
as JSON onto the io.Writer. An error is returned if the tree cannot be
serialized or written onto the io.Writer.
*/
func WriteJSONTree(t *tree.Tree, w io.Writer) error {
	b, err := Marshal(t)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

/*
ReadJSONTree takes an io.Reader and returns the tree decoded from its JSON
content. An error is returned if the JSON cannot be read from the io.Reader
or does not describe a well-formed tree.
*/
func ReadJSONTree(r io.Reader) (*tree.Tree, error) {
	jt := &jsonTree{}
	err := json.NewDecoder(r).Decode(jt)
	if err != nil {
		return nil, err
	}
	return decodeTree(jt)
}

func encodeNode(n tree.Node) *jsonNode {
	jn := &jsonNode{Majority: n.Majority()}
	if v, ok := n.Edge().Value(); ok {
		jn.Value = &v
	}
	switch n := n.(type) {
	case *tree.Leaf:
		label := n.Label()
		jn.Label = &label
	case *tree.Internal:
		jn.Attribute = n.Attribute().Name()
		for _, c := range n.Children() {
			jn.Children = append(jn.Children, encodeNode(c))
		}
	}
	return jn
}

func decodeTree(jt *jsonTree) (*tree.Tree, error) {
	if jt.Label == nil {
		return nil, fmt.Errorf("%w: no label feature defined", tree.ErrMalformedTree)
	}
	if jt.Root == nil {
		return nil, fmt.Errorf("%w: no root node", tree.ErrMalformedTree)
	}
	attributes := make([]*feature.Feature, 0, len(jt.Attributes))
	byName := make(map[string]*feature.Feature, len(jt.Attributes))
	for _, ja := range jt.Attributes {
		if ja == nil {
			return nil, fmt.Errorf("%w: null attribute", tree.ErrMalformedTree)
		}
		if _, ok := byName[ja.Name]; ok {
			return nil, fmt.Errorf("%w: attribute %s declared twice", tree.ErrMalformedTree, ja.Name)
		}
		a, err := ja.Feature()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", tree.ErrMalformedTree, err)
		}
		attributes = append(attributes, a)
		byName[a.Name()] = a
	}
	label, err := jt.Label.Feature()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", tree.ErrMalformedTree, err)
	}
	root, err := decodeNode(jt.Root, tree.RootEdge(), byName)
	if err != nil {
		return nil, err
	}
	return tree.New(root, attributes, label)
}

func decodeNode(jn *jsonNode, edge tree.Edge, attributes map[string]*feature.Feature) (tree.Node, error) {
	if v, ok := edge.Value(); ok {
		if jn.Value == nil || *jn.Value != v {
			return nil, fmt.Errorf("%w: expected node reached by %s", tree.ErrMalformedTree, v)
		}
	} else if jn.Value != nil {
		return nil, fmt.Errorf("%w: root node reached by %s", tree.ErrMalformedTree, *jn.Value)
	}
	if jn.Label != nil {
		if jn.Attribute != "" || len(jn.Children) > 0 {
			return nil, fmt.Errorf("%w: node on %s is both a leaf and an internal node", tree.ErrMalformedTree, edge)
		}
		if jn.Majority != "" && jn.Majority != *jn.Label {
			return nil, fmt.Errorf("%w: leaf on %s predicts %s but its majority is %s", tree.ErrMalformedTree, edge, *jn.Label, jn.Majority)
		}
		return tree.NewLeaf(edge, *jn.Label), nil
	}
	a, ok := attributes[jn.Attribute]
	if !ok {
		return nil, fmt.Errorf("%w: node on %s splits on unknown attribute %q", tree.ErrMalformedTree, edge, jn.Attribute)
	}
	values := a.AvailableValues()
	if len(jn.Children) != len(values) {
		return nil, fmt.Errorf("%w: node on %s has %d children for the %d values of %s", tree.ErrMalformedTree, edge, len(jn.Children), len(values), a.Name())
	}
	children := make([]tree.Node, 0, len(values))
	for i, jc := range jn.Children {
		if jc == nil {
			return nil, fmt.Errorf("%w: null child of node on %s", tree.ErrMalformedTree, edge)
		}
		c, err := decodeNode(jc, tree.EdgeFor(values[i]), attributes)
		if err != nil {
			return nil, err
		}
		children = append(children, c)
	}
	return tree.NewInternal(edge, a, jn.Majority, children)
}
