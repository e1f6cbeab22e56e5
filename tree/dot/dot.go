/*
Package dot renders trees in the Graphviz DOT language.

Internal nodes are boxes labeled with the attribute they split on followed
by a question mark, leaves are ellipses labeled with the label they
predict, and every edge is labeled with the attribute value it stands for.
Nodes are named n0, n1, ... in pre-order.
*/
package dot

import (
	"fmt"
	"strconv"

	"github.com/awalterschulze/gographviz"
	"github.com/pbanos/arbor/tree"
)

const graphName = "tree"

// Render takes a tree and returns its DOT representation or an error.
func Render(t *tree.Tree) (string, error) {
	g, err := Graph(t)
	if err != nil {
		return "", err
	}
	return g.String(), nil
}

// Graph takes a tree and returns it as a directed gographviz graph.
func Graph(t *tree.Tree) (*gographviz.Graph, error) {
	g := gographviz.NewGraph()
	err := g.SetName(graphName)
	if err != nil {
		return nil, err
	}
	err = g.SetDir(true)
	if err != nil {
		return nil, err
	}
	r := &renderer{g: g}
	_, err = r.add(t.Root())
	if err != nil {
		return nil, err
	}
	return g, nil
}

type renderer struct {
	g    *gographviz.Graph
	next int
}

func (r *renderer) add(n tree.Node) (string, error) {
	id := fmt.Sprintf("n%d", r.next)
	r.next++
	attrs := make(map[string]string)
	switch n := n.(type) {
	case *tree.Leaf:
		attrs["shape"] = "ellipse"
		attrs["label"] = strconv.Quote(n.Label())
	case *tree.Internal:
		attrs["shape"] = "box"
		attrs["label"] = strconv.Quote(n.Attribute().Name() + "?")
	default:
		return "", fmt.Errorf("%w: unknown node type %T", tree.ErrMalformedTree, n)
	}
	err := r.g.AddNode(graphName, id, attrs)
	if err != nil {
		return "", fmt.Errorf("adding node %s: %v", id, err)
	}
	in, ok := n.(*tree.Internal)
	if !ok {
		return id, nil
	}
	for _, c := range in.Children() {
		cid, err := r.add(c)
		if err != nil {
			return "", err
		}
		v, _ := c.Edge().Value()
		err = r.g.AddEdge(id, cid, true, map[string]string{"label": strconv.Quote(v)})
		if err != nil {
			return "", fmt.Errorf("adding edge %s -> %s: %v", id, cid, err)
		}
	}
	return id, nil
}
