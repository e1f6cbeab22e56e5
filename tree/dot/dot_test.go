package dot

import (
	"testing"

	"github.com/awalterschulze/gographviz"
	"github.com/pbanos/arbor/feature"
	"github.com/pbanos/arbor/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weatherTree(t *testing.T) *tree.Tree {
	weather := feature.New("Weather", []string{"sunny", "rainy"})
	wind := feature.New("Wind", []string{"high", "low"})
	decision := feature.New("Decision", []string{"play", "stay"})
	windNode, err := tree.NewInternal(tree.EdgeFor("sunny"), wind, "play", []tree.Node{
		tree.NewLeaf(tree.EdgeFor("high"), "stay"),
		tree.NewLeaf(tree.EdgeFor("low"), "play"),
	})
	require.NoError(t, err)
	root, err := tree.NewInternal(tree.RootEdge(), weather, "play", []tree.Node{
		windNode,
		tree.NewLeaf(tree.EdgeFor("rainy"), "play"),
	})
	require.NoError(t, err)
	tr, err := tree.New(root, []*feature.Feature{weather, wind}, decision)
	require.NoError(t, err)
	return tr
}

func TestRender(t *testing.T) {
	out, err := Render(weatherTree(t))
	require.NoError(t, err)

	ast, err := gographviz.ParseString(out)
	require.NoError(t, err)
	g := gographviz.NewGraph()
	require.NoError(t, gographviz.Analyse(ast, g))

	assert.True(t, g.Directed)
	expected := map[string][2]string{
		"n0": {`"Weather?"`, "box"},
		"n1": {`"Wind?"`, "box"},
		"n2": {`"stay"`, "ellipse"},
		"n3": {`"play"`, "ellipse"},
		"n4": {`"play"`, "ellipse"},
	}
	require.Len(t, g.Nodes.Nodes, len(expected))
	for id, e := range expected {
		n, ok := g.Nodes.Lookup[id]
		require.True(t, ok, "missing node %s", id)
		assert.Equal(t, e[0], n.Attrs[gographviz.Label], id)
		assert.Equal(t, e[1], n.Attrs[gographviz.Shape], id)
	}

	edges := map[[2]string]string{
		{"n0", "n1"}: `"sunny"`,
		{"n1", "n2"}: `"high"`,
		{"n1", "n3"}: `"low"`,
		{"n0", "n4"}: `"rainy"`,
	}
	require.Len(t, g.Edges.Edges, len(edges))
	for _, e := range g.Edges.Edges {
		label, ok := edges[[2]string{e.Src, e.Dst}]
		require.True(t, ok, "unexpected edge %s -> %s", e.Src, e.Dst)
		assert.Equal(t, label, e.Attrs[gographviz.Label])
	}
}

func TestRenderLeafRoot(t *testing.T) {
	decision := feature.New("Decision", []string{"play", "stay"})
	tr, err := tree.New(tree.NewLeaf(tree.RootEdge(), "stay"), nil, decision)
	require.NoError(t, err)
	g, err := Graph(tr)
	require.NoError(t, err)
	require.Len(t, g.Nodes.Nodes, 1)
	assert.Equal(t, "n0", g.Nodes.Nodes[0].Name)
	assert.Empty(t, g.Edges.Edges)
}
