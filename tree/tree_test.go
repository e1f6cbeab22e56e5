package tree

import (
	"errors"
	"testing"

	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	weather  = feature.New("Weather", []string{"sunny", "rainy"})
	wind     = feature.New("Wind", []string{"high", "low"})
	decision = feature.New("Decision", []string{"play", "stay"})
	attrs    = []*feature.Feature{weather, wind}
)

// weatherTree splits on Weather and then on Wind for sunny days.
func weatherTree(t *testing.T) *Tree {
	windNode, err := NewInternal(EdgeFor("sunny"), wind, "play", []Node{
		NewLeaf(EdgeFor("high"), "stay"),
		NewLeaf(EdgeFor("low"), "play"),
	})
	require.NoError(t, err)
	root, err := NewInternal(RootEdge(), weather, "play", []Node{
		windNode,
		NewLeaf(EdgeFor("rainy"), "play"),
	})
	require.NoError(t, err)
	tr, err := New(root, attrs, decision)
	require.NoError(t, err)
	return tr
}

func weatherDataset(t *testing.T, rows ...[]string) *dataset.Dataset {
	instances := make([]*dataset.Instance, 0, len(rows))
	for _, r := range rows {
		instances = append(instances, dataset.NewInstance(attrs, r[:2], r[2]))
	}
	d, err := dataset.New(attrs, decision, instances)
	require.NoError(t, err)
	return d
}

func TestClassify(t *testing.T) {
	tr := weatherTree(t)
	testCases := []struct {
		values   map[string]string
		expected string
	}{
		{map[string]string{"Weather": "sunny", "Wind": "high"}, "stay"},
		{map[string]string{"Weather": "sunny", "Wind": "low"}, "play"},
		{map[string]string{"Weather": "rainy", "Wind": "high"}, "play"},
		{map[string]string{"Weather": "rainy"}, "play"},
	}
	for _, tc := range testCases {
		label, err := tr.Classify(dataset.NewSample(tc.values))
		require.NoError(t, err)
		assert.Equal(t, tc.expected, label, "%v", tc.values)
	}
}

func TestClassifyErrors(t *testing.T) {
	tr := weatherTree(t)

	_, err := tr.Classify(dataset.NewSample(map[string]string{"Weather": "snowy"}))
	assert.True(t, errors.Is(err, ErrValueOutsideDomain), "got %v", err)

	_, err = tr.Classify(dataset.NewSample(map[string]string{"Weather": "sunny"}))
	assert.True(t, errors.Is(err, dataset.ErrUnknownAttribute), "got %v", err)

	var nilTree *Tree
	_, err = nilTree.Classify(dataset.NewSample(nil))
	assert.Error(t, err)
}

func TestAccuracy(t *testing.T) {
	tr := weatherTree(t)
	d := weatherDataset(t,
		[]string{"sunny", "high", "stay"},
		[]string{"sunny", "low", "play"},
		[]string{"rainy", "low", "stay"},
		[]string{"rainy", "high", "play"},
	)
	acc, err := tr.Accuracy(d)
	require.NoError(t, err)
	assert.Equal(t, 0.75, acc)

	_, err = tr.Accuracy(weatherDataset(t))
	assert.Equal(t, ErrEmptyExamples, err)
}

func TestNewInternalRequiresFullDomain(t *testing.T) {
	_, err := NewInternal(RootEdge(), wind, "play", []Node{NewLeaf(EdgeFor("high"), "play")})
	assert.True(t, errors.Is(err, ErrMalformedTree))

	_, err = NewInternal(RootEdge(), wind, "play", []Node{
		NewLeaf(EdgeFor("low"), "play"),
		NewLeaf(EdgeFor("high"), "play"),
	})
	assert.True(t, errors.Is(err, ErrMalformedTree), "children must follow domain order")

	_, err = NewInternal(RootEdge(), wind, "play", []Node{NewLeaf(EdgeFor("high"), "play"), nil})
	assert.True(t, errors.Is(err, ErrMalformedTree))
}

func TestNewValidatesShape(t *testing.T) {
	_, err := New(nil, attrs, decision)
	assert.True(t, errors.Is(err, ErrMalformedTree))

	_, err = New(NewLeaf(EdgeFor("sunny"), "play"), attrs, decision)
	assert.True(t, errors.Is(err, ErrMalformedTree), "root must not be reached by an edge")

	_, err = New(NewLeaf(RootEdge(), "sleep"), attrs, decision)
	assert.True(t, errors.Is(err, ErrMalformedTree), "leaf label must be declared")

	inner, err := NewInternal(EdgeFor("high"), wind, "play", []Node{
		NewLeaf(EdgeFor("high"), "play"),
		NewLeaf(EdgeFor("low"), "play"),
	})
	require.NoError(t, err)
	root, err := NewInternal(RootEdge(), wind, "play", []Node{inner, NewLeaf(EdgeFor("low"), "play")})
	require.NoError(t, err)
	_, err = New(root, attrs, decision)
	assert.True(t, errors.Is(err, ErrMalformedTree), "attribute reused on a path")

	_, err = New(root, []*feature.Feature{weather}, decision)
	assert.True(t, errors.Is(err, ErrMalformedTree), "unknown attribute")
}

func TestSlotReplace(t *testing.T) {
	tr := weatherTree(t)
	root := tr.Root().(*Internal)
	slot := root.ChildSlots()[0]

	_, err := slot.Replace(NewLeaf(EdgeFor("rainy"), "play"))
	assert.True(t, errors.Is(err, ErrMalformedTree))
	assert.False(t, slot.Node().IsLeaf())

	prev, err := slot.Replace(NewLeaf(EdgeFor("sunny"), "play"))
	require.NoError(t, err)
	assert.False(t, prev.IsLeaf())
	label, err := tr.Classify(dataset.NewSample(map[string]string{"Weather": "sunny", "Wind": "high"}))
	require.NoError(t, err)
	assert.Equal(t, "play", label)

	_, err = slot.Replace(prev)
	require.NoError(t, err)
	label, err = tr.Classify(dataset.NewSample(map[string]string{"Weather": "sunny", "Wind": "high"}))
	require.NoError(t, err)
	assert.Equal(t, "stay", label)

	_, err = tr.RootSlot().Replace(NewLeaf(RootEdge(), "stay"))
	require.NoError(t, err)
	assert.True(t, tr.Root().IsLeaf())
}

func TestTraverseOrder(t *testing.T) {
	tr := weatherTree(t)
	var topdown, bottomup []string
	tr.Traverse(false, func(n Node, _ int) error {
		topdown = append(topdown, n.Edge().String())
		return nil
	})
	tr.Traverse(true, func(n Node, _ int) error {
		bottomup = append(bottomup, n.Edge().String())
		return nil
	})
	assert.Equal(t, []string{"ROOT", "sunny", "high", "low", "rainy"}, topdown)
	assert.Equal(t, []string{"high", "low", "sunny", "rainy", "ROOT"}, bottomup)

	stop := errors.New("stop")
	var visited int
	err := tr.Traverse(false, func(Node, int) error {
		visited++
		return stop
	})
	assert.Equal(t, stop, err)
	assert.Equal(t, 1, visited)

	nodes, leaves := tr.Size()
	assert.Equal(t, 5, nodes)
	assert.Equal(t, 3, leaves)
}

func TestString(t *testing.T) {
	expected := "ROOT {Weather?}\n" +
		"    sunny {Wind?}\n" +
		"        high (stay)\n" +
		"        low (play)\n" +
		"    rainy (play)\n"
	assert.Equal(t, expected, weatherTree(t).String())
}

func TestNodeAccessors(t *testing.T) {
	tr := weatherTree(t)
	root := tr.Root().(*Internal)
	assert.Same(t, weather, root.Attribute())
	assert.Equal(t, "play", root.Majority())
	_, ok := root.Edge().Value()
	assert.False(t, ok)

	child, ok := root.Child("rainy")
	require.True(t, ok)
	leaf := child.(*Leaf)
	assert.Equal(t, "play", leaf.Label())
	v, ok := leaf.Edge().Value()
	assert.True(t, ok)
	assert.Equal(t, "rainy", v)

	_, ok = root.Child("snowy")
	assert.False(t, ok)
	assert.Len(t, root.Children(), 2)
}
