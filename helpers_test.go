package arbor

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/feature"
	"github.com/pbanos/arbor/tree"
	"github.com/stretchr/testify/require"
)

// newDataset builds a dataset from rows holding one value per attribute
// followed by the label.
func newDataset(t *testing.T, attributes []*feature.Feature, label *feature.Feature, rows ...[]string) *dataset.Dataset {
	t.Helper()
	instances := make([]*dataset.Instance, 0, len(rows))
	for _, r := range rows {
		instances = append(instances, dataset.NewInstance(attributes, r[:len(r)-1], r[len(r)-1]))
	}
	d, err := dataset.New(attributes, label, instances)
	require.NoError(t, err)
	return d
}

func newFeatures(n, values int, prefix string) []*feature.Feature {
	features := make([]*feature.Feature, n)
	for i := range features {
		vs := make([]string, values)
		for j := range vs {
			vs[j] = fmt.Sprintf("v%d", j)
		}
		features[i] = feature.New(fmt.Sprintf("%s%d", prefix, i), vs)
	}
	return features
}

/*
randomDatasets returns a training and a tuning dataset over the same
attributes. When consistent is true labels are a function of the attribute
values, otherwise they are drawn at random.
*/
func randomDatasets(t *testing.T, r *rand.Rand, consistent bool) (*dataset.Dataset, *dataset.Dataset) {
	t.Helper()
	attributes := newFeatures(2+r.Intn(4), 2+r.Intn(3), "a")
	labels := make([]string, 2+r.Intn(3))
	for i := range labels {
		labels[i] = fmt.Sprintf("l%d", i)
	}
	label := feature.New("label", labels)
	build := func(n int) *dataset.Dataset {
		instances := make([]*dataset.Instance, 0, n)
		for i := 0; i < n; i++ {
			values := make([]string, len(attributes))
			var sum int
			for j, a := range attributes {
				k := r.Intn(len(a.AvailableValues()))
				sum += k * (j + 1)
				values[j] = a.AvailableValues()[k]
			}
			l := labels[sum%len(labels)]
			if !consistent {
				l = labels[r.Intn(len(labels))]
			}
			instances = append(instances, dataset.NewInstance(attributes, values, l))
		}
		d, err := dataset.New(attributes, label, instances)
		require.NoError(t, err)
		return d
	}
	return build(1 + r.Intn(60)), build(1 + r.Intn(30))
}

// reaching returns the instances of s that reach the node at the end of
// the given path of edge values.
func reaching(t *testing.T, s *dataset.Dataset, path []*feature.Criterion) *dataset.Dataset {
	t.Helper()
	var err error
	for _, c := range path {
		s, err = s.SubsetWith(c)
		require.NoError(t, err)
	}
	return s
}

// walk calls f with every node of the tree and the criteria on the path
// from the root to it.
func walk(n tree.Node, path []*feature.Criterion, f func(tree.Node, []*feature.Criterion)) {
	f(n, path)
	in, ok := n.(*tree.Internal)
	if !ok {
		return
	}
	for i, c := range in.Children() {
		value := in.Attribute().AvailableValues()[i]
		cp := append(append([]*feature.Criterion{}, path...), feature.NewCriterion(in.Attribute(), value))
		walk(c, cp, f)
	}
}
