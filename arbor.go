/*
Package arbor grows decision trees over discrete attributes by recursively
splitting training data on the attribute with the highest information
gain, and simplifies them with reduced-error pruning against a tuning set.
*/
package arbor

import (
	"fmt"
	"io/ioutil"

	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/feature"
	"github.com/pbanos/arbor/tree"
	"github.com/sirupsen/logrus"
)

// Error represents an error growing or pruning a tree.
type Error string

const (
	// ErrEmptyTrainingSet is returned when growing a tree from no instances.
	ErrEmptyTrainingSet = Error("cannot grow a tree from an empty training set")
	// ErrInconsistentAttributes is returned when the attributes to split on
	// are not attributes of the training set, or are repeated.
	ErrInconsistentAttributes = Error("attributes inconsistent with the dataset")
)

func (e Error) Error() string {
	return string(e)
}

// Options holds the configuration for growing and pruning trees.
type Options struct {
	// Logger receives debug entries about splits and pruning
	// decisions. When nil, nothing is logged.
	Logger logrus.FieldLogger
}

func (o *Options) logger() logrus.FieldLogger {
	if o == nil || o.Logger == nil {
		l := logrus.New()
		l.Out = ioutil.Discard
		return l
	}
	return o.Logger
}

/*
Train takes a training dataset and returns a tree grown from it that
splits on any of its attributes to predict its label, or an error.
*/
func Train(s *dataset.Dataset, opts *Options) (*tree.Tree, error) {
	root, err := Grow(s, s.Attributes(), opts)
	if err != nil {
		return nil, err
	}
	return tree.New(root, s.Attributes(), s.Label())
}

/*
TrainAndPrune takes a training dataset and a tuning dataset, grows a tree
from the first with Train and prunes it against the second with Prune.
*/
func TrainAndPrune(s, tuning *dataset.Dataset, opts *Options) (*tree.Tree, error) {
	t, err := Train(s, opts)
	if err != nil {
		return nil, err
	}
	err = Prune(t, tuning, opts)
	if err != nil {
		return nil, err
	}
	return t, nil
}

/*
Grow takes a training dataset and the attributes of the dataset that may be
used to split it, and returns the root node of a tree grown from it.

It returns ErrEmptyTrainingSet if the dataset has no instances, and an error
wrapping ErrInconsistentAttributes if an available attribute is not an
attribute of the dataset or is repeated.
*/
func Grow(s *dataset.Dataset, available []*feature.Feature, opts *Options) (tree.Node, error) {
	if s.Count() == 0 {
		return nil, ErrEmptyTrainingSet
	}
	attributes := make([]*feature.Feature, 0, len(available))
	seen := make(map[string]bool, len(available))
	for _, f := range available {
		a, ok := s.Attribute(f.Name())
		if !ok {
			return nil, fmt.Errorf("%w: unknown attribute %s", ErrInconsistentAttributes, f.Name())
		}
		if seen[f.Name()] {
			return nil, fmt.Errorf("%w: attribute %s repeated", ErrInconsistentAttributes, f.Name())
		}
		seen[f.Name()] = true
		attributes = append(attributes, a)
	}
	g := &grower{opts.logger()}
	return g.branchOut(s, attributes, nil, tree.RootEdge())
}

type grower struct {
	log logrus.FieldLogger
}

/*
branchOut develops the node reached through the given edge with the
instances in s, which are those of parent satisfying the edge. Nodes with
no instances predict the majority label of their parent's instances, pure
nodes predict their only label and nodes with no attributes left predict
their majority label. Every other node splits on the available attribute
with the highest information gain, with a child per value of its domain.
*/
func (g *grower) branchOut(s *dataset.Dataset, available []*feature.Feature, parent *dataset.Dataset, edge tree.Edge) (tree.Node, error) {
	if s.Count() == 0 {
		if parent == nil {
			return nil, ErrEmptyTrainingSet
		}
		label, err := parent.MajorityLabel()
		if err != nil {
			return nil, err
		}
		return tree.NewLeaf(edge, label), nil
	}
	if label, ok := s.PureLabel(); ok {
		return tree.NewLeaf(edge, label), nil
	}
	majority, err := s.MajorityLabel()
	if err != nil {
		return nil, err
	}
	if len(available) == 0 {
		return tree.NewLeaf(edge, majority), nil
	}
	p, err := bestPartition(s, available)
	if err != nil {
		return nil, err
	}
	g.log.WithFields(logrus.Fields{
		"edge":      edge.String(),
		"attribute": p.Feature.Name(),
		"gain":      p.InformationGain,
		"samples":   s.Count(),
	}).Debug("splitting node")
	stAvailable := make([]*feature.Feature, 0, len(available)-1)
	for _, f := range available {
		if f != p.Feature {
			stAvailable = append(stAvailable, f)
		}
	}
	values := p.Feature.AvailableValues()
	children := make([]tree.Node, 0, len(values))
	for i, value := range values {
		child, err := g.branchOut(p.Subsets[i], stAvailable, s, tree.EdgeFor(value))
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return tree.NewInternal(edge, p.Feature, majority, children)
}
