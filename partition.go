package arbor

import (
	"fmt"

	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/feature"
)

// gainTolerance is the information gain under which an attribute is
// considered not to inform about the label at all. It absorbs the rounding
// of subtracting equal entropies computed in different orders.
const gainTolerance = 1e-12

/*
Partition represents a partition of a dataset according to an attribute
into one subset per value of its domain, with the information gain the
partition achieves on the label.
*/
type Partition struct {
	Feature         *feature.Feature
	Subsets         []*dataset.Dataset
	InformationGain float64
}

/*
NewPartition takes a dataset and one of its attributes and returns the
partition of the dataset for the attribute: a subset per value of the
attribute's domain, in domain order, and the information gain on the
label. Values no instance takes produce empty subsets that contribute
nothing to the conditional entropy.
*/
func NewPartition(s *dataset.Dataset, f *feature.Feature) (*Partition, error) {
	if _, ok := s.Attribute(f.Name()); !ok {
		return nil, fmt.Errorf("%w: %s is not an attribute of the dataset", ErrInconsistentAttributes, f.Name())
	}
	availableValues := f.AvailableValues()
	subsets := make([]*dataset.Dataset, 0, len(availableValues))
	informationGain := ClassEntropy(s)
	totalCount := float64(s.Count())
	for _, value := range availableValues {
		ss, err := s.SubsetWith(feature.NewCriterion(f, value))
		if err != nil {
			return nil, err
		}
		subsets = append(subsets, ss)
		if ss.Count() > 0 {
			informationGain -= ClassEntropy(ss) * float64(ss.Count()) / totalCount
		}
	}
	return &Partition{f, subsets, informationGain}, nil
}

/*
InformationGain returns the reduction in label entropy achieved by splitting
the given dataset on the given attribute, or an error wrapping
ErrInconsistentAttributes if the feature is not an attribute of the dataset.
*/
func InformationGain(f *feature.Feature, s *dataset.Dataset) (float64, error) {
	p, err := NewPartition(s, f)
	if err != nil {
		return 0.0, err
	}
	return p.InformationGain, nil
}

// AttributeGain holds the information gain of splitting on an attribute.
type AttributeGain struct {
	Feature         *feature.Feature
	InformationGain float64
}

/*
RootInformationGain returns the information gain of each attribute of the
dataset over all of its instances, in declared attribute order.
*/
func RootInformationGain(s *dataset.Dataset) ([]AttributeGain, error) {
	result := make([]AttributeGain, 0, len(s.Attributes()))
	for _, f := range s.Attributes() {
		g, err := InformationGain(f, s)
		if err != nil {
			return nil, err
		}
		result = append(result, AttributeGain{f, g})
	}
	return result, nil
}

/*
bestPartition returns the partition of the dataset for the available
attribute with the highest information gain. Among attributes with the
same gain the first available one wins, except when no attribute informs
about the label: then the attribute with the lexicographically smallest
name is chosen, so the choice does not depend on attribute order.
*/
func bestPartition(s *dataset.Dataset, available []*feature.Feature) (*Partition, error) {
	var selected *Partition
	for _, f := range available {
		p, err := NewPartition(s, f)
		if err != nil {
			return nil, err
		}
		if selected == nil || p.InformationGain > selected.InformationGain {
			selected = p
		}
	}
	if selected == nil || selected.InformationGain > gainTolerance {
		return selected, nil
	}
	smallest := available[0]
	for _, f := range available[1:] {
		if f.Name() < smallest.Name() {
			smallest = f
		}
	}
	return NewPartition(s, smallest)
}
