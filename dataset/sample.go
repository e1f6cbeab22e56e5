package dataset

import (
	"fmt"

	"github.com/pbanos/arbor/feature"
)

/*
Sample represents an item to classify or from which to learn how to
classify them.

Its ValueFor method returns the value of the sample corresponding to the
feature passed as parameter.
*/
type Sample = feature.Sample

/*
Instance is a labeled sample: one value per attribute, in the attribute
order of the dataset that produced it, plus a label. Instances are
immutable.
*/
type Instance struct {
	attributes []*feature.Feature
	values     []string
	label      string
}

/*
NewInstance takes the ordered slice of attributes, a slice with one value
per attribute in the same order and a label, and returns an instance with
them. The values slice is copied. Values are not validated until the
instance is added to a Dataset.
*/
func NewInstance(attributes []*feature.Feature, values []string, label string) *Instance {
	vs := make([]string, len(values))
	copy(vs, values)
	return &Instance{attributes, vs, label}
}

/*
ValueFor returns the value of the instance for the attribute with the same
name as the given feature, or an error wrapping ErrUnknownAttribute if the
instance has no such attribute.
*/
func (i *Instance) ValueFor(f *feature.Feature) (string, error) {
	for j, a := range i.attributes {
		if a.Name() == f.Name() {
			return i.values[j], nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownAttribute, f.Name())
}

// Value returns the value of the instance for the attribute at the given
// position of the attribute order.
func (i *Instance) Value(index int) string {
	return i.values[index]
}

// Values returns a copy of the values of the instance in attribute order.
func (i *Instance) Values() []string {
	vs := make([]string, len(i.values))
	copy(vs, i.values)
	return vs
}

// Label returns the label of the instance.
func (i *Instance) Label() string {
	return i.label
}

func (i *Instance) String() string {
	return fmt.Sprintf("[%v -> %s]", i.values, i.label)
}

type sample struct {
	featureValues map[string]string
}

/*
NewSample takes a map of feature names to values and returns an unlabeled
sample. Asking it for the value of a feature it does not define returns an
error wrapping ErrUnknownAttribute.
*/
func NewSample(featureValues map[string]string) Sample {
	return &sample{featureValues}
}

func (s *sample) ValueFor(f *feature.Feature) (string, error) {
	v, ok := s.featureValues[f.Name()]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownAttribute, f.Name())
	}
	return v, nil
}

func (s *sample) String() string {
	return fmt.Sprintf("[%v]", s.featureValues)
}
