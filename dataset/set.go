package dataset

import (
	"fmt"
	"math/rand"

	"github.com/pbanos/arbor/feature"
)

// Error represents an error on the contents of a dataset.
type Error string

const (
	// ErrEmptyDomain is returned when an attribute or the label declares no values.
	ErrEmptyDomain = Error("feature declares an empty value domain")
	// ErrDuplicateValue is returned when a feature declares the same value twice.
	ErrDuplicateValue = Error("feature declares a value twice")
	// ErrDuplicateAttribute is returned when two attributes share a name.
	ErrDuplicateAttribute = Error("attribute declared twice")
	// ErrUnknownAttribute is returned when asking for an attribute not in the dataset.
	ErrUnknownAttribute = Error("unknown attribute")
	// ErrArity is returned when an instance does not have one value per attribute.
	ErrArity = Error("instance does not have one value per attribute")
	// ErrUnknownValue is returned when an instance value is outside its attribute's domain.
	ErrUnknownValue = Error("value outside of attribute domain")
	// ErrUnknownLabel is returned when an instance label is outside the label domain.
	ErrUnknownLabel = Error("label outside of label domain")
	// ErrEmptyDataset is returned when computing something that requires instances on an empty dataset.
	ErrEmptyDataset = Error("dataset has no instances")
)

func (e Error) Error() string {
	return string(e)
}

/*
Dataset represents a read-only collection of instances along with the
ordered attributes, each with its ordered domain, and the label feature
whose ordered values are the labels instances may take.

Subsets obtained from a dataset share its attributes and label.
*/
type Dataset struct {
	*schema
	instances []*Instance
}

type schema struct {
	attributes     []*feature.Feature
	label          *feature.Feature
	attributeIndex map[string]int
}

/*
New takes the ordered attributes, the label feature and a slice of instances
and returns a dataset with them or an error if any of these is malformed:
  - an attribute or the label has an empty domain or repeats a value
  - two attributes share a name
  - an instance was not built with the same attributes, or has a value
    outside its attribute's domain, or a label outside the label domain.
*/
func New(attributes []*feature.Feature, label *feature.Feature, instances []*Instance) (*Dataset, error) {
	s := &schema{
		attributes:     attributes,
		label:          label,
		attributeIndex: make(map[string]int, len(attributes)),
	}
	for i, a := range attributes {
		if _, ok := s.attributeIndex[a.Name()]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAttribute, a.Name())
		}
		s.attributeIndex[a.Name()] = i
		err := validateDomain(a)
		if err != nil {
			return nil, err
		}
	}
	err := validateDomain(label)
	if err != nil {
		return nil, err
	}
	for i, inst := range instances {
		err = s.validate(inst)
		if err != nil {
			return nil, fmt.Errorf("instance %d: %w", i, err)
		}
	}
	return &Dataset{s, instances}, nil
}

func validateDomain(f *feature.Feature) error {
	values := f.AvailableValues()
	if len(values) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyDomain, f.Name())
	}
	for i, v := range values {
		if f.IndexOf(v) != i {
			return fmt.Errorf("%w: %s declares %q twice", ErrDuplicateValue, f.Name(), v)
		}
	}
	return nil
}

func (s *schema) validate(inst *Instance) error {
	if len(inst.values) != len(s.attributes) || len(inst.attributes) != len(s.attributes) {
		return fmt.Errorf("%w: expected %d values, got %d", ErrArity, len(s.attributes), len(inst.values))
	}
	for i, a := range s.attributes {
		if inst.attributes[i].Name() != a.Name() {
			return fmt.Errorf("%w: expected attribute %s at position %d, got %s", ErrUnknownAttribute, a.Name(), i, inst.attributes[i].Name())
		}
		if a.IndexOf(inst.values[i]) < 0 {
			return fmt.Errorf("%w: %q for attribute %s", ErrUnknownValue, inst.values[i], a.Name())
		}
	}
	if s.label.IndexOf(inst.label) < 0 {
		return fmt.Errorf("%w: %q for label %s", ErrUnknownLabel, inst.label, s.label.Name())
	}
	return nil
}

// Attributes returns the attributes of the dataset in declared order.
// The returned slice must not be modified.
func (d *Dataset) Attributes() []*feature.Feature {
	return d.attributes
}

// Attribute returns the attribute of the dataset with the given name.
func (d *Dataset) Attribute(name string) (*feature.Feature, bool) {
	i, ok := d.attributeIndex[name]
	if !ok {
		return nil, false
	}
	return d.attributes[i], true
}

// AttributeIndex returns the position of the attribute with the given name
// in the attribute order.
func (d *Dataset) AttributeIndex(name string) (int, bool) {
	i, ok := d.attributeIndex[name]
	return i, ok
}

// Label returns the label feature of the dataset.
func (d *Dataset) Label() *feature.Feature {
	return d.label
}

// Labels returns the declared labels in order.
func (d *Dataset) Labels() []string {
	return d.label.AvailableValues()
}

// Instances returns the instances of the dataset. The returned slice
// must not be modified.
func (d *Dataset) Instances() []*Instance {
	return d.instances
}

// Count returns the number of instances in the dataset.
func (d *Dataset) Count() int {
	return len(d.instances)
}

/*
SubsetWith takes a feature.Criterion and returns a subset that only contains
instances that satisfy it, in their original order.
*/
func (d *Dataset) SubsetWith(c *feature.Criterion) (*Dataset, error) {
	var instances []*Instance
	for _, inst := range d.instances {
		ok, err := c.SatisfiedBy(inst)
		if err != nil {
			return nil, err
		}
		if ok {
			instances = append(instances, inst)
		}
	}
	return &Dataset{d.schema, instances}, nil
}

/*
CountLabels returns a slice with the number of instances taking each
label, in the declared label order.
*/
func (d *Dataset) CountLabels() []int {
	counts := make([]int, len(d.label.AvailableValues()))
	for _, inst := range d.instances {
		counts[d.label.IndexOf(inst.label)]++
	}
	return counts
}

/*
MajorityLabel returns the label taken by most instances in the dataset.
Ties are broken in favour of the label declared first. It returns
ErrEmptyDataset if the dataset has no instances.
*/
func (d *Dataset) MajorityLabel() (string, error) {
	if len(d.instances) == 0 {
		return "", ErrEmptyDataset
	}
	best := 0
	counts := d.CountLabels()
	for i, c := range counts {
		if c > counts[best] {
			best = i
		}
	}
	return d.label.AvailableValues()[best], nil
}

// PureLabel returns the label shared by all instances and true, or false
// if instances disagree on their label or there are no instances.
func (d *Dataset) PureLabel() (string, bool) {
	if len(d.instances) == 0 {
		return "", false
	}
	label := d.instances[0].label
	for _, inst := range d.instances[1:] {
		if inst.label != label {
			return "", false
		}
	}
	return label, true
}

/*
Split takes a percentage and a random number generator and returns two
datasets with the same attributes and label: the second receives each
instance with the given probability, the first the rest. Relative order of
instances is kept on both.
*/
func (d *Dataset) Split(percent int, r *rand.Rand) (*Dataset, *Dataset) {
	var kept, split []*Instance
	for _, inst := range d.instances {
		if 100*r.Float64() < float64(percent) {
			split = append(split, inst)
		} else {
			kept = append(kept, inst)
		}
	}
	return &Dataset{d.schema, kept}, &Dataset{d.schema, split}
}
