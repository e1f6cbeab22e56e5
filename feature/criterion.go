package feature

import "fmt"

/*
Sample is an interface for something that can satisfy a Criterion.

Its ValueFor method returns the value corresponding to the feature
passed as parameter or an error if the value cannot be obtained.
*/
type Sample interface {
	ValueFor(*Feature) (string, error)
}

/*
Criterion represents a constraint on a feature: a value it must take.
*/
type Criterion struct {
	feature *Feature
	value   string
}

/*
NewCriterion takes a feature and one of its values and returns a
Criterion satisfied by samples taking that value for the feature.
*/
func NewCriterion(f *Feature, value string) *Criterion {
	return &Criterion{f, value}
}

/*
Feature returns the feature to which the constraint applies.
*/
func (c *Criterion) Feature() *Feature {
	return c.feature
}

// Value returns the value to which the feature is constrained.
func (c *Criterion) Value() string {
	return c.value
}

/*
SatisfiedBy receives a sample as parameter and returns a boolean indicating if
the sample satisfies the criterion, that is, if its value for the feature
equals the one on the criterion. An error is returned if the value for the
feature cannot be obtained from the sample.
*/
func (c *Criterion) SatisfiedBy(sample Sample) (bool, error) {
	v, err := sample.ValueFor(c.feature)
	if err != nil {
		return false, err
	}
	return v == c.value, nil
}

func (c *Criterion) String() string {
	return fmt.Sprintf("%s is %s", c.feature.Name(), c.value)
}
