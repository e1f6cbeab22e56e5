package feature

import "fmt"

/*
Feature represents a property that can be observed and that can only
take a value among a finite, ordered set of values: its domain.

The order of the domain is significant: trees keep one child per value
in this order.
*/
type Feature struct {
	name            string
	availableValues []string
	index           map[string]int
}

/*
New takes a name string and a slice of available value strings
and returns a feature with the given name and domain. The slice is
copied, so later changes to it do not affect the feature.
*/
func New(name string, availableValues []string) *Feature {
	values := make([]string, len(availableValues))
	copy(values, availableValues)
	index := make(map[string]int, len(values))
	for i, v := range values {
		if _, ok := index[v]; !ok {
			index[v] = i
		}
	}
	return &Feature{name, values, index}
}

/*
Name returns a string with the name of the feature
*/
func (f *Feature) Name() string {
	return f.name
}

/*
Valid receives a value and returns a boolean and an error. When the
value is included in the available values of the feature, the method
returns true and nil. Otherwise it returns false and an error describing the
reason.
*/
func (f *Feature) Valid(value string) (bool, error) {
	if _, ok := f.index[value]; ok {
		return true, nil
	}
	return false, fmt.Errorf("feature %s got unknown value %q", f.Name(), value)
}

/*
AvailableValues returns a string slice with the values available for the
feature in their declared order. The returned slice must not be modified.
*/
func (f *Feature) AvailableValues() []string {
	return f.availableValues
}

// IndexOf returns the position of value in the feature's domain or -1
// if the value does not belong to it.
func (f *Feature) IndexOf(value string) int {
	i, ok := f.index[value]
	if !ok {
		return -1
	}
	return i
}

func (f *Feature) String() string {
	return f.name
}
