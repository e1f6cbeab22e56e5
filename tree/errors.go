package tree

// ClassificationError represents an error related with classifying
// samples or measuring the accuracy of a tree.
type ClassificationError string

/*
ErrValueOutsideDomain is the error returned by the Classify method of a tree
when a sample takes a value outside the domain of an attribute the tree
asks about.
*/
const ErrValueOutsideDomain = ClassificationError("value outside of attribute domain")

/*
ErrEmptyExamples is the error returned when measuring the accuracy of a tree
against a dataset with no instances.
*/
const ErrEmptyExamples = ClassificationError("cannot measure accuracy on an empty dataset")

/*
ErrMalformedTree is the error returned when a tree does not hold its shape
invariants: internal nodes with one child per value of their attribute,
attributes not reused on a path and labels from the label domain.
*/
const ErrMalformedTree = ClassificationError("malformed tree")

func (ce ClassificationError) Error() string {
	return string(ce)
}
