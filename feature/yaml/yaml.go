/*
Package yaml provides methods to parse feature specifications, also known
as metadata, from YAML documents.
*/
package yaml

import (
	"fmt"
	"io/ioutil"

	"github.com/pbanos/arbor/feature"
	yaml "gopkg.in/yaml.v2"
)

// Metadata holds the attributes a tree may split on, in their declared
// order, and the label feature it predicts.
type Metadata struct {
	Attributes []*feature.Feature
	Label      *feature.Feature
}

/*
ReadMetadata takes a slice of bytes with a feature specification in YML and
returns the metadata parsed from it or an error.

The YML is expected to be an object with two properties:
  - attributes: an object with a property for each attribute with its name
    and the list of its valid values.
  - label: an object with a single property, the name of the label, and
    the list of its valid values.

The order in which attributes and values are declared is preserved.
*/
func ReadMetadata(md []byte) (*Metadata, error) {
	doc := struct {
		Attributes yaml.MapSlice `yaml:"attributes"`
		Label      yaml.MapSlice `yaml:"label"`
	}{}
	err := yaml.Unmarshal(md, &doc)
	if err != nil {
		return nil, fmt.Errorf("parsing yml metadata: %v", err)
	}
	if doc.Attributes == nil {
		return nil, fmt.Errorf("metadata has no attribute information")
	}
	if len(doc.Label) != 1 {
		return nil, fmt.Errorf("metadata must declare exactly one label, got %d", len(doc.Label))
	}
	attributes, err := readFeatures(doc.Attributes)
	if err != nil {
		return nil, err
	}
	labels, err := readFeatures(doc.Label)
	if err != nil {
		return nil, err
	}
	for _, a := range attributes {
		if a.Name() == labels[0].Name() {
			return nil, fmt.Errorf("label %s is also declared as an attribute", a.Name())
		}
	}
	return &Metadata{Attributes: attributes, Label: labels[0]}, nil
}

/*
ReadMetadataFromFile takes a filepath string, reads its contents and uses
ReadMetadata to parse it and return the parsed metadata or an error.
If the file indicated by the filepath cannot be opened for reading an error
will be returned.
*/
func ReadMetadataFromFile(filepath string) (*Metadata, error) {
	md, err := ioutil.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading metadata yml file %s: %v", filepath, err)
	}
	m, err := ReadMetadata(md)
	if err != nil {
		err = fmt.Errorf("parsing metadata yml file %s: %v", filepath, err)
	}
	return m, err
}

func readFeatures(ms yaml.MapSlice) ([]*feature.Feature, error) {
	features := make([]*feature.Feature, 0, len(ms))
	seen := make(map[string]bool)
	for _, item := range ms {
		name := fmt.Sprintf("%v", item.Key)
		if seen[name] {
			return nil, fmt.Errorf("feature %s declared twice", name)
		}
		seen[name] = true
		values, ok := item.Value.([]interface{})
		if !ok {
			if item.Value == nil {
				values = []interface{}{}
			} else {
				return nil, fmt.Errorf("invalid declaration of type %T for feature %s: expected a list of values", item.Value, name)
			}
		}
		stringVs := make([]string, 0, len(values))
		for _, v := range values {
			stringVs = append(stringVs, fmt.Sprintf("%v", v))
		}
		features = append(features, feature.New(name, stringVs))
	}
	return features, nil
}
