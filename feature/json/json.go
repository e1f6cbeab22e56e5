/*
Package json encodes features as JSON objects with the name of the feature
as "name" and its ordered domain as "values".
*/
package json

import (
	"encoding/json"
	"fmt"

	"github.com/pbanos/arbor/feature"
)

// Feature is the JSON representation of a feature.
type Feature struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// NewFeature returns the JSON representation of the given feature.
func NewFeature(f *feature.Feature) *Feature {
	return &Feature{f.Name(), f.AvailableValues()}
}

/*
Feature returns the feature represented by jf, or an error if it has no
name or declares a value twice.
*/
func (jf *Feature) Feature() (*feature.Feature, error) {
	if jf.Name == "" {
		return nil, fmt.Errorf("feature without name")
	}
	seen := make(map[string]bool, len(jf.Values))
	for _, v := range jf.Values {
		if seen[v] {
			return nil, fmt.Errorf("feature %s declares value %q twice", jf.Name, v)
		}
		seen[v] = true
	}
	return feature.New(jf.Name, jf.Values), nil
}

// Marshal returns the JSON encoding of the given feature.
func Marshal(f *feature.Feature) ([]byte, error) {
	return json.Marshal(NewFeature(f))
}

// Unmarshal returns the feature encoded in the given JSON data or an error.
func Unmarshal(data []byte) (*feature.Feature, error) {
	jf := &Feature{}
	err := json.Unmarshal(data, jf)
	if err != nil {
		return nil, err
	}
	return jf.Feature()
}
