/*
Package inputsample provides an implementation of dataset.Sample that is read
from an io.Reader.
*/
package inputsample

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/feature"
)

/*
ValueRequester represents a way to ask for attribute values and reject the
given values.
*/
type ValueRequester interface {
	RequestValueFor(*feature.Feature) error
	RejectValueFor(*feature.Feature, string) error
}

type readSample struct {
	obtainedValues map[string]string
	scanner        *bufio.Scanner
	requester      ValueRequester
	attributes     map[string]*feature.Feature
}

/*
New takes an io.Reader, a slice of attributes and a ValueRequester and
returns a Sample.

The returned Sample ValueFor method reads attribute values lazily, first
requesting them with the given ValueRequester and then parsing them from
the reader, one per line. Lines will be read until one holding a value of
the attribute domain is found, and the rest are rejected with the
requester's RejectValueFor method. Values are only requested once.

Asking for an attribute not in the given slice returns an error wrapping
dataset.ErrUnknownAttribute.
*/
func New(r io.Reader, attributes []*feature.Feature, requester ValueRequester) dataset.Sample {
	byName := make(map[string]*feature.Feature, len(attributes))
	for _, a := range attributes {
		byName[a.Name()] = a
	}
	return &readSample{make(map[string]string), bufio.NewScanner(r), requester, byName}
}

func (rs *readSample) ValueFor(f *feature.Feature) (string, error) {
	value, ok := rs.obtainedValues[f.Name()]
	if ok {
		return value, nil
	}
	a, ok := rs.attributes[f.Name()]
	if !ok {
		return "", fmt.Errorf("%w: %s", dataset.ErrUnknownAttribute, f.Name())
	}
	err := rs.requester.RequestValueFor(a)
	if err != nil {
		return "", err
	}
	for rs.scanner.Scan() {
		line := rs.scanner.Text()
		if a.IndexOf(line) >= 0 {
			rs.obtainedValues[a.Name()] = line
			return line, nil
		}
		err = rs.requester.RejectValueFor(a, line)
		if err != nil {
			return "", err
		}
	}
	err = rs.scanner.Err()
	if err != nil {
		return "", err
	}
	return "", fmt.Errorf("EOF when requesting value for %s", a.Name())
}
