package yaml

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const weatherMetadata = `
attributes:
  Wind: [high, low]
  Weather: [sunny, rainy, overcast]
label:
  Decision: [play, stay]
`

func TestReadMetadataKeepsDeclaredOrder(t *testing.T) {
	m, err := ReadMetadata([]byte(weatherMetadata))
	require.NoError(t, err)

	require.Len(t, m.Attributes, 2)
	assert.Equal(t, "Wind", m.Attributes[0].Name())
	assert.Equal(t, []string{"high", "low"}, m.Attributes[0].AvailableValues())
	assert.Equal(t, "Weather", m.Attributes[1].Name())
	assert.Equal(t, []string{"sunny", "rainy", "overcast"}, m.Attributes[1].AvailableValues())
	assert.Equal(t, "Decision", m.Label.Name())
	assert.Equal(t, []string{"play", "stay"}, m.Label.AvailableValues())
}

func TestReadMetadataStringifiesValues(t *testing.T) {
	m, err := ReadMetadata([]byte("attributes:\n  Legs: [2, 4]\nlabel:\n  Moves: [flies, walks]\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "4"}, m.Attributes[0].AvailableValues())
}

func TestReadMetadataErrors(t *testing.T) {
	testCases := []struct {
		name string
		doc  string
	}{
		{"invalid yaml", "attributes: [\n"},
		{"no attributes", "label:\n  L: [a]\n"},
		{"no label", "attributes:\n  A: [x]\n"},
		{"two labels", "attributes:\n  A: [x]\nlabel:\n  L: [a]\n  M: [b]\n"},
		{"scalar domain", "attributes:\n  A: continuous\nlabel:\n  L: [a]\n"},
		{"label as attribute", "attributes:\n  L: [x]\nlabel:\n  L: [a]\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadMetadata([]byte(tc.doc))
			assert.Error(t, err)
		})
	}
}

func TestReadMetadataFromFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "arbor-yaml")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "metadata.yml")
	require.NoError(t, ioutil.WriteFile(path, []byte(weatherMetadata), 0600))

	m, err := ReadMetadataFromFile(path)
	require.NoError(t, err)
	assert.Len(t, m.Attributes, 2)

	_, err = ReadMetadataFromFile(filepath.Join(dir, "missing.yml"))
	assert.Error(t, err)
}
