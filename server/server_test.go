package server

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pbanos/arbor/feature"
	"github.com/pbanos/arbor/tree"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weatherTree(t *testing.T) *tree.Tree {
	weather := feature.New("Weather", []string{"sunny", "rainy"})
	wind := feature.New("Wind", []string{"high", "low"})
	decision := feature.New("Decision", []string{"play", "stay"})
	windNode, err := tree.NewInternal(tree.EdgeFor("sunny"), wind, "play", []tree.Node{
		tree.NewLeaf(tree.EdgeFor("high"), "stay"),
		tree.NewLeaf(tree.EdgeFor("low"), "play"),
	})
	require.NoError(t, err)
	root, err := tree.NewInternal(tree.RootEdge(), weather, "play", []tree.Node{
		windNode,
		tree.NewLeaf(tree.EdgeFor("rainy"), "play"),
	})
	require.NoError(t, err)
	tr, err := tree.New(root, []*feature.Feature{weather, wind}, decision)
	require.NoError(t, err)
	return tr
}

func newServer(t *testing.T) *httptest.Server {
	logger := logrus.New()
	logger.Out = ioutil.Discard
	h, err := New(weatherTree(t), logger, prometheus.NewRegistry())
	require.NoError(t, err)
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, ts *httptest.Server, body string) (int, map[string]string) {
	resp, err := http.Post(ts.URL+"/classify", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	var decoded map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func get(t *testing.T, ts *httptest.Server, path string) (int, string) {
	resp, err := http.Get(ts.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

func TestClassify(t *testing.T) {
	ts := newServer(t)
	testCases := []struct {
		body     string
		status   int
		expected string
	}{
		{`{"values":{"Weather":"sunny","Wind":"high"}}`, http.StatusOK, "stay"},
		{`{"values":{"Weather":"sunny","Wind":"low"}}`, http.StatusOK, "play"},
		{`{"values":{"Weather":"rainy"}}`, http.StatusOK, "play"},
	}
	for _, tc := range testCases {
		status, body := post(t, ts, tc.body)
		assert.Equal(t, tc.status, status, tc.body)
		assert.Equal(t, tc.expected, body["label"], tc.body)
	}
}

func TestClassifyErrors(t *testing.T) {
	ts := newServer(t)
	testCases := []struct {
		name    string
		body    string
		message string
	}{
		{"invalid body", `{"values":`, "invalid request body"},
		{"unknown attribute", `{"values":{"Weather":"rainy","Gusts":"yes"}}`, "Gusts"},
		{"value outside domain", `{"values":{"Weather":"snowy"}}`, "snowy"},
		{"missing value", `{"values":{"Weather":"sunny"}}`, "Wind"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := post(t, ts, tc.body)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Contains(t, body["error"], tc.message)
		})
	}
}

func TestGetTree(t *testing.T) {
	ts := newServer(t)
	status, body := get(t, ts, "/tree")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"attribute":"Weather"`)

	status, body = get(t, ts, "/tree.dot")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "digraph tree")
	assert.Contains(t, body, `"Wind?"`)
}

func TestMetrics(t *testing.T) {
	ts := newServer(t)
	post(t, ts, `{"values":{"Weather":"sunny","Wind":"high"}}`)
	post(t, ts, `{"values":{"Weather":"rainy"}}`)
	post(t, ts, `{"values":{"Weather":"snowy"}}`)

	status, body := get(t, ts, "/metrics")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `arbor_classifications_total{label="stay"} 1`)
	assert.Contains(t, body, `arbor_classifications_total{label="play"} 1`)
	assert.Contains(t, body, "arbor_classification_errors_total 1")
	assert.Contains(t, body, "arbor_classification_duration_seconds_count 3")
}

func TestNewRegistrationConflict(t *testing.T) {
	registry := prometheus.NewRegistry()
	_, err := New(weatherTree(t), logrus.New(), registry)
	require.NoError(t, err)
	_, err = New(weatherTree(t), logrus.New(), registry)
	assert.Error(t, err)
}
