/*
Package server serves a tree over HTTP.

Routes:
  - POST /classify takes {"values":{"Attribute":"value",...}} and answers
    {"label":"..."} with the label the tree predicts.
  - GET /tree answers the JSON encoding of the tree.
  - GET /tree.dot answers the DOT rendering of the tree.
  - GET /metrics answers the metrics of the registry in the prometheus
    exposition format.

The served tree must not be modified while the handler is in use.
*/
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/tree"
	"github.com/pbanos/arbor/tree/dot"
	treejson "github.com/pbanos/arbor/tree/json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// ClassifyRequest is the body of a classification request.
type ClassifyRequest struct {
	Values map[string]string `json:"values"`
}

// ClassifyResponse is the body of a successful classification response.
type ClassifyResponse struct {
	Label string `json:"label"`
}

// ErrorResponse is the body of a failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

type metrics struct {
	classifications *prometheus.CounterVec
	errors          prometheus.Counter
	duration        prometheus.Histogram
}

type server struct {
	tree    *tree.Tree
	log     logrus.FieldLogger
	metrics *metrics
	known   map[string]bool
}

/*
New takes a tree, a logger and a prometheus registry and returns an
http.Handler serving the tree. The classification metrics are registered
on the given registry, and an error is returned if that fails.
*/
func New(t *tree.Tree, logger logrus.FieldLogger, registry *prometheus.Registry) (http.Handler, error) {
	m := &metrics{
		classifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "arbor_classifications_total",
			Help: "Count of samples classified, by predicted label.",
		}, []string{"label"}),
		errors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arbor_classification_errors_total",
			Help: "Count of samples that could not be classified.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "arbor_classification_duration_seconds",
			Help:    "Seconds taken to classify a sample.",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
		}),
	}
	for _, c := range []prometheus.Collector{m.classifications, m.errors, m.duration} {
		err := registry.Register(c)
		if err != nil {
			return nil, fmt.Errorf("registering metrics: %v", err)
		}
	}
	s := &server{t, logger, m, make(map[string]bool, len(t.Attributes()))}
	for _, a := range t.Attributes() {
		s.known[a.Name()] = true
	}
	r := chi.NewRouter()
	r.Use(s.logRequests)
	r.Post("/classify", s.classify)
	r.Get("/tree", s.getTree)
	r.Get("/tree.dot", s.getDot)
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	return r, nil
}

func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.log.WithFields(logrus.Fields{"method": r.Method, "path": r.URL.Path}).Debug("request received")
		next.ServeHTTP(w, r)
	})
}

func (s *server) classify(w http.ResponseWriter, r *http.Request) {
	log := s.log.WithField("path", r.URL.Path)
	var body ClassifyRequest
	err := json.NewDecoder(r.Body).Decode(&body)
	if err != nil {
		s.fail(w, log, http.StatusBadRequest, fmt.Errorf("invalid request body: %v", err))
		return
	}
	for name := range body.Values {
		if !s.known[name] {
			s.fail(w, log, http.StatusBadRequest, fmt.Errorf("%w: %s", dataset.ErrUnknownAttribute, name))
			return
		}
	}
	start := time.Now()
	label, err := s.tree.Classify(dataset.NewSample(body.Values))
	s.metrics.duration.Observe(time.Since(start).Seconds())
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, tree.ErrValueOutsideDomain) || errors.Is(err, dataset.ErrUnknownAttribute) {
			status = http.StatusBadRequest
		}
		s.fail(w, log, status, err)
		return
	}
	s.metrics.classifications.WithLabelValues(label).Inc()
	log.WithField("label", label).Debug("sample classified")
	writeJSON(w, http.StatusOK, &ClassifyResponse{label})
}

func (s *server) fail(w http.ResponseWriter, log logrus.FieldLogger, status int, err error) {
	s.metrics.errors.Inc()
	log.WithError(err).WithField("status", status).Warn("classification failed")
	writeJSON(w, status, &ErrorResponse{err.Error()})
}

func (s *server) getTree(w http.ResponseWriter, r *http.Request) {
	b, err := treejson.Marshal(s.tree)
	if err != nil {
		s.log.WithError(err).Warn("encoding tree")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(b)
}

func (s *server) getDot(w http.ResponseWriter, r *http.Request) {
	out, err := dot.Render(s.tree)
	if err != nil {
		s.log.WithError(err).Warn("rendering tree")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/vnd.graphviz")
	w.Write([]byte(out))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
