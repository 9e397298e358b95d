// Package metrics provides an observability framework for lessonbuilder runs.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so callers never need nil checks:
//
//	recorder := metrics.NewPrometheusRecorder(registry)
//	pipeline := build.NewPipeline(cfg).WithRecorder(recorder)
//
// The tool is a batch process without a long-lived HTTP endpoint, so the
// Prometheus registry is exported with WriteTextfile for node_exporter's
// textfile collector rather than scraped.
package metrics
