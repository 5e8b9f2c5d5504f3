// Package metrics records analysis results as Prometheus metrics and writes
// them to a node-exporter textfile.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/hurou927/prereq-graph/internal/graph"
)

// Registry holds the metrics of one run.
type Registry struct {
	Nodes                prometheus.Gauge
	Edges                prometheus.Gauge
	Components           prometheus.Gauge
	LargestComponentSize prometheus.Gauge
	IsolatedNodes        prometheus.Gauge
	DanglingReferences   prometheus.Gauge
	SubjectCourses       *prometheus.GaugeVec
	AnalysisDuration     prometheus.Histogram

	registry *prometheus.Registry
}

// NewRegistry creates a registry with all metrics initialized.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Registry{
		registry: reg,
		Nodes: factory.NewGauge(prometheus.GaugeOpts{
			Name: "prereq_graph_nodes",
			Help: "Number of courses in the catalog",
		}),
		Edges: factory.NewGauge(prometheus.GaugeOpts{
			Name: "prereq_graph_edges",
			Help: "Number of resolved prerequisite edges",
		}),
		Components: factory.NewGauge(prometheus.GaugeOpts{
			Name: "prereq_graph_components",
			Help: "Number of connected components",
		}),
		LargestComponentSize: factory.NewGauge(prometheus.GaugeOpts{
			Name: "prereq_graph_largest_component_size",
			Help: "Number of courses in the largest component",
		}),
		IsolatedNodes: factory.NewGauge(prometheus.GaugeOpts{
			Name: "prereq_graph_isolated_nodes",
			Help: "Number of courses with no resolved prerequisite or follow-up",
		}),
		DanglingReferences: factory.NewGauge(prometheus.GaugeOpts{
			Name: "prereq_graph_dangling_references",
			Help: "Prerequisite references to courses missing from the catalog",
		}),
		SubjectCourses: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "prereq_graph_subject_courses",
			Help: "Courses per subject, split by kind (total, with_prereqs, isolated)",
		}, []string{"subject", "kind"}),
		AnalysisDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "prereq_graph_analysis_duration_seconds",
			Help:    "Time spent building and analyzing the graph",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
	}
}

// RecordAnalysis sets the gauges from res and observes duration.
func (r *Registry) RecordAnalysis(res *graph.Result, duration time.Duration) {
	st := res.Statistics
	r.Nodes.Set(float64(st.TotalNodes))
	r.Edges.Set(float64(st.TotalEdges))
	r.Components.Set(float64(st.ComponentCount))
	r.LargestComponentSize.Set(float64(st.LargestComponentSize))
	r.IsolatedNodes.Set(float64(st.IsolatedCount))
	r.DanglingReferences.Set(float64(len(res.Dangling)))

	for _, s := range res.Subjects {
		r.SubjectCourses.WithLabelValues(s.Subject, "total").Set(float64(s.Total))
		r.SubjectCourses.WithLabelValues(s.Subject, "with_prereqs").Set(float64(s.WithPrereqs))
		r.SubjectCourses.WithLabelValues(s.Subject, "isolated").Set(float64(s.Isolated))
	}

	r.AnalysisDuration.Observe(duration.Seconds())
}

// WriteTextfile writes all metrics to path in the Prometheus text format.
func (r *Registry) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
