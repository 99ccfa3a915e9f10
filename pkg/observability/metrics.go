package observability

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/miriamsimone/video-generation-pipeline/pkg/domain"
)

// Metrics instruments playback lifecycle events.
type Metrics struct {
	registry *prometheus.Registry

	routesPlanned   prometheus.Counter
	routesNotFound  prometheus.Counter
	preemptions     prometheus.Counter
	segmentsPlayed  *prometheus.CounterVec
	framesPresented prometheus.Counter
	fetchFailures   *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
}

// NewMetrics creates and registers the rig metric set on its own
// registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		routesPlanned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "facerig_routes_planned_total",
			Help: "Total number of routes planned",
		}),
		routesNotFound: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "facerig_routes_not_found_total",
			Help: "Total number of unreachable targets resolved by jump cut",
		}),
		preemptions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "facerig_preemptions_total",
			Help: "Total number of in-flight routes discarded by a newer target",
		}),
		segmentsPlayed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "facerig_segments_played_total",
			Help: "Total number of segments played to completion",
		}, []string{"direction"}),
		framesPresented: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "facerig_frames_presented_total",
			Help: "Total number of frames handed to the sink",
		}),
		fetchFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "facerig_fetch_failures_total",
			Help: "Total number of failed sequence fetches",
		}, []string{"path_id"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "facerig_http_requests_total",
			Help: "Total number of sequence API requests",
		}, []string{"code", "method"}),
	}
	m.registry.MustRegister(
		m.routesPlanned, m.routesNotFound, m.preemptions,
		m.segmentsPlayed, m.framesPresented, m.fetchFailures,
		m.httpRequests,
	)
	return m
}

// Handler returns the /metrics scrape handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// InstrumentHandler counts sequence API requests by method and status.
func (m *Metrics) InstrumentHandler(next http.Handler) http.Handler {
	return promhttp.InstrumentHandlerCounter(m.httpRequests, next)
}

// Hooks returns lifecycle callbacks that record metrics and log the
// significant events through logger.
func (m *Metrics) Hooks(logger *slog.Logger) domain.LifecycleHooks {
	if logger == nil {
		logger = slog.Default()
	}
	return domain.LifecycleHooks{
		OnRoutePlanned: func(_ context.Context, e *domain.RouteEvent) {
			m.routesPlanned.Inc()
			logger.Info("route_planned",
				"from", e.From.String(),
				"to", e.To.String(),
				"segments", e.Segments,
			)
		},
		OnRouteNotFound: func(_ context.Context, e *domain.RouteEvent) {
			m.routesNotFound.Inc()
			logger.Warn("route_not_found",
				"from", e.From.String(),
				"to", e.To.String(),
			)
		},
		OnPreempt: func(_ context.Context, e *domain.RouteEvent) {
			m.preemptions.Inc()
			logger.Info("route_preempted",
				"from", e.From.String(),
				"to", e.To.String(),
			)
		},
		OnSegmentEnd: func(_ context.Context, e *domain.SegmentEvent) {
			m.segmentsPlayed.WithLabelValues(string(e.Direction)).Inc()
			logger.Debug("segment_end", "path_id", e.PathID)
		},
		OnFramePresent: func(_ context.Context, e *domain.SegmentEvent) {
			m.framesPresented.Inc()
		},
		OnFetchFailure: func(_ context.Context, e *domain.FetchEvent) {
			m.fetchFailures.WithLabelValues(e.PathID).Inc()
			logger.Warn("fetch_failure", "path_id", e.PathID, "error", e.Err)
		},
	}
}
