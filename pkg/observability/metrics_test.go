package observability

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miriamsimone/video-generation-pipeline/pkg/domain"
)

func TestMetrics_HooksRecordCounts(t *testing.T) {
	m := NewMetrics()
	hooks := m.Hooks(nil)
	ctx := context.Background()

	hooks.OnRoutePlanned(ctx, &domain.RouteEvent{Segments: 2})
	hooks.OnRoutePlanned(ctx, &domain.RouteEvent{Segments: 1})
	hooks.OnRouteNotFound(ctx, &domain.RouteEvent{})
	hooks.OnPreempt(ctx, &domain.RouteEvent{})
	hooks.OnSegmentEnd(ctx, &domain.SegmentEvent{PathID: "neutral_to_blink__center", Direction: domain.Forward})
	hooks.OnSegmentEnd(ctx, &domain.SegmentEvent{PathID: "neutral_to_blink__center", Direction: domain.Backward})
	hooks.OnFramePresent(ctx, &domain.SegmentEvent{})
	hooks.OnFetchFailure(ctx, &domain.FetchEvent{PathID: "x_to_y__center", Err: errors.New("boom")})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.routesPlanned))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.routesNotFound))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.preemptions))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.segmentsPlayed.WithLabelValues("forward")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.segmentsPlayed.WithLabelValues("backward")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.framesPresented))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.fetchFailures.WithLabelValues("x_to_y__center")))
}

func TestMetrics_HandlerServesScrape(t *testing.T) {
	m := NewMetrics()
	m.Hooks(nil).OnRoutePlanned(context.Background(), &domain.RouteEvent{})

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "facerig_routes_planned_total 1")
}
