package telemetry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScopedAPI(t *testing.T) {
	recorder := &Recorder{}
	scoped := NewScopedAPI("enrich", recorder)

	scoped.ReportBroken("pipeline.run", "disk full")
	scoped.ReportWarning("pipeline.fetch", "H1")
	scoped.ReportCount("pipeline.resolved", 3)

	broken := recorder.Reports("broken", "")
	require.Len(t, broken, 1)
	require.Equal(t, "enrich: pipeline.run", broken[0].ID)
	require.Equal(t, []any{"disk full"}, broken[0].Params)

	warnings := recorder.Reports("warning", "pipeline.fetch")
	require.Len(t, warnings, 1)

	counts := recorder.Reports("count", "resolved")
	require.Len(t, counts, 1)
	require.Equal(t, int64(3), counts[0].Count)

	require.Len(t, recorder.Reports("", "enrich:"), 3)
}

func TestScopedAPIRequiresNamespace(t *testing.T) {
	require.Panics(t, func() {
		NewScopedAPI("", &Recorder{})
	})
	require.Panics(t, func() {
		NewScopedAPI("enrich", nil)
	})
}

func TestNestedScopes(t *testing.T) {
	recorder := &Recorder{}
	scoped := NewScopedAPI("inner", NewScopedAPI("outer", recorder))
	scoped.ReportDebug("hello")

	reports := recorder.Reports("debug", "")
	require.Len(t, reports, 1)
	require.Equal(t, "outer: inner: hello", reports[0].ID)
}
