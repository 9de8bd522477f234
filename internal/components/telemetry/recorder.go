package telemetry

import (
	"strings"
	"sync"
)

// Report is a single call made to a Recorder.
type Report struct {
	Kind   string
	ID     string
	Params []any
	Count  int64
}

// Recorder is an API that remembers every report made to it, it is meant to be used in
// tests to assert that a component reports what it should.
type Recorder struct {
	mutex   sync.Mutex
	reports []Report
}

func (r *Recorder) record(report Report) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.reports = append(r.reports, report)
}

func (r *Recorder) ReportBroken(id string, params ...any) {
	r.record(Report{Kind: "broken", ID: id, Params: params})
}

func (r *Recorder) ReportWarning(id string, params ...any) {
	r.record(Report{Kind: "warning", ID: id, Params: params})
}

func (r *Recorder) ReportDebug(msg string, params ...any) {
	r.record(Report{Kind: "debug", ID: msg, Params: params})
}

func (r *Recorder) ReportCount(id string, count int64) {
	r.record(Report{Kind: "count", ID: id, Count: count})
}

// Reports returns a copy of every report of the given kind whose id contains `id`.
// An empty kind matches every kind.
func (r *Recorder) Reports(kind, id string) []Report {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	var out []Report
	for _, report := range r.reports {
		if kind != "" && report.Kind != kind {
			continue
		}
		if !strings.Contains(report.ID, id) {
			continue
		}
		out = append(out, report)
	}
	return out
}
