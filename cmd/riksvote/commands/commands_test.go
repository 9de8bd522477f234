package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"riksvote/internal/dataset"
	"riksvote/internal/enrich"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	missing, err := LoadConfig(filepath.Join(dir, "missing.json5"))
	require.NoError(t, err)
	require.Equal(t, defaultConfig(), missing)

	path := filepath.Join(dir, "riksvote.json5")
	require.NoError(t, os.WriteFile(path, []byte(`{
		// comments are fine
		input: "in.csv",
		delay: "250ms",
	}`), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "riksvote.local.json5"), []byte(`{cache: "names.db"}`), 0600))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)

	expected := defaultConfig()
	expected.Input = "in.csv"
	expected.Delay = "250ms"
	expected.Cache = "names.db"
	if diff := cmp.Diff(expected, loaded); diff != "" {
		t.Fatal(diff)
	}
}

func TestResolveEnrichSettings(t *testing.T) {
	c := defaultConfig()

	s, err := resolveEnrichSettings(c, EnrichFlags{})
	require.NoError(t, err)
	require.Equal(t, c.Input, s.Input)
	require.Equal(t, c.Output, s.Output)
	require.Equal(t, time.Second, s.Delay)
	require.Equal(t, 30*time.Second, s.Timeout)
	require.Equal(t, 2.0, s.MaxRate)

	s, err = resolveEnrichSettings(c, EnrichFlags{In: "a.csv", Out: "b.csv", Delay: "0s", Cache: "c.db"})
	require.NoError(t, err)
	require.Equal(t, "a.csv", s.Input)
	require.Equal(t, "b.csv", s.Output)
	require.Equal(t, time.Duration(0), s.Delay)
	require.Equal(t, "c.db", s.Cache)

	c.Timeout = "0s"
	c.MaxRate = -1
	s, err = resolveEnrichSettings(c, EnrichFlags{})
	require.NoError(t, err)
	require.Less(t, s.Timeout, time.Duration(0))
	require.Equal(t, 0.0, s.MaxRate)

	_, err = resolveEnrichSettings(defaultConfig(), EnrichFlags{Delay: "-1s"})
	require.Error(t, err)
	_, err = resolveEnrichSettings(defaultConfig(), EnrichFlags{Delay: "soon"})
	require.Error(t, err)

	noOutput := defaultConfig()
	noOutput.Output = ""
	_, err = resolveEnrichSettings(noOutput, EnrichFlags{})
	require.Error(t, err)
}

func TestRunEnrich(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/votering/A1/html":
			fmt.Fprint(w, "<html><body><h1>Vote One</h1></body></html>")
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	dir := t.TempDir()
	input := filepath.Join(dir, "votes.csv")
	output := filepath.Join(dir, "votes-enriched.csv")
	require.NoError(t, os.WriteFile(input, []byte(
		"dok_id,parti,rost,datum\n"+
			"A1,s,Ja,2020-01-01\n"+
			"A1,m,Nej,2020-01-01\n"+
			"B2,s,Ja,2020-02-02\n",
	), 0644))

	settings := enrichSettings{
		Input:   input,
		Output:  output,
		BaseUrl: server.URL,
		Cache:   filepath.Join(dir, "names.db"),
	}
	report, err := runEnrich(context.Background(), settings)
	require.NoError(t, err)
	require.Equal(t, 3, report.Rows)
	require.Equal(t, 2, report.Total)
	require.Equal(t, 1, report.Resolved)
	require.Equal(t, []string{"B2"}, report.Unresolved())

	events, err := dataset.LoadEvents(output)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, "Vote One", events[0].Name)
	require.Equal(t, "https://data.riksdagen.se/votering/A1/html", events[0].URL)
	require.Equal(t, "", events[1].Name)

	// A1 now comes from the cache.
	report, err = runEnrich(context.Background(), settings)
	require.NoError(t, err)
	require.Equal(t, 1, report.Cached)
	require.Equal(t, 0, report.Resolved)

	settings.Output = input
	_, err = runEnrich(context.Background(), settings)
	require.True(t, errors.Is(err, enrich.ErrSameFile))

	var out bytes.Buffer
	printReport(&out, report)
	require.Contains(t, out.String(), "Unresolved")
	require.Contains(t, out.String(), "B2")
	require.True(t, strings.Contains(out.String(), output))
}

func TestExclusiveSkipsOverlappingRuns(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var calls int32

	run := exclusive(func() {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(started)
			<-release
		}
	})

	done := make(chan struct{})
	go func() {
		run()
		close(done)
	}()
	<-started

	// skipped while the first run is blocked
	run()
	require.Equal(t, int32(1), atomic.LoadInt32(&calls))

	close(release)
	<-done

	run()
	require.Equal(t, int32(2), atomic.LoadInt32(&calls))
}
