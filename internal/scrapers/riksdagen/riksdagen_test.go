package riksdagen

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"riksvote/internal/components/telemetry"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const votingPage = `<!DOCTYPE html>
<html>
<head><title>Votering</title></head>
<body>
	<div class="header">
		<h1>
			Statens budget 2020
			<span>rambeslut</span>
		</h1>
	</div>
	<h1>Second heading</h1>
</body>
</html>`

func newTestServer(t *testing.T, hits *int64) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/votering/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(hits, 1)

		switch r.URL.Path {
		case "/votering/A1/html":
			w.Header().Set("content-type", "text/html; charset=utf-8")
			w.Write([]byte(votingPage))
		case "/votering/NOH1/html":
			w.Write([]byte("<html><body><p>nothing here</p></body></html>"))
		case "/votering/EMPTY/html":
			w.Write([]byte("<html><body><h1>   </h1></body></html>"))
		default:
			http.NotFound(w, r)
		}
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestClient(t *testing.T, baseUrl string) (Client, *telemetry.Recorder) {
	recorder := &telemetry.Recorder{}
	client, err := NewClient(ClientOptions{BaseUrl: baseUrl}, recorder)
	require.NoError(t, err)
	return client, recorder
}

func TestFetchVotingName(t *testing.T) {
	var hits int64
	server := newTestServer(t, &hits)
	client, _ := newTestClient(t, server.URL)

	name, err := client.FetchVotingName(context.Background(), "A1")
	require.NoError(t, err)
	require.Equal(t, "Statens budget 2020 rambeslut", name)
	require.Equal(t, int64(1), atomic.LoadInt64(&hits))
}

func TestFetchVotingNameFailures(t *testing.T) {
	var hits int64
	server := newTestServer(t, &hits)
	client, recorder := newTestClient(t, server.URL)

	cases := []struct {
		dokID  string
		target error
		status int
	}{
		{dokID: "NOH1", target: ErrNoHeading, status: http.StatusOK},
		{dokID: "EMPTY", target: ErrEmptyHeading, status: http.StatusOK},
		{dokID: "MISSING", target: ErrStatus, status: http.StatusNotFound},
	}

	for _, test := range cases {
		name, err := client.FetchVotingName(context.Background(), test.dokID)
		require.Equal(t, "", name)
		require.ErrorIs(t, err, test.target)

		var ferr *FetchError
		require.True(t, errors.As(err, &ferr))
		require.Equal(t, test.dokID, ferr.DokID)
		require.Equal(t, test.status, ferr.StatusCode)
		require.Equal(t, VotingURL(test.dokID), ferr.URL)
	}

	require.Len(t, recorder.Reports("warning", report_client_fetch_voting_name), len(cases))
	require.Equal(t, int64(len(cases)), atomic.LoadInt64(&hits))
}

func TestFetchVotingNameNetworkError(t *testing.T) {
	var hits int64
	server := newTestServer(t, &hits)
	baseUrl := server.URL
	server.Close()

	client, _ := newTestClient(t, baseUrl)
	_, err := client.FetchVotingName(context.Background(), "A1")

	var ferr *FetchError
	require.ErrorAs(t, err, &ferr)
	require.Equal(t, 0, ferr.StatusCode)
}

func TestFetchVotingNameCancelled(t *testing.T) {
	var hits int64
	server := newTestServer(t, &hits)
	client, _ := newTestClient(t, server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.FetchVotingName(ctx, "A1")
	require.ErrorIs(t, err, context.Canceled)
}

func TestVotingURL(t *testing.T) {
	require.Equal(t, "https://data.riksdagen.se/votering/A1/html", VotingURL("A1"))
	require.Equal(
		t,
		"https://data.riksdagen.se/votering/5F1B7A2C-9E3D-4C1B-8A6F-0D2E3F4A5B6C/html",
		VotingURL("5F1B7A2C-9E3D-4C1B-8A6F-0D2E3F4A5B6C"),
	)
	require.Equal(t, "https://data.riksdagen.se/votering/a%2Fb/html", VotingURL("a/b"))
}

func TestParseVotingName(t *testing.T) {
	name, err := ParseVotingName(strings.NewReader(votingPage))
	require.NoError(t, err)
	require.Equal(t, "Statens budget 2020 rambeslut", name)

	_, err = ParseVotingName(strings.NewReader(""))
	require.ErrorIs(t, err, ErrNoHeading)
}

func TestNewClientInvalidBaseUrl(t *testing.T) {
	_, err := NewClient(ClientOptions{BaseUrl: "not a url"}, &telemetry.Recorder{})
	require.Error(t, err)
}

func TestNewClientNormalizesBaseUrl(t *testing.T) {
	var hits int64
	server := newTestServer(t, &hits)

	client, _ := newTestClient(t, server.URL+"/")
	name, err := client.FetchVotingName(context.Background(), "A1")
	require.NoError(t, err)
	require.Equal(t, "Statens budget 2020 rambeslut", name)
}

func TestFetchVotingNameMaxRate(t *testing.T) {
	var hits int64
	server := newTestServer(t, &hits)

	client, err := NewClient(ClientOptions{BaseUrl: server.URL, MaxRate: 20}, &telemetry.Recorder{})
	require.NoError(t, err)

	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := client.FetchVotingName(context.Background(), "A1")
		require.NoError(t, err)
	}
	// the first request is free, the next two wait 50ms each
	require.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
	require.Equal(t, int64(3), atomic.LoadInt64(&hits))

	_, err = NewClient(ClientOptions{MaxRate: -1}, &telemetry.Recorder{})
	require.Error(t, err)
}
