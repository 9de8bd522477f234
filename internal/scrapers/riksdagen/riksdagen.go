// Package riksdagen scrapes voting pages from data.riksdagen.se.
package riksdagen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"riksvote/internal/components/assert"
	"riksvote/internal/components/telemetry"
	"riksvote/pkg/htmlutil"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/PuerkitoBio/purell"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const (
	report_client_fetch_voting_name = "client.fetch-voting-name"
)

// DefaultBaseUrl is where the canonical voting pages live.
const DefaultBaseUrl = "https://data.riksdagen.se"

// DefaultTimeout applies to a single page request.
const DefaultTimeout = 30 * time.Second

// VotingURL returns the canonical url of the page describing the voting event dokID.
func VotingURL(dokID string) string {
	return fmt.Sprintf("%s/votering/%s/html", DefaultBaseUrl, url.PathEscape(dokID))
}

var (
	ErrStatus       = errors.New("unexpected response status")
	ErrNoHeading    = errors.New("no <h1> in voting page")
	ErrEmptyHeading = errors.New("empty <h1> in voting page")
)

// FetchError is returned when the name of a single voting event could not be resolved.
type FetchError struct {
	DokID string
	URL   string
	// StatusCode is 0 when no response was received.
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch voting %s (%s): %d: %s", e.DokID, e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch voting %s (%s): %s", e.DokID, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

type ClientOptions struct {
	// BaseUrl defaults to DefaultBaseUrl.
	BaseUrl string
	// Timeout defaults to DefaultTimeout, a negative value disables it.
	Timeout time.Duration
	// MaxRate caps the requests sent per second regardless of the caller, zero means no cap.
	MaxRate float64
	// Output receives a dump of every http exchange when not nil.
	Output telemetry.MessageOutput
}

// Client fetches voting pages, it makes exactly one request per call and never retries.
type Client struct {
	http *resty.Client
	tel  telemetry.API
}

func NewClient(opts ClientOptions, tel telemetry.API) (Client, error) {
	assert.NotNil(tel)

	tel = telemetry.NewScopedAPI("riksdagen_scraper", tel)

	baseUrl := opts.BaseUrl
	if baseUrl == "" {
		baseUrl = DefaultBaseUrl
	}
	baseUrl, err := purell.NormalizeURLString(
		baseUrl,
		purell.FlagsSafe|purell.FlagRemoveTrailingSlash|purell.FlagRemoveDotSegments,
	)
	if err != nil {
		return Client{}, err
	}
	parsedBaseUrl, err := url.Parse(baseUrl)
	if err != nil {
		return Client{}, err
	}
	if parsedBaseUrl.Scheme == "" || parsedBaseUrl.Host == "" {
		return Client{}, fmt.Errorf("invalid base url %q", baseUrl)
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	httpClient := resty.New()
	httpClient.SetBaseURL(baseUrl)
	httpClient.SetHeader("user-agent", "riksvote/1.0")
	httpClient.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(parsedBaseUrl.Hostname()))
	if timeout > 0 {
		httpClient.SetTimeout(timeout)
	}

	if opts.MaxRate < 0 {
		return Client{}, fmt.Errorf("negative max rate %v", opts.MaxRate)
	}
	if opts.MaxRate > 0 {
		// max burst of 1 keeps requests evenly spaced
		rateLimiter := rate.NewLimiter(rate.Limit(opts.MaxRate), 1)
		httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			return rateLimiter.Wait(req.Context())
		})
	}

	telemetry.InstrumentResty(httpClient, tel, opts.Output)

	return Client{
		http: httpClient,
		tel:  tel,
	}, nil
}

// FetchVotingName requests the voting page of dokID and returns the text of its first <h1>.
// Every failure is returned as a *FetchError.
func (c Client) FetchVotingName(ctx context.Context, dokID string) (string, error) {
	fetchError := func(status int, err error) error {
		return &FetchError{
			DokID:      dokID,
			URL:        VotingURL(dokID),
			StatusCode: status,
			Err:        err,
		}
	}

	res, err := c.http.R().
		SetContext(ctx).
		SetPathParam("dok_id", dokID).
		Get("/votering/{dok_id}/html")
	if err != nil {
		c.tel.ReportWarning(report_client_fetch_voting_name, dokID, fmt.Errorf("fetch: %w", err))
		return "", fetchError(0, err)
	}
	if !res.IsSuccess() {
		c.tel.ReportWarning(report_client_fetch_voting_name, dokID, res.Status())
		return "", fetchError(res.StatusCode(), ErrStatus)
	}

	name, err := ParseVotingName(bytes.NewReader(res.Body()))
	if err != nil {
		c.tel.ReportWarning(report_client_fetch_voting_name, dokID, err)
		return "", fetchError(res.StatusCode(), err)
	}

	c.tel.ReportDebug("resolved voting name", dokID, name)
	return name, nil
}

// ParseVotingName extracts the voting name from a voting page, it is the whitespace
// normalized text of the first <h1> element.
func ParseVotingName(body io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	heading := doc.Find("h1").First()
	if len(heading.Nodes) == 0 {
		return "", ErrNoHeading
	}

	name := htmlutil.NormalizeText(htmlutil.GetText(heading.Nodes[0]))
	if name == "" {
		return "", ErrEmptyHeading
	}
	return name, nil
}
