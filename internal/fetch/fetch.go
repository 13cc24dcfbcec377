package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/dgallion1/docsbot/internal/docpath"
	"github.com/dgallion1/docsbot/internal/parser"
	"github.com/dgallion1/docsbot/internal/richtext"
)

// Client retrieves documents from the configured docs host and parses
// them into the rich-text model. It probes exactly one URL per path;
// anything but a 200 means the item does not exist.
type Client struct {
	baseURL    *url.URL
	maxBytes   int64
	parserOpts parser.Options
	httpClient *http.Client
}

func NewClient(baseURL string, maxBytes int64, opts parser.Options) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse docs base url: %w", err)
	}
	return &Client{
		baseURL:    u,
		maxBytes:   maxBytes,
		parserOpts: opts,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// Fetch retrieves and parses the document at path. A missing document
// returns (nil, nil, nil); only transport and parse failures are
// errors. The returned URL is the response's final URL after redirects,
// used as the base for relative links during rendering.
func (c *Client) Fetch(ctx context.Context, path docpath.DocPath) (*richtext.Document, *url.URL, error) {
	u := path.URL(c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, nil
	}

	final := resp.Request.URL
	p, err := parser.ForContentType(resp.Header.Get("Content-Type"), final.Path, c.parserOpts)
	if err != nil {
		return nil, nil, fmt.Errorf("select parser for %s: %w", final, err)
	}

	doc, err := p.Parse(io.LimitReader(resp.Body, c.maxBytes), path.Item())
	if err != nil {
		return nil, nil, fmt.Errorf("parse document %s: %w", final, err)
	}
	return doc, final, nil
}

// Close releases idle connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
