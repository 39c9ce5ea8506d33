// Package wiki looks up airport ICAO codes through the public MediaWiki
// API: search for the airport's article, pick the closest title, and scan
// the article extract for a code declaration.
package wiki

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"github.com/agnivade/levenshtein"
	"github.com/goccy/go-json"
)

// DefaultEndpoint is the English Wikipedia API.
const DefaultEndpoint = "https://en.wikipedia.org/w/api.php"

// maxTitleDistance is the largest folded edit distance at which a search
// result is still considered the article for the queried airport. Measured
// against full titles, so it tolerates suffixes like " (airport)" but not a
// different airport altogether.
const maxTitleDistance = 12

// Client queries the MediaWiki API.
type Client struct {
	endpoint string
	http     *http.Client
}

// New returns a client for the given API endpoint; "" means English
// Wikipedia.
func New(endpoint string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
	}
}

type searchResponse struct {
	Query struct {
		Search []struct {
			Title string `json:"title"`
		} `json:"search"`
	} `json:"query"`
}

type extractResponse struct {
	Query struct {
		Pages map[string]struct {
			Extract string `json:"extract"`
		} `json:"pages"`
	} `json:"query"`
}

// SearchTitles returns the article titles matching a query, in ranking
// order.
func (c *Client) SearchTitles(ctx context.Context, query string) ([]string, error) {
	params := url.Values{
		"action":   {"query"},
		"list":     {"search"},
		"srsearch": {query},
		"srlimit":  {"5"},
		"format":   {"json"},
	}
	var sr searchResponse
	if err := c.get(ctx, params, &sr); err != nil {
		return nil, err
	}
	titles := make([]string, 0, len(sr.Query.Search))
	for _, s := range sr.Query.Search {
		titles = append(titles, s.Title)
	}
	return titles, nil
}

// Extract returns the plain-text intro of an article.
func (c *Client) Extract(ctx context.Context, title string) (string, error) {
	params := url.Values{
		"action":      {"query"},
		"prop":        {"extracts"},
		"exintro":     {"1"},
		"explaintext": {"1"},
		"titles":      {title},
		"format":      {"json"},
	}
	var er extractResponse
	if err := c.get(ctx, params, &er); err != nil {
		return "", err
	}
	for _, page := range er.Query.Pages {
		if page.Extract != "" {
			return page.Extract, nil
		}
	}
	return "", fmt.Errorf("no extract for %q", title)
}

// IcaoForAirport searches for the airport's article and pulls an ICAO code
// out of its intro. Empty result with nil error means Wikipedia did not
// yield a code; the enrichment cascade then moves to its next source.
func (c *Client) IcaoForAirport(ctx context.Context, airport, city, country string) (string, error) {
	query := fmt.Sprintf("%s %s %s", airport, city, country)
	titles, err := c.SearchTitles(ctx, query)
	if err != nil {
		return "", err
	}

	title := PickBestTitle(airport, titles)
	if title == "" {
		return "", nil
	}

	extract, err := c.Extract(ctx, title)
	if err != nil {
		return "", err
	}
	return ExtractICAO(extract), nil
}

func (c *Client) get(ctx context.Context, params url.Values, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", "aerofix/1.0 (airport dataset reconciliation)")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", c.endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: status %d", c.endpoint, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// PickBestTitle chooses the search result closest to the airport name by
// folded edit distance, or "" when nothing is close enough. Ties keep the
// earlier (higher ranked) result.
func PickBestTitle(airport string, titles []string) string {
	want := foldTitle(airport)
	best := ""
	bestDist := maxTitleDistance + 1
	for _, title := range titles {
		dist := levenshtein.ComputeDistance(want, foldTitle(title))
		if dist < bestDist {
			best = title
			bestDist = dist
		}
	}
	return best
}

// icaoPattern matches code declarations like "(IATA: KIV, ICAO: LUKK)" in
// article intros.
var icaoPattern = regexp.MustCompile(`ICAO[:\s]+([A-Z][A-Z0-9]{3})\b`)

// ExtractICAO returns the first declared ICAO code in a text, or "".
func ExtractICAO(text string) string {
	m := icaoPattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}
