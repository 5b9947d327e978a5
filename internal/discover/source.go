// Package discover resolves and downloads the newest published bulletin of
// each variant from the regulator's year-suffixed publication pages.
package discover

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"

	"licencewatch/internal/config"
	"licencewatch/internal/domain"
	"licencewatch/internal/port"
)

// needles are the href substrings that identify a bulletin link per variant,
// matched case-insensitively against every anchor on the listing page.
var needles = map[domain.Variant]string{
	domain.VariantStandard:       "marketing_authorisations_granted",
	domain.VariantParallelImport: "parallel_import_licences_granted",
}

// HTTPSource implements port.DocumentSource over plain HTTP.
type HTTPSource struct {
	client   *http.Client
	listings map[domain.Variant]string
}

// NewHTTPSource builds a source from harvest configuration. Listing URLs
// get the publication year appended, matching how the regulator names its
// pages.
func NewHTTPSource(cfg *config.HarvestConfig) *HTTPSource {
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	year := cfg.ListingYear()
	return &HTTPSource{
		client: &http.Client{Timeout: timeout},
		listings: map[domain.Variant]string{
			domain.VariantStandard:       cfg.StandardListingURL + year,
			domain.VariantParallelImport: cfg.ParallelImportListingURL + year,
		},
	}
}

var _ port.DocumentSource = (*HTTPSource)(nil)

// LatestBulletinURL fetches the variant's listing page and returns the
// first anchor whose href matches the variant needle. The regulator lists
// bulletins newest-first, so the first match is the latest release.
func (s *HTTPSource) LatestBulletinURL(ctx context.Context, variant domain.Variant) (string, error) {
	listing, ok := s.listings[variant]
	if !ok {
		return "", fmt.Errorf("no listing configured for variant %s", variant)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, listing, nil)
	if err != nil {
		return "", fmt.Errorf("building listing request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching listing page %s: %w", listing, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("listing page %s returned status %d", listing, resp.StatusCode)
	}

	href, err := firstMatchingAnchor(resp.Body, needles[variant])
	if err != nil {
		return "", fmt.Errorf("parsing listing page %s: %w", listing, err)
	}
	if href == "" {
		return "", fmt.Errorf("%s on %s: %w", variant, listing, domain.ErrNoBulletinFound)
	}

	return resolveHref(listing, href)
}

// Fetch downloads the document at rawURL.
func (s *HTTPSource) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building download request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download %s returned status %d", rawURL, resp.StatusCode)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", rawURL, err)
	}
	return content, nil
}

// firstMatchingAnchor walks the document's anchor tags in order and returns
// the href of the first one containing needle, or "".
func firstMatchingAnchor(r io.Reader, needle string) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", err
	}

	var walk func(n *html.Node) string
	walk = func(n *html.Node) string {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key == "href" && strings.Contains(strings.ToLower(attr.Val), needle) {
					return attr.Val
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if href := walk(c); href != "" {
				return href
			}
		}
		return ""
	}
	return walk(doc), nil
}

// resolveHref makes a possibly-relative href absolute against the page URL.
func resolveHref(pageURL, href string) (string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("parsing page url: %w", err)
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("parsing href %q: %w", href, err)
	}
	return base.ResolveReference(ref).String(), nil
}
