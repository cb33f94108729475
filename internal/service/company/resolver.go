package company

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	companyModel "github.com/ChaiWithJai/gtm-agent/internal/model/company"
)

// Resolver turns a product URL into normalized company facts. May fail
// or time out; callers degrade to the free-text path instead of aborting.
type Resolver interface {
	Resolve(ctx context.Context, rawURL string) (companyModel.Context, error)
}

// DefaultTimeout bounds one resolution attempt.
const DefaultTimeout = 10 * time.Second

// WebResolver fetches the page and extracts name, description and key
// features from the markup.
type WebResolver struct {
	client *resty.Client
}

// NewWebResolver builds a resolver with a bounded request timeout.
func NewWebResolver(timeout time.Duration) *WebResolver {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	client := resty.New()
	client.SetTimeout(timeout)
	client.SetHeader("User-Agent", "Mozilla/5.0 (compatible; GTMAgent/1.0)")
	client.SetHeader("Accept", "text/html,application/xhtml+xml")
	client.SetRedirectPolicy(resty.FlexibleRedirectPolicy(5))

	return &WebResolver{client: client}
}

// Resolve fetches the URL and scrapes product facts out of the page.
func (r *WebResolver) Resolve(ctx context.Context, rawURL string) (companyModel.Context, error) {
	normalized, err := normalizeURL(rawURL)
	if err != nil {
		return companyModel.Context{}, err
	}

	resp, err := r.client.R().SetContext(ctx).Get(normalized)
	if err != nil {
		return companyModel.Context{}, fmt.Errorf("fetch %s: %w", normalized, err)
	}
	if resp.StatusCode() != 200 {
		return companyModel.Context{}, fmt.Errorf("fetch %s: HTTP %d", normalized, resp.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.String()))
	if err != nil {
		return companyModel.Context{}, fmt.Errorf("parse %s: %w", normalized, err)
	}

	return companyModel.Context{
		Name:        extractName(doc, normalized),
		Description: extractDescription(doc),
		Features:    extractFeatures(doc),
		SourceURL:   normalized,
	}, nil
}

// normalizeURL defaults the scheme to https and rejects anything that is
// not a plain http(s) address.
func normalizeURL(rawURL string) (string, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return "", fmt.Errorf("empty url")
	}
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		trimmed = "https://" + trimmed
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("invalid url %q: %w", rawURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("invalid url %q: missing host", rawURL)
	}
	return parsed.String(), nil
}

// extractName prefers the page title, falling back to the domain label.
func extractName(doc *goquery.Document, pageURL string) string {
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title != "" {
		for _, suffix := range []string{" - Home", " | Home", " - Official", " | Official"} {
			title = strings.TrimSuffix(title, suffix)
		}
		for _, sep := range []string{"|", " - "} {
			if idx := strings.Index(title, sep); idx > 0 {
				title = title[:idx]
			}
		}
		return strings.TrimSpace(title)
	}

	parsed, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	domain := strings.TrimPrefix(parsed.Hostname(), "www.")
	label, _, _ := strings.Cut(domain, ".")
	if label == "" {
		return ""
	}
	return strings.ToUpper(label[:1]) + label[1:]
}

func extractDescription(doc *goquery.Document) string {
	if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		if trimmed := strings.TrimSpace(desc); trimmed != "" {
			return trimmed
		}
	}
	if desc, ok := doc.Find(`meta[property="og:description"]`).Attr("content"); ok {
		return strings.TrimSpace(desc)
	}
	return ""
}

var skipHeadingWords = []string{"contact", "about us", "footer", "menu", "navigation"}

// extractFeatures picks up to five feature-looking h2/h3 headings.
func extractFeatures(doc *goquery.Document) []string {
	features := make([]string, 0, 5)
	doc.Find("h2, h3").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if i >= 10 || len(features) >= 5 {
			return false
		}
		text := strings.TrimSpace(sel.Text())
		if len(text) <= 5 || len(text) >= 100 {
			return true
		}
		lower := strings.ToLower(text)
		for _, skip := range skipHeadingWords {
			if strings.Contains(lower, skip) {
				return true
			}
		}
		features = append(features, text)
		return true
	})
	return features
}
