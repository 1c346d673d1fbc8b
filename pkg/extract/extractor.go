// Package extract scrapes public eBay listing pages into a short summary of
// title, keywords, and description snippet.
package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"

	"github.com/donaldgifford/ebay-listing-gateway/internal/metrics"
	"github.com/donaldgifford/ebay-listing-gateway/pkg/logger"
	domain "github.com/donaldgifford/ebay-listing-gateway/pkg/types"
)

const (
	defaultUserAgent = "Mozilla/5.0"

	// MaxBodyBytes bounds how much of a listing page is read.
	MaxBodyBytes = 5 << 20

	// SnippetLength is the number of characters kept from the description.
	SnippetLength = 250

	// MaxKeywords caps the keyword list.
	MaxKeywords = 20

	NoTitle       = "No title found"
	NoDescription = "No description available"

	unavailableMessage = "Listing URL not available or removed"

	maxRedirects = 10
)

// DefaultAllowedHosts are the marketplace domains listing URLs may point at.
// Subdomains such as www.ebay.com match their parent entry.
var DefaultAllowedHosts = []string{
	"ebay.com",
	"ebay.co.uk",
	"ebay.ca",
	"ebay.com.au",
	"ebay.de",
	"ebay.fr",
	"ebay.it",
	"ebay.es",
}

var (
	// wordPattern splits text on Unicode word boundaries so that ASCII runs
	// inside accented words are not mistaken for whole words.
	wordPattern    = regexp.MustCompile(`[\p{L}\p{N}_]+`)
	keywordPattern = regexp.MustCompile(`^[a-z]{3,}$`)

	errRedirectNotAllowed = errors.New("redirect target not allowed")

	descriptionSelectors = []string{"div#desc_div", "div#viTabs_0_is"}
)

// ListingExtractor summarizes the listing page at a URL.
type ListingExtractor interface {
	Extract(ctx context.Context, rawURL string) (*domain.ListingExtraction, error)
}

// Extractor implements ListingExtractor over plain HTTP GETs.
type Extractor struct {
	client       *http.Client
	userAgent    string
	allowedHosts []string
	log          *slog.Logger
}

// Option configures the Extractor.
type Option func(*Extractor)

// WithUserAgent overrides the User-Agent sent with page fetches.
func WithUserAgent(ua string) Option {
	return func(e *Extractor) {
		e.userAgent = ua
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(e *Extractor) {
		e.client = c
	}
}

// WithAllowedHosts replaces the host allow-list. An empty list allows any host.
func WithAllowedHosts(hosts ...string) Option {
	return func(e *Extractor) {
		e.allowedHosts = hosts
	}
}

// WithLogger sets the logger used for fetch failures.
func WithLogger(l *slog.Logger) Option {
	return func(e *Extractor) {
		e.log = l
	}
}

// New creates an Extractor restricted to DefaultAllowedHosts.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		client:       &http.Client{Timeout: 10 * time.Second},
		userAgent:    defaultUserAgent,
		allowedHosts: DefaultAllowedHosts,
		log:          logger.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}

	// Every redirect hop is held to the same scheme and host rules as the
	// original URL. The caller's client is copied, not mutated.
	client := *e.client
	next := client.CheckRedirect
	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if err := e.checkRedirect(req, via); err != nil {
			return err
		}
		if next != nil {
			return next(req, via)
		}
		return nil
	}
	e.client = &client

	return e
}

func (e *Extractor) checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return fmt.Errorf("stopped after %d redirects", maxRedirects)
	}
	if req.URL.Scheme != "http" && req.URL.Scheme != "https" {
		return fmt.Errorf("%w: scheme %q", errRedirectNotAllowed, req.URL.Scheme)
	}
	if !e.hostAllowed(req.URL.Hostname()) {
		return fmt.Errorf("%w: host %q", errRedirectNotAllowed, req.URL.Hostname())
	}
	return nil
}

// Extract fetches rawURL and summarizes the page. Pages without a title or
// description still succeed with placeholder text.
func (e *Extractor) Extract(
	ctx context.Context,
	rawURL string,
) (*domain.ListingExtraction, error) {
	target, err := e.validateURL(rawURL)
	if err != nil {
		metrics.ListingFetchesTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}

	doc, err := e.fetch(ctx, target)
	if err != nil {
		metrics.ListingFetchesTotal.WithLabelValues("error").Inc()
		e.log.Warn("listing fetch failed", "host", target.Hostname(), "error", err)
		return nil, err
	}

	metrics.ListingFetchesTotal.WithLabelValues("success").Inc()
	return Summarize(doc), nil
}

// Summarize builds the extraction result from a parsed page.
func Summarize(doc *goquery.Document) *domain.ListingExtraction {
	var found []string

	title := NoTitle
	if h1 := doc.Find("h1").First(); h1.Length() > 0 {
		title = strippedText(h1.Get(0))
		found = append(found, title)
	}

	description := NoDescription
	for _, sel := range descriptionSelectors {
		if div := doc.Find(sel).First(); div.Length() > 0 {
			description = strippedText(div.Get(0))
			found = append(found, description)
			break
		}
	}

	return &domain.ListingExtraction{
		Title:              title,
		Keywords:           Keywords(strings.Join(found, " ")),
		DescriptionSnippet: truncate(description, SnippetLength),
	}
}

// Keywords returns the distinct lowercase alphabetic words of three or more
// letters in text, sorted, at most MaxKeywords of them. It never returns nil.
func Keywords(text string) []string {
	var words []string
	for _, w := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		if keywordPattern.MatchString(w) {
			words = append(words, w)
		}
	}
	slices.Sort(words)
	words = slices.Compact(words)

	if len(words) > MaxKeywords {
		words = words[:MaxKeywords]
	}
	if words == nil {
		return []string{}
	}
	return words
}

func (e *Extractor) validateURL(rawURL string) (*url.URL, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, domain.Validation("url", "Missing URL")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, domain.Validation("url", "Invalid URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, domain.Validation("url", "URL must use http or https")
	}
	if u.Hostname() == "" {
		return nil, domain.Validation("url", "URL must include a host")
	}
	if !e.hostAllowed(u.Hostname()) {
		return nil, domain.Validation("url", "URL host is not an eBay domain")
	}

	return u, nil
}

func (e *Extractor) hostAllowed(host string) bool {
	if len(e.allowedHosts) == 0 {
		return true
	}

	host = strings.ToLower(strings.TrimSuffix(host, "."))
	for _, allowed := range e.allowedHosts {
		allowed = strings.ToLower(allowed)
		if host == allowed || strings.HasSuffix(host, "."+allowed) {
			return true
		}
	}
	return false
}

func (e *Extractor) fetch(ctx context.Context, target *url.URL) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating listing request: %w", err)
	}
	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.client.Do(req)
	if errors.Is(err, errRedirectNotAllowed) {
		return nil, domain.Validation("url", "URL redirects outside eBay domains")
	}
	if err != nil {
		return nil, domain.Fetch(0, unavailableMessage, fmt.Errorf("fetching listing: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, domain.Fetch(
			resp.StatusCode,
			unavailableMessage,
			fmt.Errorf("listing returned status %d", resp.StatusCode),
		)
	}

	body, err := charset.NewReader(
		io.LimitReader(resp.Body, MaxBodyBytes),
		resp.Header.Get("Content-Type"),
	)
	if err != nil {
		return nil, domain.Fetch(
			resp.StatusCode,
			unavailableMessage,
			fmt.Errorf("decoding listing charset: %w", err),
		)
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parsing listing HTML: %w", err)
	}
	return doc, nil
}

// strippedText concatenates the trimmed text nodes under n, skipping
// whitespace-only ones.
func strippedText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(strings.TrimSpace(n.Data))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
