package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/anime-shed/page-inspector-go/internal/dom"
)

// StaticRenderer fetches HTML over HTTP and answers DOM scripts from the
// parsed document with goquery. It runs no JavaScript and computes no
// layout: element geometry comes from data-rect="left,top,width,height"
// attributes and page height from data-scroll-height on <html> and <body>.
// It serves pages without a browser and replays recorded fixtures in tests.
type StaticRenderer struct {
	client     *http.Client
	attempts   int
	backoff    time.Duration
	userAgent  string
	screenshot []byte
}

// StaticOption configures a StaticRenderer
type StaticOption func(*StaticRenderer)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(c *http.Client) StaticOption {
	return func(r *StaticRenderer) { r.client = c }
}

// WithRetry sets the number of fetch attempts and the base backoff between them
func WithRetry(attempts int, backoff time.Duration) StaticOption {
	return func(r *StaticRenderer) {
		if attempts > 0 {
			r.attempts = attempts
		}
		r.backoff = backoff
	}
}

// WithFixtureScreenshot makes Screenshot return a copy of png
func WithFixtureScreenshot(png []byte) StaticOption {
	return func(r *StaticRenderer) { r.screenshot = append([]byte(nil), png...) }
}

// NewStaticRenderer creates a renderer backed by plain HTTP and goquery
func NewStaticRenderer(opts ...StaticOption) *StaticRenderer {
	r := &StaticRenderer{
		client: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:          10,
				MaxIdleConnsPerHost:   2,
				IdleConnTimeout:       30 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
				ResponseHeaderTimeout: 10 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 5 {
					return fmt.Errorf("too many redirects (limit: 5)")
				}
				return nil
			},
		},
		attempts:  3,
		backoff:   time.Second,
		userAgent: "Page-Inspector/1.0",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewPage returns an empty page; Navigate loads the document
func (r *StaticRenderer) NewPage(ctx context.Context, viewport Viewport) (Page, error) {
	return &staticPage{renderer: r, viewport: viewport}, nil
}

// Close is a no-op; the renderer holds no browser process
func (r *StaticRenderer) Close() error { return nil }

// fetch performs the GET with retries: 4xx fails immediately, 5xx and
// transport errors are retried with linear backoff.
func (r *StaticRenderer) fetch(ctx context.Context, pageURL string) (*http.Response, []byte, error) {
	var lastErr error

	for attempt := 0; attempt < r.attempts; attempt++ {
		if attempt > 0 && r.backoff > 0 {
			select {
			case <-ctx.Done():
				return nil, nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * r.backoff):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid URL: %w", err)
		}
		req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")
		req.Header.Set("User-Agent", r.userAgent)

		resp, err := r.client.Do(req)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				return nil, nil, err
			}
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode >= 400 && resp.StatusCode < 500:
			return nil, nil, fmt.Errorf("client error: status code %d", resp.StatusCode)
		case resp.StatusCode >= 500:
			lastErr = fmt.Errorf("server error: status code %d", resp.StatusCode)
			continue
		case readErr != nil:
			lastErr = fmt.Errorf("read body: %w", readErr)
			continue
		}
		return resp, body, nil
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("unknown error")
	}
	return nil, nil, fmt.Errorf("failed to fetch page after %d attempts: %w", r.attempts, lastErr)
}

type staticPage struct {
	renderer *StaticRenderer
	viewport Viewport

	mu      sync.RWMutex
	doc     *goquery.Document
	base    *url.URL
	headers http.Header
	closed  bool
}

func (p *staticPage) Navigate(ctx context.Context, pageURL string) error {
	resp, body, err := p.renderer.fetch(ctx, pageURL)
	if err != nil {
		return err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("parse html: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.doc = doc
	p.base = resp.Request.URL
	p.headers = resp.Header.Clone()
	return nil
}

func (p *staticPage) ResponseHeaders() http.Header {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.headers.Clone()
}

func (p *staticPage) Evaluate(ctx context.Context, script dom.Script, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var (
		result any
		err    error
	)
	switch script.Name {
	case dom.NameInjectOverlay, dom.NameRemoveOverlay:
		p.mu.Lock()
		result, err = p.mutate(script)
		p.mu.Unlock()
	default:
		p.mu.RLock()
		result, err = p.query(script)
		p.mu.RUnlock()
	}
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}

	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("render: encode %s result: %w", script.Name, err)
	}
	return json.Unmarshal(data, out)
}

func (p *staticPage) query(script dom.Script) (any, error) {
	if p.doc == nil {
		return nil, fmt.Errorf("render: page not navigated")
	}
	switch script.Name {
	case dom.NameContent:
		return p.contentFacts(), nil
	case dom.NameSEO:
		return p.seoFacts(), nil
	case dom.NameTechnical:
		return p.technicalFacts(), nil
	case dom.NameAttention:
		selectors, err := stringsArg(script, 0)
		if err != nil {
			return nil, err
		}
		return p.attentionSnapshot(selectors), nil
	case dom.NameVisibleText:
		return p.visibleText(), nil
	default:
		return nil, fmt.Errorf("render: static renderer cannot run script %q", script.Name)
	}
}

func (p *staticPage) mutate(script dom.Script) (any, error) {
	if p.doc == nil {
		return nil, fmt.Errorf("render: page not navigated")
	}
	if script.Name == dom.NameRemoveOverlay {
		p.doc.Find("#" + dom.OverlayStyleID).Remove()
		points := p.doc.Find("." + dom.OverlayPointClass)
		n := points.Length()
		points.Remove()
		return n, nil
	}

	if len(script.Args) != 2 {
		return nil, fmt.Errorf("render: %s expects css and count", script.Name)
	}
	css, ok := script.Args[0].(string)
	if !ok {
		return nil, fmt.Errorf("render: %s css must be a string", script.Name)
	}
	count, ok := script.Args[1].(int)
	if !ok {
		return nil, fmt.Errorf("render: %s count must be an int", script.Name)
	}

	head := p.doc.Find("head")
	if head.Length() == 0 {
		p.doc.Find("html").PrependHtml("<head></head>")
		head = p.doc.Find("head")
	}
	style := fmt.Sprintf(`<style id="%s">%s</style>`, dom.OverlayStyleID, css)
	head.AppendHtml(style)

	var b strings.Builder
	for i := 0; i < count; i++ {
		fmt.Fprintf(&b, `<div class="%s %s-%d"></div>`, dom.OverlayPointClass, dom.OverlayPointClass, i)
	}
	p.doc.Find("body").AppendHtml(b.String())
	return count, nil
}

func (p *staticPage) Screenshot(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.renderer.screenshot == nil {
		return nil, ErrScreenshotUnsupported
	}
	return append([]byte(nil), p.renderer.screenshot...), nil
}

func (p *staticPage) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return fmt.Errorf("render: page already closed")
	}
	p.closed = true
	p.doc = nil
	return nil
}

func (p *staticPage) origin() string {
	if p.base == nil {
		return ""
	}
	return p.base.Scheme + "://" + p.base.Host
}

func (p *staticPage) resolve(href string) string {
	if p.base == nil {
		return href
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return href
	}
	return p.base.ResolveReference(ref).String()
}

func (p *staticPage) links() []string {
	links := make([]string, 0)
	p.doc.Find("a").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			links = append(links, "")
			return
		}
		links = append(links, p.resolve(href))
	})
	return links
}

func (p *staticPage) images() dom.ImageFacts {
	imgs := p.doc.Find("img")
	return dom.ImageFacts{
		Total:   imgs.Length(),
		WithAlt: imgs.Filter("[alt]").Length(),
	}
}

func (p *staticPage) visibleText() string {
	body := p.doc.Find("body").Clone()
	body.Find("script, style, noscript, template").Remove()
	return strings.Join(strings.Fields(body.Text()), " ")
}

func (p *staticPage) contentFacts() dom.ContentFacts {
	headings := make([]dom.Heading, 0)
	p.doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		level, _ := strconv.Atoi(strings.TrimPrefix(goquery.NodeName(s), "h"))
		headings = append(headings, dom.Heading{
			Level: level,
			Text:  strings.Join(strings.Fields(s.Text()), " "),
		})
	})

	var size int64
	if html, err := p.doc.Html(); err == nil {
		size = int64(len(html))
	}

	return dom.ContentFacts{
		WordCount: dom.CountWords(p.visibleText()),
		Headings:  headings,
		Images:    p.images(),
		Links:     p.links(),
		Origin:    p.origin(),
		HTMLSize:  size,
	}
}

func (p *staticPage) seoFacts() dom.SEOFacts {
	facts := dom.SEOFacts{
		Title:   strings.Join(strings.Fields(p.doc.Find("title").First().Text()), " "),
		H1Count: p.doc.Find("h1").Length(),
		Images:  p.images(),
		Links:   p.links(),
		Origin:  p.origin(),
	}
	if meta := p.doc.Find(`meta[name="description"]`).First(); meta.Length() > 0 {
		if content, ok := meta.Attr("content"); ok {
			facts.MetaDescription = &content
		}
	}
	return facts
}

func (p *staticPage) technicalFacts() dom.TechnicalFacts {
	facts := dom.TechnicalFacts{
		Globals:           []string{},
		ScriptSrcs:        []string{},
		MetaHTTPEquiv:     []dom.MetaHTTPEquiv{},
		RolesMissingLabel: []string{},
		ImagesWithoutAlt:  p.doc.Find("img:not([alt])").Length(),
		H1Count:           p.doc.Find("h1").Length(),
		ResourceCount:     p.doc.Find(`img, script, link[rel="stylesheet"], video, audio`).Length(),
	}
	if p.base != nil {
		facts.Protocol = p.base.Scheme + ":"
	}
	p.doc.Find("script[src]").Each(func(_ int, s *goquery.Selection) {
		facts.ScriptSrcs = append(facts.ScriptSrcs, s.AttrOr("src", ""))
	})
	p.doc.Find("meta[http-equiv]").Each(func(_ int, s *goquery.Selection) {
		facts.MetaHTTPEquiv = append(facts.MetaHTTPEquiv, dom.MetaHTTPEquiv{
			HTTPEquiv: s.AttrOr("http-equiv", ""),
			Content:   s.AttrOr("content", ""),
		})
	})
	p.doc.Find("[role]").Each(func(_ int, s *goquery.Selection) {
		if _, ok := s.Attr("aria-label"); !ok {
			facts.RolesMissingLabel = append(facts.RolesMissingLabel, s.AttrOr("role", ""))
		}
	})
	return facts
}

func (p *staticPage) attentionSnapshot(selectors []string) dom.AttentionSnapshot {
	snap := dom.AttentionSnapshot{
		ViewportWidth:        float64(p.viewport.Width),
		ViewportHeight:       float64(p.viewport.Height),
		DocumentScrollHeight: attrFloat(p.doc.Find("html").First(), "data-scroll-height"),
		BodyScrollHeight:     attrFloat(p.doc.Find("body").First(), "data-scroll-height"),
		Elements:             make([]dom.Element, 0),
	}
	for _, selector := range selectors {
		p.doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			el := dom.Element{Tag: goquery.NodeName(s)}
			_, hasAria := s.Attr("aria-label")
			_, hasAlt := s.Attr("alt")
			el.HasLabel = hasAria || hasAlt
			if rect, ok := s.Attr("data-rect"); ok {
				el.Left, el.Top, el.Width, el.Height = parseRect(rect)
			}
			snap.Elements = append(snap.Elements, el)
		})
	}
	return snap
}

func parseRect(s string) (left, top, width, height float64) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return 0, 0, 0, 0
	}
	vals := make([]float64, 4)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return 0, 0, 0, 0
		}
		vals[i] = v
	}
	return vals[0], vals[1], vals[2], vals[3]
}

func attrFloat(s *goquery.Selection, name string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s.AttrOr(name, "")), 64)
	if err != nil {
		return 0
	}
	return v
}

func stringsArg(script dom.Script, i int) ([]string, error) {
	if len(script.Args) <= i {
		return nil, fmt.Errorf("render: %s missing argument %d", script.Name, i)
	}
	values, ok := script.Args[i].([]string)
	if !ok {
		return nil, fmt.Errorf("render: %s argument %d must be []string", script.Name, i)
	}
	return values, nil
}
