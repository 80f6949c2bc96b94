package dom

// Script names. Renderers that cannot run JavaScript dispatch on them.
const (
	NameContent       = "content"
	NameSEO           = "seo"
	NameTechnical     = "technical"
	NameAttention     = "attention"
	NameInjectOverlay = "inject_overlay"
	NameRemoveOverlay = "remove_overlay"
	NameVisibleText   = "visible_text"
)

// OverlayStyleID and OverlayPointClass identify the markup injected by InjectOverlay.
const (
	OverlayStyleID    = "heatmap-overlay-styles"
	OverlayPointClass = "heatmap-point"
)

// Script is a DOM routine. Source is a JavaScript function expression that
// receives Args and returns a JSON string.
type Script struct {
	Name   string
	Source string
	Args   []any
}

// ContentScript counts words, headings, images and links.
func ContentScript() Script {
	return Script{Name: NameContent, Source: contentJS}
}

// SEOScript reads the title, meta description, H1 count, images and links.
func SEOScript() Script {
	return Script{Name: NameSEO, Source: seoJS}
}

// TechnicalScript checks the given window globals and collects technology,
// accessibility and security signals.
func TechnicalScript(globals []string) Script {
	return Script{Name: NameTechnical, Source: technicalJS, Args: []any{globals}}
}

// Attention measures every element matched by selectors, in selector order.
func Attention(selectors []string) Script {
	return Script{Name: NameAttention, Source: attentionJS, Args: []any{selectors}}
}

// InjectOverlay appends the overlay stylesheet and count point elements
// (classes "heatmap-point heatmap-point-<i>") to the document.
func InjectOverlay(css string, count int) Script {
	return Script{Name: NameInjectOverlay, Source: injectOverlayJS, Args: []any{css, count}}
}

// RemoveOverlay removes everything InjectOverlay added and returns the
// number of point elements removed.
func RemoveOverlay() Script {
	return Script{Name: NameRemoveOverlay, Source: removeOverlayJS}
}

// VisibleText returns the rendered text of the body.
func VisibleText() Script {
	return Script{Name: NameVisibleText, Source: visibleTextJS}
}

const contentJS = `() => {
  const headings = Array.from(document.querySelectorAll('h1, h2, h3, h4, h5, h6')).map((h) => ({
    level: Number(h.tagName.substring(1)),
    text: (h.innerText || h.textContent || '').trim(),
  }));
  const images = Array.from(document.querySelectorAll('img'));
  const text = document.body ? document.body.innerText : '';
  const html = document.documentElement.outerHTML;
  return JSON.stringify({
    wordCount: text.split(/\s+/).length,
    headings,
    images: { total: images.length, withAlt: images.filter((img) => img.hasAttribute('alt')).length },
    links: Array.from(document.querySelectorAll('a')).map((a) => a.href || ''),
    origin: window.location.origin,
    htmlSize: new Blob([html]).size,
  });
}`

const seoJS = `() => {
  const meta = document.querySelector('meta[name="description"]');
  const images = Array.from(document.querySelectorAll('img'));
  return JSON.stringify({
    title: document.title || '',
    metaDescription: meta ? meta.getAttribute('content') : null,
    h1Count: document.querySelectorAll('h1').length,
    images: { total: images.length, withAlt: images.filter((img) => img.hasAttribute('alt')).length },
    links: Array.from(document.querySelectorAll('a')).map((a) => a.href || ''),
    origin: window.location.origin,
  });
}`

const technicalJS = `(globals) => {
  return JSON.stringify({
    globals: globals.filter((name) => !!window[name]),
    scriptSrcs: Array.from(document.querySelectorAll('script[src]')).map((s) => s.getAttribute('src') || ''),
    protocol: window.location.protocol,
    metaHttpEquiv: Array.from(document.querySelectorAll('meta[http-equiv]')).map((m) => ({
      httpEquiv: m.getAttribute('http-equiv') || '',
      content: m.getAttribute('content') || '',
    })),
    imagesWithoutAlt: document.querySelectorAll('img:not([alt])').length,
    h1Count: document.querySelectorAll('h1').length,
    rolesMissingLabel: Array.from(document.querySelectorAll('[role]'))
      .filter((el) => !el.hasAttribute('aria-label'))
      .map((el) => el.getAttribute('role') || ''),
    resourceCount: document.querySelectorAll('img, script, link[rel="stylesheet"], video, audio').length,
  });
}`

const attentionJS = `(selectors) => {
  const elements = [];
  selectors.forEach((selector) => {
    document.querySelectorAll(selector).forEach((el) => {
      const rect = el.getBoundingClientRect();
      elements.push({
        tag: el.tagName.toLowerCase(),
        hasLabel: el.hasAttribute('aria-label') || el.hasAttribute('alt'),
        left: rect.left,
        top: rect.top,
        width: rect.width,
        height: rect.height,
      });
    });
  });
  return JSON.stringify({
    viewportWidth: window.innerWidth,
    viewportHeight: window.innerHeight,
    documentScrollHeight: document.documentElement.scrollHeight,
    bodyScrollHeight: document.body ? document.body.scrollHeight : 0,
    elements,
  });
}`

const injectOverlayJS = `(css, count) => {
  const style = document.createElement('style');
  style.id = 'heatmap-overlay-styles';
  style.textContent = css;
  document.head.appendChild(style);
  for (let i = 0; i < count; i++) {
    const div = document.createElement('div');
    div.className = 'heatmap-point heatmap-point-' + i;
    document.body.appendChild(div);
  }
  return JSON.stringify(count);
}`

const removeOverlayJS = `() => {
  const style = document.getElementById('heatmap-overlay-styles');
  if (style) style.remove();
  const points = document.querySelectorAll('.heatmap-point');
  points.forEach((p) => p.remove());
  return JSON.stringify(points.length);
}`

const visibleTextJS = `() => JSON.stringify(document.body ? document.body.innerText : '')`
