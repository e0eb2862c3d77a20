package thml2epub

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Content is the output of the Tree Transformer: the document body
// rewritten into the XHTML vocabulary, plus extracted metadata.
type Content struct {
	// Title is the extracted book title. Empty when the source carries
	// neither Dublin Core metadata nor a heading; BuildPackage applies
	// the filename fallback in that case.
	Title string

	// Body is the inner markup of the transformed document body, ready
	// for embedding into a content document.
	Body string

	// Meta holds the Dublin Core metadata harvested from the ThML head.
	Meta Meta

	// Warnings lists non-fatal oddities encountered during
	// transformation, such as tags passed through unrecognized.
	Warnings []string
}

// transformer carries the per-run state of a Transform call.
type transformer struct {
	dc       []dcEntry
	warnings []string
	unknown  map[string]bool
}

// Transform rewrites the parsed document into e-book content.
//
// Recognized ThML constructs are mapped per tagRules; unrecognized tags
// pass through unchanged, so transformation never fails on unknown
// markup. It returns ErrTransform only when no body content remains.
func Transform(doc *Document) (*Content, error) {
	if doc == nil || doc.Root == nil {
		return nil, fmt.Errorf("thml2epub: nil document: %w", ErrTransform)
	}

	body := findElement(doc.Root, atom.Body)
	if body == nil {
		return nil, fmt.Errorf("thml2epub: %s: document has no body: %w", doc.Name, ErrTransform)
	}

	t := &transformer{unknown: make(map[string]bool)}
	out := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	t.walkChildren(body, out)

	if !hasRenderableContent(out) {
		return nil, fmt.Errorf("thml2epub: %s: no content after transformation: %w", doc.Name, ErrTransform)
	}

	inner, err := renderChildren(out)
	if err != nil {
		return nil, fmt.Errorf("thml2epub: %s: render body: %v: %w", doc.Name, err, ErrTransform)
	}

	meta := buildMeta(t.dc, t.warn)

	title := meta.primaryTitle()
	if title == "" {
		title = firstHeadingText(doc.Root)
	}

	return &Content{
		Title:    title,
		Body:     inner,
		Meta:     meta,
		Warnings: t.warnings,
	}, nil
}

// warn records a non-fatal warning.
func (t *transformer) warn(format string, args ...any) {
	t.warnings = append(t.warnings, fmt.Sprintf(format, args...))
}

// walkChildren transforms every child of in, appending results to outParent.
func (t *transformer) walkChildren(in, outParent *html.Node) {
	for c := in.FirstChild; c != nil; c = c.NextSibling {
		t.walk(c, outParent)
	}
}

// walk transforms a single node. Elements are handled per tagRules; text
// is copied; comments and doctypes are dropped.
func (t *transformer) walk(in, outParent *html.Node) {
	switch in.Type {
	case html.TextNode:
		outParent.AppendChild(&html.Node{Type: html.TextNode, Data: in.Data})
		return
	case html.ElementNode:
		// handled below
	default:
		return
	}

	// Constructs with behavior beyond a table entry.
	switch in.Data {
	case "thml.head":
		// Metadata container: harvest, never rendered.
		t.collectHead(in)
		return
	case "dc":
		t.collectDC(in)
		return
	case "title":
		// Supplies the book title; not body content.
		return
	case "style":
		// Only genuine CSS survives; ThML's text/xcss variant does not.
		if attrValue(in, "type") == "text/css" {
			el := &html.Node{Type: html.ElementNode, DataAtom: atom.Style, Data: "style"}
			el.Attr = []html.Attribute{{Key: "type", Val: "text/css"}}
			outParent.AppendChild(el)
			t.walkChildren(in, el)
			return
		}
		return
	}

	r, known := tagRules[in.Data]
	if !known {
		// Best-effort pass-through, keeping the tag as the reader saw it.
		if !t.unknown[in.Data] {
			t.unknown[in.Data] = true
			t.warn("unrecognized tag <%s> passed through", in.Data)
		}
		el := &html.Node{Type: html.ElementNode, DataAtom: atom.Lookup([]byte(in.Data)), Data: in.Data}
		el.Attr = passthroughAttributes(in.Attr)
		outParent.AppendChild(el)
		t.walkChildren(in, el)
		return
	}

	switch r.action {
	case actDelete:
		return
	case actUnwrap:
		t.walkChildren(in, outParent)
		return
	}

	name := in.Data
	if r.action == actRename {
		name = r.to
	}

	el := &html.Node{Type: html.ElementNode, DataAtom: atom.Lookup([]byte(name)), Data: name}
	el.Attr = filterAttributes(in.Attr, r.attrs)
	if r.class != "" {
		el.Attr = setAttr(el.Attr, "class", r.class)
	}
	if name == "a" {
		normalizeAnchor(el)
	}
	outParent.AppendChild(el)

	// The lenient parser gives self-closed source tags like <pb/> children;
	// a void output element cannot hold them, so they follow it instead.
	if voidElements[name] {
		t.walkChildren(in, outParent)
		return
	}

	t.walkChildren(in, el)
	if r.brEnd {
		el.AppendChild(&html.Node{Type: html.ElementNode, DataAtom: atom.Br, Data: "br"})
	}
}

// voidElements are output tags that must not be given child nodes.
var voidElements = map[string]bool{
	"br":  true,
	"hr":  true,
	"img": true,
	"col": true,
}

// collectHead walks a ThML head subtree looking for Dublin Core blocks.
func (t *transformer) collectHead(head *html.Node) {
	for c := head.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "dc" {
			t.collectDC(c)
			continue
		}
		if c.Type == html.ElementNode {
			t.collectHead(c)
		}
	}
}

// collectDC harvests the children of a <DC> element. The lenient parser
// lowercases tag names, so entries arrive as "dc.title", "dc.creator", etc.
func (t *transformer) collectDC(dc *html.Node) {
	for c := dc.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || !strings.HasPrefix(c.Data, "dc.") {
			continue
		}
		entry := dcEntry{
			name:   strings.TrimPrefix(c.Data, "dc."),
			value:  textContent(c),
			sub:    attrValue(c, "sub"),
			scheme: attrValue(c, "scheme"),
		}
		if entry.value == "" {
			continue
		}
		if !containsEntry(t.dc, entry) {
			t.dc = append(t.dc, entry)
		}
	}
}

// filterAttributes copies the attributes allowed by baseAttrs and extra,
// dropping everything else (including style and event handlers).
func filterAttributes(attrs []html.Attribute, extra map[string]bool) []html.Attribute {
	var out []html.Attribute
	for _, a := range attrs {
		key := strings.ToLower(a.Key)
		if strings.HasPrefix(key, "on") {
			continue
		}
		if baseAttrs[key] || (extra != nil && extra[key]) {
			out = append(out, html.Attribute{Key: key, Val: a.Val})
		}
	}
	return out
}

// passthroughAttributes keeps a pass-through tag's attributes minus event
// handlers (on*) and inline style, the same drops applied to recognized
// tags.
func passthroughAttributes(attrs []html.Attribute) []html.Attribute {
	var out []html.Attribute
	for _, a := range attrs {
		key := strings.ToLower(a.Key)
		if strings.HasPrefix(key, "on") || key == "style" {
			continue
		}
		out = append(out, a)
	}
	return out
}

// setAttr sets key to val, replacing any existing attribute of that name.
func setAttr(attrs []html.Attribute, key, val string) []html.Attribute {
	out := attrs[:0]
	for _, a := range attrs {
		if a.Key != key {
			out = append(out, a)
		}
	}
	return append(out, html.Attribute{Key: key, Val: val})
}

// attrValue returns the value of the named attribute, or "".
func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// normalizeAnchor reduces same-document links to bare fragments: archive
// sources often carry absolute URLs whose only useful part is the anchor.
func normalizeAnchor(n *html.Node) {
	for i, a := range n.Attr {
		if a.Key != "href" {
			continue
		}
		u, err := url.Parse(a.Val)
		if err != nil {
			continue
		}
		if u.Host == "" && u.Fragment != "" {
			n.Attr[i].Val = "#" + u.Fragment
		}
	}
}

// findElement performs a depth-first search for a node with the given atom tag.
func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if result := findElement(c, a); result != nil {
			return result
		}
	}
	return nil
}

// hasRenderableContent reports whether the subtree contains any element or
// non-whitespace text. A body failing this check is structurally unusable.
func hasRenderableContent(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			return true
		case html.TextNode:
			if strings.TrimSpace(c.Data) != "" {
				return true
			}
		}
		if hasRenderableContent(c) {
			return true
		}
	}
	return false
}

// renderChildren serializes the children of n back to markup.
func renderChildren(n *html.Node) (string, error) {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return strings.TrimSpace(buf.String()), nil
}

// firstHeadingText returns the text of the first title-bearing element in
// document order: <title> or <h1>–<h6>. The pre-order walk stops at the
// first non-empty match.
func firstHeadingText(n *html.Node) string {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "title", "h1", "h2", "h3", "h4", "h5", "h6":
			if text := textContent(n); text != "" {
				return text
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if text := firstHeadingText(c); text != "" {
			return text
		}
	}
	return ""
}

// textContent returns the concatenated text of the subtree with whitespace
// runs collapsed and the ends trimmed.
func textContent(n *html.Node) string {
	var buf strings.Builder
	var gather func(*html.Node)
	gather = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			gather(c)
		}
	}
	gather(n)
	return strings.TrimSpace(collapseWhitespace(buf.String()))
}

// collapseWhitespace replaces runs of whitespace characters (spaces, tabs,
// newlines) with a single space.
func collapseWhitespace(s string) string {
	var buf strings.Builder
	inSpace := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			inSpace = true
			continue
		}
		if inSpace && buf.Len() > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteRune(r)
		inSpace = false
	}
	return buf.String()
}
