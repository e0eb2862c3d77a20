package thml2epub

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Fixed internal layout of the output archive.
const (
	mimetypePath    = "mimetype"
	mimetypeContent = "application/epub+zip"
	containerPath   = "META-INF/container.xml"
	opfPath         = "OEBPS/content.opf"
	ncxPath         = "OEBPS/toc.ncx"
	contentDocPath  = "OEBPS/content.xhtml"
)

// Media types of the package members.
const (
	mediaTypeXML   = "application/xml"
	mediaTypeOPF   = "application/oebps-package+xml"
	mediaTypeNCX   = "application/x-dtbncx+xml"
	mediaTypeXHTML = "application/xhtml+xml"
)

// placeholderTitle is used when neither metadata, headings, nor the source
// name yield a title.
const placeholderTitle = "Untitled"

// Member is a named content unit of the package: an archive entry with its
// internal path, media type, and content. InSpine marks the members that
// participate in the reading order.
type Member struct {
	Path      string
	MediaType string
	Data      []byte
	InSpine   bool
}

// ManifestEntry is one item of the package description's manifest. Href is
// relative to the package description file.
type ManifestEntry struct {
	ID        string
	Href      string
	MediaType string
}

// Package is the assembled in-memory representation of the e-book package,
// ready for the Archive Writer.
type Package struct {
	// Title is the book title; never empty.
	Title string

	// Identifier is the unique book identifier (DC.Identifier from the
	// source, or a generated urn:uuid).
	Identifier string

	// Meta is the harvested source metadata embedded into the package
	// description.
	Meta Meta

	// Members are the archive entries in write order, excluding the
	// mimetype marker which the Archive Writer emits itself.
	Members []Member

	// Manifest lists the package description's manifest items.
	Manifest []ManifestEntry

	// Spine is the reading order as manifest item IDs.
	Spine []string
}

// BuildPackage assembles the package for the transformed content: the
// container descriptor, package description, a flat NCX, and exactly one
// content document holding the whole body (content is never split across
// documents). It returns ErrPackage when a structural invariant cannot be
// satisfied.
func BuildPackage(content *Content, sourceName string) (*Package, error) {
	if content == nil || strings.TrimSpace(content.Body) == "" {
		return nil, fmt.Errorf("thml2epub: no content member produced: %w", ErrPackage)
	}

	title := strings.TrimSpace(content.Title)
	if title == "" {
		title = stem(sourceName)
	}
	if title == "" {
		title = placeholderTitle
	}

	identifier := content.Meta.primaryIdentifier()
	if identifier == "" {
		identifier = "urn:uuid:" + uuid.NewString()
	}

	p := &Package{
		Title:      title,
		Identifier: identifier,
		Meta:       content.Meta,
		Manifest: []ManifestEntry{
			{ID: "ncx", Href: "toc.ncx", MediaType: mediaTypeNCX},
			{ID: "content", Href: "content.xhtml", MediaType: mediaTypeXHTML},
		},
		Spine: []string{"content"},
	}

	p.Members = []Member{
		{Path: containerPath, MediaType: mediaTypeXML, Data: buildContainer()},
		{Path: opfPath, MediaType: mediaTypeOPF, Data: buildOPF(p)},
		{Path: ncxPath, MediaType: mediaTypeNCX, Data: buildNCX(p)},
		{Path: contentDocPath, MediaType: mediaTypeXHTML, Data: contentDocument(title, content.Body), InSpine: true},
	}

	if err := p.check(); err != nil {
		return nil, err
	}
	return p, nil
}

// check enforces the package invariants before archiving: unique member
// paths, unique manifest ids and hrefs, a non-empty reading order whose
// every id exists in the manifest, and a non-empty title.
func (p *Package) check() error {
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("thml2epub: empty book title: %w", ErrPackage)
	}

	paths := make(map[string]bool, len(p.Members)+1)
	paths[mimetypePath] = true
	for _, m := range p.Members {
		if paths[m.Path] {
			return fmt.Errorf("thml2epub: duplicate member path %s: %w", m.Path, ErrPackage)
		}
		paths[m.Path] = true
	}

	ids := make(map[string]bool, len(p.Manifest))
	hrefs := make(map[string]bool, len(p.Manifest))
	for _, item := range p.Manifest {
		if ids[item.ID] {
			return fmt.Errorf("thml2epub: duplicate manifest id %s: %w", item.ID, ErrPackage)
		}
		if hrefs[item.Href] {
			return fmt.Errorf("thml2epub: duplicate manifest href %s: %w", item.Href, ErrPackage)
		}
		ids[item.ID] = true
		hrefs[item.Href] = true
	}

	if len(p.Spine) == 0 {
		return fmt.Errorf("thml2epub: empty reading order: %w", ErrPackage)
	}
	for _, idref := range p.Spine {
		if !ids[idref] {
			return fmt.Errorf("thml2epub: spine references unknown manifest id %s: %w", idref, ErrPackage)
		}
	}

	return nil
}

// contentDocument wraps the transformed body markup into a complete
// content document.
func contentDocument(title, body string) []byte {
	doc := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE html>
<html xmlns="http://www.w3.org/1999/xhtml">
<head>
  <title>%s</title>
</head>
<body>
%s
</body>
</html>
`, escapeXML(title), body)
	return []byte(doc)
}

// stem returns the base name of path without its extension.
func stem(path string) string {
	base := filepath.Base(path)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}
