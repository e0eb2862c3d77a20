package thml2epub

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// Precompiled queries over the generated package description. The title
// element carries the dc: prefix in the serialized form, so it is matched
// by local name.
var (
	queryManifestItems = xpath.MustCompile("//manifest/item")
	querySpineRefs     = xpath.MustCompile("//spine/itemref")
	queryTitle         = xpath.MustCompile("//metadata/*[local-name()='title']")
)

// VerifyOPF re-parses a generated package description and checks its
// referential integrity from the serialized form: manifest ids and hrefs
// must be unique, every reading-order idref must resolve to a manifest
// item, and the title must be non-empty. It reports violations as
// ErrPackage.
//
// This is a self-check on the builder's output, run once per conversion;
// it deliberately inspects the bytes a reader will see rather than the
// in-memory Package.
func VerifyOPF(data []byte) error {
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("thml2epub: package description is not well-formed: %v: %w", err, ErrPackage)
	}

	ids := make(map[string]bool)
	hrefs := make(map[string]bool)
	for _, item := range xmlquery.QuerySelectorAll(doc, queryManifestItems) {
		id := item.SelectAttr("id")
		href := item.SelectAttr("href")
		if id == "" || href == "" {
			return fmt.Errorf("thml2epub: manifest item missing id or href: %w", ErrPackage)
		}
		if ids[id] {
			return fmt.Errorf("thml2epub: duplicate manifest id %s: %w", id, ErrPackage)
		}
		if hrefs[href] {
			return fmt.Errorf("thml2epub: duplicate manifest href %s: %w", href, ErrPackage)
		}
		ids[id] = true
		hrefs[href] = true
	}

	refs := xmlquery.QuerySelectorAll(doc, querySpineRefs)
	if len(refs) == 0 {
		return fmt.Errorf("thml2epub: empty reading order: %w", ErrPackage)
	}
	for _, ref := range refs {
		idref := ref.SelectAttr("idref")
		if !ids[idref] {
			return fmt.Errorf("thml2epub: spine references unknown manifest id %q: %w", idref, ErrPackage)
		}
	}

	title := xmlquery.QuerySelector(doc, queryTitle)
	if title == nil || strings.TrimSpace(title.InnerText()) == "" {
		return fmt.Errorf("thml2epub: package description has no title: %w", ErrPackage)
	}

	return nil
}
