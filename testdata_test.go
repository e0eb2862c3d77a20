package thml2epub

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"
)

// sampleThML is a small but representative ThML document: Dublin Core
// metadata in the head, structural divisions, a note, verse lines, and a
// scripture reference in the body.
const sampleThML = `<ThML>
<ThML.head>
<generalInfo>
<description>Not for display.</description>
</generalInfo>
<electronicEdInfo>
<DC>
<DC.Title>Interesting Things</DC.Title>
<DC.Creator sub="Author" scheme="file-as">Duck, Daffy</DC.Creator>
<DC.Creator sub="Author" scheme="short-form">D. Duck</DC.Creator>
<DC.Identifier>ccel-interesting-things</DC.Identifier>
<DC.Language>en</DC.Language>
</DC>
</electronicEdInfo>
</ThML.head>
<ThML.body>
<div1 title="Chapter 1">
<h2>Chapter 1</h2>
<p>Peter<note place="end">a <i>complete</i> idiot</note> said...</p>
<verse><l>A line of verse</l></verse>
<p><scripRef passage="John 3:16">John 3:16</scripRef></p>
</div1>
</ThML.body>
</ThML>
`

// mustLoad parses markup or fails the test.
func mustLoad(t *testing.T, markup, name string) *Document {
	t.Helper()
	doc, err := LoadBytes([]byte(markup), name, LoadOptions{})
	if err != nil {
		t.Fatalf("LoadBytes(%s): unexpected error: %v", name, err)
	}
	return doc
}

// mustTransform loads and transforms markup or fails the test.
func mustTransform(t *testing.T, markup, name string) *Content {
	t.Helper()
	content, err := Transform(mustLoad(t, markup, name))
	if err != nil {
		t.Fatalf("Transform(%s): unexpected error: %v", name, err)
	}
	return content
}

// transformBody wraps a ThML body fragment into a minimal document and
// returns the transformed body markup.
func transformBody(t *testing.T, fragment string) string {
	t.Helper()
	content := mustTransform(t, "<ThML><ThML.body>"+fragment+"</ThML.body></ThML>", "test.xml")
	return content.Body
}

// mustBuildPackage runs load → transform → build on markup.
func mustBuildPackage(t *testing.T, markup, name string) *Package {
	t.Helper()
	pkg, err := BuildPackage(mustTransform(t, markup, name), name)
	if err != nil {
		t.Fatalf("BuildPackage(%s): unexpected error: %v", name, err)
	}
	return pkg
}

// readArchive opens archive bytes and returns the zip entries in archive
// order plus a path → content map.
func readArchive(t *testing.T, data []byte) ([]*zip.File, map[string][]byte) {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("readArchive: open: %v", err)
	}
	contents := make(map[string][]byte, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("readArchive: open entry %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("readArchive: read entry %s: %v", f.Name, err)
		}
		contents[f.Name] = data
	}
	return zr.File, contents
}
