package thml2epub

import (
	"errors"
	"strings"
	"testing"
)

func TestBuildOPF(t *testing.T) {
	pkg := mustBuildPackage(t, sampleThML, "sample.xml")
	opf := string(buildOPF(pkg))

	for _, want := range []string{
		`<package version="2.0"`,
		`unique-identifier="BookId"`,
		`<dc:title>Interesting Things</dc:title>`,
		`<dc:identifier id="BookId">ccel-interesting-things</dc:identifier>`,
		`<dc:language>en</dc:language>`,
		`<dc:creator opf:file-as="Duck, Daffy" opf:role="aut">D. Duck</dc:creator>`,
		`<item id="ncx" href="toc.ncx" media-type="application/x-dtbncx+xml"/>`,
		`<item id="content" href="content.xhtml" media-type="application/xhtml+xml"/>`,
		`<spine toc="ncx">`,
		`<itemref idref="content" linear="yes"/>`,
	} {
		if !strings.Contains(opf, want) {
			t.Errorf("OPF missing %s\n%s", want, opf)
		}
	}
}

func TestBuildOPF_EscapesMetadata(t *testing.T) {
	content := &Content{
		Title: `Faith & "Hope" <3`,
		Body:  "<p>x</p>",
	}
	pkg, err := BuildPackage(content, "x.xml")
	if err != nil {
		t.Fatalf("BuildPackage: %v", err)
	}
	opf := string(buildOPF(pkg))

	if !strings.Contains(opf, "<dc:title>Faith &amp; &quot;Hope&quot; &lt;3</dc:title>") {
		t.Errorf("title not escaped:\n%s", opf)
	}
	if strings.Contains(opf, "<3") {
		t.Errorf("raw angle bracket leaked:\n%s", opf)
	}
}

func TestBuildOPF_VerifiesClean(t *testing.T) {
	pkg := mustBuildPackage(t, sampleThML, "sample.xml")
	if err := VerifyOPF(buildOPF(pkg)); err != nil {
		t.Errorf("VerifyOPF rejected freshly built OPF: %v", err)
	}
}

func TestEscapeXML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"a & b", "a &amp; b"},
		{`<tag attr="v">`, "&lt;tag attr=&quot;v&quot;&gt;"},
		{"it's", "it&#39;s"},
	}
	for _, tt := range tests {
		if got := escapeXML(tt.in); got != tt.want {
			t.Errorf("escapeXML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildContainer(t *testing.T) {
	c := string(buildContainer())
	if !strings.Contains(c, `full-path="OEBPS/content.opf"`) {
		t.Errorf("container does not point at the package description:\n%s", c)
	}
	if !strings.Contains(c, `media-type="application/oebps-package+xml"`) {
		t.Errorf("container misses the package media type:\n%s", c)
	}
}

func TestBuildNCX(t *testing.T) {
	pkg := mustBuildPackage(t, sampleThML, "sample.xml")
	ncx := string(buildNCX(pkg))

	for _, want := range []string{
		`<meta name="dtb:uid" content="ccel-interesting-things"/>`,
		`<meta name="dtb:depth" content="1"/>`,
		`<text>Interesting Things</text>`,
		`<navPoint id="navpoint-1" playOrder="1">`,
		`<content src="content.xhtml"/>`,
	} {
		if !strings.Contains(ncx, want) {
			t.Errorf("NCX missing %s\n%s", want, ncx)
		}
	}
	if n := strings.Count(ncx, "<navPoint"); n != 1 {
		t.Errorf("want a single navPoint, got %d", n)
	}
}

func TestVerifyOPF_PrefixedTitle(t *testing.T) {
	// The serialized OPF carries the title as <dc:title>; the check must
	// find it despite the namespace prefix.
	opf := `<?xml version="1.0" encoding="UTF-8"?>
<package xmlns="http://www.idpf.org/2007/opf"
         xmlns:dc="http://purl.org/dc/elements/1.1/"
         unique-identifier="BookId">
  <metadata>
    <dc:title>Interesting Things</dc:title>
    <dc:identifier id="BookId">ccel-interesting-things</dc:identifier>
  </metadata>
  <manifest>
    <item id="content" href="content.xhtml" media-type="application/xhtml+xml"/>
  </manifest>
  <spine>
    <itemref idref="content"/>
  </spine>
</package>`
	if err := VerifyOPF([]byte(opf)); err != nil {
		t.Errorf("VerifyOPF rejected a prefixed title: %v", err)
	}
}

func TestVerifyOPF_Violations(t *testing.T) {
	tests := []struct {
		name string
		opf  string
	}{
		{
			"duplicate id",
			`<package><metadata><title>T</title></metadata>
			<manifest><item id="a" href="x"/><item id="a" href="y"/></manifest>
			<spine><itemref idref="a"/></spine></package>`,
		},
		{
			"duplicate href",
			`<package><metadata><title>T</title></metadata>
			<manifest><item id="a" href="x"/><item id="b" href="x"/></manifest>
			<spine><itemref idref="a"/></spine></package>`,
		},
		{
			"empty spine",
			`<package><metadata><title>T</title></metadata>
			<manifest><item id="a" href="x"/></manifest>
			<spine></spine></package>`,
		},
		{
			"dangling idref",
			`<package><metadata><title>T</title></metadata>
			<manifest><item id="a" href="x"/></manifest>
			<spine><itemref idref="ghost"/></spine></package>`,
		},
		{
			"empty title",
			`<package><metadata><title>  </title></metadata>
			<manifest><item id="a" href="x"/></manifest>
			<spine><itemref idref="a"/></spine></package>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := VerifyOPF([]byte(tt.opf)); !errors.Is(err, ErrPackage) {
				t.Errorf("VerifyOPF = %v, want ErrPackage", err)
			}
		})
	}
}
