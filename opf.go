package thml2epub

import (
	"fmt"
	"strings"
)

// buildOPF serializes the package description file: Dublin Core metadata,
// the manifest of every member, and the reading order.
func buildOPF(p *Package) []byte {
	var metadata strings.Builder
	metadata.WriteString(fmt.Sprintf("    <dc:title>%s</dc:title>\n", escapeXML(p.Title)))
	metadata.WriteString(fmt.Sprintf("    <dc:identifier id=\"BookId\">%s</dc:identifier>\n", escapeXML(p.Identifier)))
	metadata.WriteString(fmt.Sprintf("    <dc:language>%s</dc:language>\n", escapeXML(p.Meta.language())))
	for _, c := range p.Meta.Creators {
		metadata.WriteString(fmt.Sprintf("    <dc:creator opf:file-as=\"%s\" opf:role=\"%s\">%s</dc:creator>\n",
			escapeXML(c.FileAs), escapeXML(c.Role), escapeXML(c.Name)))
	}
	for _, v := range p.Meta.Publishers {
		metadata.WriteString(fmt.Sprintf("    <dc:publisher>%s</dc:publisher>\n", escapeXML(v)))
	}
	for _, v := range p.Meta.Dates {
		metadata.WriteString(fmt.Sprintf("    <dc:date>%s</dc:date>\n", escapeXML(v)))
	}
	for _, v := range p.Meta.Descriptions {
		metadata.WriteString(fmt.Sprintf("    <dc:description>%s</dc:description>\n", escapeXML(v)))
	}
	for _, v := range p.Meta.Rights {
		metadata.WriteString(fmt.Sprintf("    <dc:rights>%s</dc:rights>\n", escapeXML(v)))
	}

	var manifest strings.Builder
	for _, item := range p.Manifest {
		manifest.WriteString(fmt.Sprintf("    <item id=\"%s\" href=\"%s\" media-type=\"%s\"/>\n",
			escapeXML(item.ID), escapeXML(item.Href), escapeXML(item.MediaType)))
	}

	var spine strings.Builder
	for _, idref := range p.Spine {
		spine.WriteString(fmt.Sprintf("    <itemref idref=\"%s\" linear=\"yes\"/>\n", escapeXML(idref)))
	}

	opf := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<package version="2.0"
         xmlns="http://www.idpf.org/2007/opf"
         xmlns:dc="http://purl.org/dc/elements/1.1/"
         xmlns:opf="http://www.idpf.org/2007/opf"
         unique-identifier="BookId">
  <metadata>
%s  </metadata>
  <manifest>
%s  </manifest>
  <spine toc="ncx">
%s  </spine>
</package>
`, metadata.String(), manifest.String(), spine.String())

	return []byte(opf)
}

// xmlEscaper escapes the five XML special characters.
var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// escapeXML escapes text for embedding in XML element or attribute content.
func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}
