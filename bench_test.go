package thml2epub

import (
	"strings"
	"testing"
)

// benchDocument builds a ThML document with n chapters of prose.
func benchDocument(n int) []byte {
	var b strings.Builder
	b.WriteString("<ThML><ThML.head><electronicEdInfo><DC>")
	b.WriteString("<DC.Title>Benchmark Book</DC.Title>")
	b.WriteString("<DC.Identifier>bench-book</DC.Identifier>")
	b.WriteString("</DC></electronicEdInfo></ThML.head><ThML.body>")
	for i := 0; i < n; i++ {
		b.WriteString(`<div1 title="Chapter"><h2>Chapter</h2>`)
		for j := 0; j < 20; j++ {
			b.WriteString("<p>And it came to pass that the words were written down, ")
			b.WriteString(`<scripRef passage="Gen.1.1">Gen. 1:1</scripRef>, and read again.</p>`)
		}
		b.WriteString("</div1>")
	}
	b.WriteString("</ThML.body></ThML>")
	return []byte(b.String())
}

func BenchmarkTransform(b *testing.B) {
	data := benchDocument(50)
	doc, err := LoadBytes(data, "bench.xml", LoadOptions{})
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Transform(doc); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkConvertBytes(b *testing.B) {
	data := benchDocument(50)
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ConvertBytes(data, "bench.xml"); err != nil {
			b.Fatal(err)
		}
	}
}
