package thml2epub

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/htmlindex"
)

// sniffLen is the number of decoded bytes inspected when deciding whether
// the input is markup at all.
const sniffLen = 4096

// defaultMaxControlRatio is the default for LoadOptions.MaxControlRatio.
const defaultMaxControlRatio = 0.10

// Document is the parsed source markup tree handed to Transform.
// Root is the document node of the lenient HTML parse; parent pointers in
// the tree are navigational only, the tree is owned through Root.
type Document struct {
	// Root is the document node returned by the HTML parser.
	Root *html.Node

	// Name is the base name of the source file, used as a title fallback.
	Name string

	// Encoding is the canonical name of the detected source encoding
	// (e.g., "utf-8", "windows-1252").
	Encoding string
}

// LoadOptions controls how tolerant the Source Loader is.
type LoadOptions struct {
	// MaxControlRatio is the fraction of C0 control bytes (excluding tab,
	// LF, and CR) tolerated in the first 4 KiB of decoded input. Above
	// this threshold the input is rejected as binary data with ErrParse.
	// The HTML parser itself accepts nearly any byte sequence, so this
	// ratio is the explicit boundary of "lenient enough" parsing.
	// Zero means the default of 0.10.
	MaxControlRatio float64
}

// maxControlRatio returns the configured ratio or the default.
func (o LoadOptions) maxControlRatio() float64 {
	if o.MaxControlRatio > 0 {
		return o.MaxControlRatio
	}
	return defaultMaxControlRatio
}

// LoadFile reads and parses the ThML file at path.
// It returns ErrParse if the file cannot be read or is not markup.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("thml2epub: read %s: %v: %w", path, err, ErrParse)
	}
	return LoadBytes(data, filepath.Base(path), LoadOptions{})
}

// Load reads and parses ThML markup from r. name is the source name used
// for the title fallback (typically the base file name).
func Load(r io.Reader, name string) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("thml2epub: read %s: %v: %w", name, err, ErrParse)
	}
	return LoadBytes(data, name, LoadOptions{})
}

// LoadBytes parses ThML markup held in memory.
//
// Parsing is permissive: malformed and unknown tags are repaired into
// best-effort nodes rather than rejected, matching the tolerant behavior
// of common e-book renderers. Only input that fails the binary-data check
// in opts (or is empty) is rejected with ErrParse.
func LoadBytes(data []byte, name string, opts LoadOptions) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("thml2epub: %s: empty input: %w", name, ErrParse)
	}

	enc, encName, _ := charset.DetermineEncoding(data, "")
	if canonical, err := htmlindex.Name(enc); err == nil {
		encName = canonical
	}

	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		// Undecodable bytes are replaced, not fatal; fall back to raw.
		decoded = data
	}
	decoded = stripBOM(decoded)

	if ratio := controlRatio(decoded); ratio > opts.maxControlRatio() {
		return nil, fmt.Errorf("thml2epub: %s: control-byte ratio %.2f exceeds %.2f, input is not markup: %w",
			name, ratio, opts.maxControlRatio(), ErrParse)
	}

	root, err := html.Parse(bytes.NewReader(decoded))
	if err != nil {
		return nil, fmt.Errorf("thml2epub: %s: parse: %v: %w", name, err, ErrParse)
	}

	return &Document{Root: root, Name: name, Encoding: encName}, nil
}

// controlRatio returns the fraction of C0 control bytes (excluding tab,
// LF, and CR) in the first sniffLen bytes of data.
func controlRatio(data []byte) float64 {
	sample := data
	if len(sample) > sniffLen {
		sample = sample[:sniffLen]
	}
	if len(sample) == 0 {
		return 0
	}
	control := 0
	for _, b := range sample {
		if b < 0x20 && b != '\t' && b != '\n' && b != '\r' {
			control++
		}
	}
	return float64(control) / float64(len(sample))
}

// stripBOM removes a leading UTF-8 BOM (0xEF 0xBB 0xBF) from data, if present.
func stripBOM(data []byte) []byte {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return data[3:]
	}
	return data
}
