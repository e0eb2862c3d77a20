package thml2epub

import (
	"bytes"
	"fmt"
)

// Convert runs the full pipeline against the file at inputPath and writes
// the archive to the derived rough output path, which it returns. Apart
// from that single output file the run has no side effects.
func Convert(inputPath string) (string, error) {
	pkg, err := buildFromFile(inputPath)
	if err != nil {
		return "", err
	}

	out := OutputPath(inputPath)
	if err := WriteFile(out, pkg); err != nil {
		return "", err
	}
	return out, nil
}

// ConvertBytes runs the same pipeline entirely in memory: data is the
// source markup, name the nominal source file name (used for the title
// fallback). It returns the archive bytes.
func ConvertBytes(data []byte, name string) ([]byte, error) {
	doc, err := LoadBytes(data, name, LoadOptions{})
	if err != nil {
		return nil, err
	}

	pkg, err := buildFromDocument(doc)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := WriteArchive(&buf, pkg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// buildFromFile loads and assembles a package from a file on disk.
func buildFromFile(inputPath string) (*Package, error) {
	doc, err := LoadFile(inputPath)
	if err != nil {
		return nil, err
	}
	return buildFromDocument(doc)
}

// buildFromDocument transforms, builds, and self-checks a package.
func buildFromDocument(doc *Document) (*Package, error) {
	content, err := Transform(doc)
	if err != nil {
		return nil, err
	}

	pkg, err := BuildPackage(content, doc.Name)
	if err != nil {
		return nil, err
	}

	opf := pkg.member(opfPath)
	if opf == nil {
		return nil, fmt.Errorf("thml2epub: package has no description file: %w", ErrPackage)
	}
	if err := VerifyOPF(opf.Data); err != nil {
		return nil, err
	}

	return pkg, nil
}

// member returns the package member at the given internal path, or nil.
func (p *Package) member(path string) *Member {
	for i := range p.Members {
		if p.Members[i].Path == path {
			return &p.Members[i]
		}
	}
	return nil
}
