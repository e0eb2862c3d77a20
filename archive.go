package thml2epub

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// roughSuffix marks the output as a machine-made rough rendition. A
// hand-curated "<stem>.epub" next to the input is a different path and is
// never touched.
const roughSuffix = ".rough.epub"

// OutputPath derives the fixed output path for an input file: the input
// stem plus ".rough.epub", in the input's directory. Reruns on the same
// input always target this one path.
func OutputPath(inputPath string) string {
	return filepath.Join(filepath.Dir(inputPath), stem(inputPath)+roughSuffix)
}

// WriteArchive serializes the package to w as a zip container. The
// mimetype marker is always the first entry and is stored uncompressed;
// the remaining members follow in their build order, compressed.
func WriteArchive(w io.Writer, p *Package) error {
	if p == nil || len(p.Members) == 0 {
		return fmt.Errorf("thml2epub: nothing to archive: %w", ErrPackage)
	}

	zw := zip.NewWriter(w)

	mw, err := zw.CreateHeader(&zip.FileHeader{
		Name:   mimetypePath,
		Method: zip.Store,
	})
	if err != nil {
		return fmt.Errorf("thml2epub: create mimetype entry: %v: %w", err, ErrWrite)
	}
	if _, err := mw.Write([]byte(mimetypeContent)); err != nil {
		return fmt.Errorf("thml2epub: write mimetype entry: %v: %w", err, ErrWrite)
	}

	for _, m := range p.Members {
		fw, err := zw.Create(m.Path)
		if err != nil {
			return fmt.Errorf("thml2epub: create entry %s: %v: %w", m.Path, err, ErrWrite)
		}
		if _, err := fw.Write(m.Data); err != nil {
			return fmt.Errorf("thml2epub: write entry %s: %v: %w", m.Path, err, ErrWrite)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("thml2epub: finalize archive: %v: %w", err, ErrWrite)
	}
	return nil
}

// WriteFile writes the package archive to exactly the given path, creating
// or truncating it. Overwriting a previous rough output is intentional;
// rerunning the converter is idempotent for this path.
func WriteFile(path string, p *Package) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("thml2epub: create %s: %v: %w", path, err, ErrWrite)
	}

	if err := WriteArchive(f, p); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("thml2epub: close %s: %v: %w", path, err, ErrWrite)
	}
	return nil
}
