package thml2epub

// containerContent is the container descriptor pointing readers at the
// package description file. Its content is invariant across all runs.
const containerContent = `<?xml version="1.0" encoding="UTF-8"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>
`

// buildContainer returns the container descriptor bytes.
func buildContainer() []byte {
	return []byte(containerContent)
}
