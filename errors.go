package thml2epub

import "errors"

// Sentinel errors returned by the thml2epub package. Each pipeline stage
// surfaces exactly one kind; callers distinguish them with errors.Is.
var (
	// ErrParse indicates the input could not be read or is not markup at
	// all (e.g., binary data). Malformed-but-recognizable markup does not
	// trigger this error; parsing is deliberately lenient.
	ErrParse = errors.New("thml2epub: input is not parseable markup")

	// ErrTransform indicates the parsed document yielded no usable body
	// content after transformation.
	ErrTransform = errors.New("thml2epub: no usable content in document")

	// ErrPackage indicates a package invariant was violated
	// (duplicate member path, spine referencing an unknown manifest id).
	ErrPackage = errors.New("thml2epub: invalid package structure")

	// ErrWrite indicates the output archive could not be written.
	ErrWrite = errors.New("thml2epub: cannot write output archive")
)
