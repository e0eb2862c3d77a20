// Package thml2epub converts ThML documents (theological markup layered on
// HTML, used by digital-text archives such as CCEL) into minimally valid
// ePub packages.
//
// The conversion is a linear, single-pass pipeline: load → transform →
// build package → write archive. ThML sources are often only approximately
// well-formed, so loading uses a lenient HTML parser that repairs malformed
// tags instead of rejecting the document. The output is a rough rendition
// intended for tolerant readers, written to <input-stem>.rough.epub so it
// never clobbers a hand-curated .epub next to it.
//
// # Converting a file
//
// Use [Convert] to run the whole pipeline against a file on disk:
//
//	out, err := thml2epub.Convert("confessions.xml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("wrote", out)
//
// [ConvertBytes] runs the same pipeline entirely in memory, which is the
// form the individual stages are tested through.
//
// # Pipeline stages
//
// Each stage is usable on its own:
//
//	doc, err := thml2epub.LoadFile("confessions.xml")   // lenient parse
//	content, err := thml2epub.Transform(doc)            // ThML → XHTML body
//	pkg, err := thml2epub.BuildPackage(content, doc.Name)
//	err = thml2epub.WriteFile(thml2epub.OutputPath("confessions.xml"), pkg)
//
// ThML structural tags (div1–div5, verse, scripture, l, pb) are rewritten
// into the XHTML vocabulary; notes are kept inline; scripture references
// are kept as text without hyperlink resolution; unrecognized tags pass
// through unchanged. Dublin Core metadata in the ThML head (DC.Title,
// DC.Creator, DC.Identifier) is harvested into the package description.
//
// # Error Handling
//
// Each pipeline stage surfaces its own sentinel error:
//   - [ErrParse] – the input is unreadable or not markup at all
//   - [ErrTransform] – no usable body content after transformation
//   - [ErrPackage] – a manifest/spine invariant was violated
//   - [ErrWrite] – the output archive could not be written
//
// There is no retry logic and no silent recovery: the first failure aborts
// the run.
package thml2epub
