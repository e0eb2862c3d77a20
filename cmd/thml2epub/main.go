// Command thml2epub converts a ThML document into a rough EPUB package.
//
// Usage:
//
//	thml2epub <input.xml>
//
// The archive is written to <input-stem>.rough.epub next to the input so
// that a hand-curated .epub is never overwritten. The process exits
// non-zero on any pipeline failure, with the error kind on stderr.
package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/simp-lee/thml2epub"
)

var cli struct {
	Input string `arg:"" help:"ThML input file."`
}

func main() {
	kong.Parse(&cli,
		kong.Name("thml2epub"),
		kong.Description("Convert a ThML document into a rough EPUB package."),
	)

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	out, err := thml2epub.Convert(cli.Input)
	if err != nil {
		logger.Error("conversion failed", "input", cli.Input, "error", err)
		os.Exit(1)
	}
	logger.Info("wrote archive", "input", cli.Input, "output", out)
}
