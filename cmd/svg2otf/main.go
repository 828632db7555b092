// Command svg2otf converts a directory of SVG icon files into a single
// OpenType/CFF2 font, plus a companion Go source file declaring each
// icon's assigned Private Use Area code point.
package main

import (
	"flag"
	"fmt"
	"os"

	nested "github.com/antonfisher/nested-logrus-formatter"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"seehuhn.de/go/svg2otf/convert"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("svg2otf", flag.ContinueOnError)

	var (
		outputClassFile string
		indent          int
		className       string
		fontName        string
		normalize       bool
		ignoreShapes    bool
		verbose         bool
		output          string
	)
	fs.StringVar(&outputClassFile, "output-class-file", "", "companion source artifact listing icon identifiers")
	fs.StringVar(&outputClassFile, "o", "", "shorthand for -output-class-file")
	fs.IntVar(&indent, "indent", 2, "indentation width for the companion artifact")
	fs.IntVar(&indent, "i", 2, "shorthand for -indent")
	fs.StringVar(&className, "class-name", "Icons", "identifier of the emitted class of constants")
	fs.StringVar(&className, "c", "Icons", "shorthand for -class-name")
	fs.StringVar(&fontName, "font-name", "icons", "logical font family name")
	fs.StringVar(&fontName, "f", "icons", "shorthand for -font-name")
	fs.BoolVar(&normalize, "normalize", true, "toggle em-square normalization")
	fs.BoolVar(&ignoreShapes, "ignore-shapes", true, "drop non-path shape primitives")
	fs.BoolVar(&verbose, "verbose", false, "enable debug-level logging")
	fs.BoolVar(&verbose, "v", false, "shorthand for -verbose")
	fs.StringVar(&output, "output", "", "output .otf path")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: svg2otf [flags] <icon-directory>")
		return 2
	}
	if output == "" {
		output = fontName + ".otf"
	}
	inputDir := fs.Arg(0)

	log := logrus.New()
	log.SetFormatter(&nested.Formatter{
		HideKeys: false,
		NoColors: !term.IsTerminal(int(os.Stdout.Fd())),
	})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}

	fsys := os.DirFS(inputDir)
	result, err := convert.BuildFont(fsys, convert.Options{
		Normalize:    normalize,
		IgnoreShapes: ignoreShapes,
		FontName:     fontName,
		Logger:       log,
	})
	if err != nil {
		log.WithError(err).Error("conversion failed")
		return 1
	}
	log.Infof("built font with %d icons", len(result.Icons))

	if err := os.WriteFile(output, result.Font, 0o644); err != nil {
		log.WithError(err).Error("writing font file")
		return 1
	}

	if outputClassFile != "" {
		src, err := renderClassFile(className, indent, result.Icons)
		if err != nil {
			log.WithError(err).Error("rendering companion source artifact")
			return 1
		}
		if err := os.WriteFile(outputClassFile, src, 0o644); err != nil {
			log.WithError(err).Error("writing companion source artifact")
			return 1
		}
	}

	return 0
}
