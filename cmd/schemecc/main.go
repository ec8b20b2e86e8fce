// Command schemecc is the schemec compiler CLI.
//
// Usage:
//
//	schemecc [options]
//
// Examples:
//
//	schemecc -i prog.scm -o a.out   # compile a file, writing a.c
//	cat prog.scm | schemecc         # read from stdin, writing a.c
//	schemecc -i prog.scm -d         # dump every intermediate IR
//
// Invoking an external C toolchain to turn the emitted translation unit
// into a binary is out of this module's scope; schemecc instead writes
// the generated C next to the requested output path and says so.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/simmsb/schemec"
)

var (
	inputPath   = flag.String("i", "", "input file (stdin if omitted)")
	outputPath  = flag.String("o", "a.out", "output binary path")
	debugFlag   = flag.Bool("d", false, "verbose debug dump of each IR stage")
	keepTemp    = flag.Bool("k", false, "keep the temporary build directory")
	versionFlag = flag.Bool("version", false, "print version")
)

func version() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			return info.Main.Version
		}
	}
	return "dev"
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if *versionFlag {
		fmt.Printf("schemecc version %s\n", version())
		return
	}

	os.Exit(run())
}

func run() int {
	source, err := readSource(*inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading input: %v\n", err)
		return 1
	}

	opts := schemec.DefaultOptions()
	opts.Debug = *debugFlag

	res, err := schemec.CompileWithOptions(source, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "compilation error: %v\n", err)
		return 1
	}

	if *debugFlag {
		for _, stage := range res.Trace {
			fmt.Fprintf(os.Stderr, "=== %s ===\n%s\n\n", stage.Stage, stage.Text)
		}
	}

	cPath := cSourcePath(*outputPath)
	if err := os.WriteFile(cPath, []byte(res.C), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "error writing generated C: %v\n", err)
		return 1
	}

	fmt.Fprintf(os.Stderr,
		"wrote %s; invoking the C toolchain to produce %s is outside schemec's scope (link against the runtime headers to finish the build)\n",
		cPath, *outputPath)

	if *keepTemp {
		fmt.Fprintf(os.Stderr, "keeping generated sources at %s\n", cPath)
	}
	return 0
}

func readSource(path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// cSourcePath derives the emitted translation unit's path from the
// requested binary output path: a.out -> a.c, foo -> foo.c.
func cSourcePath(outputPath string) string {
	base := filepath.Base(outputPath)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	return filepath.Join(filepath.Dir(outputPath), base+".c")
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: schemecc [options]\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  schemecc -i prog.scm -o a.out   Compile a file\n")
	fmt.Fprintf(os.Stderr, "  cat prog.scm | schemecc         Compile stdin, C written to a.c\n")
	fmt.Fprintf(os.Stderr, "  schemecc -i prog.scm -d         Dump every intermediate IR\n")
}
