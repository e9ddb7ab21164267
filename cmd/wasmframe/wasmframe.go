package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/wasmframe/wasmframe"
)

func main() {
	os.Exit(doMain(os.Stdout, os.Stderr, os.Args[1:]))
}

// doMain is separated out for the purpose of unit testing.
func doMain(stdOut, stdErr io.Writer, args []string) int {
	flags := flag.NewFlagSet("wasmframe", flag.ContinueOnError)
	flags.SetOutput(stdErr)

	var help bool
	flags.BoolVar(&help, "h", false, "Prints usage.")

	if err := flags.Parse(args); err != nil {
		return 1
	}

	if help || flags.NArg() == 0 {
		printUsage(stdErr)
		return 0
	}

	subCmd := flags.Arg(0)
	switch subCmd {
	case "dump":
		return doDump(flags.Args()[1:], stdOut, stdErr)
	default:
		fmt.Fprintln(stdErr, "invalid command")
		printUsage(stdErr)
		return 1
	}
}

func doDump(args []string, stdOut, stdErr io.Writer) int {
	flags := flag.NewFlagSet("dump", flag.ExitOnError)
	flags.SetOutput(stdErr)

	var help bool
	flags.BoolVar(&help, "h", false, "Prints usage.")

	var verbose bool
	flags.BoolVar(&verbose, "v", false, "Logs every decoded frame to stderr.")

	_ = flags.Parse(args)

	if help {
		printDumpUsage(stdErr, flags)
		return 0
	}

	if flags.NArg() < 1 {
		fmt.Fprintln(stdErr, "missing path to wasm file")
		printDumpUsage(stdErr, flags)
		return 1
	}

	logger := zap.NewNop()
	if verbose {
		cfg := zap.NewDevelopmentConfig()
		cfg.OutputPaths = []string{"stderr"}
		built, err := cfg.Build()
		if err != nil {
			fmt.Fprintf(stdErr, "error building logger: %v\n", err)
			return 1
		}
		logger = built
	}
	defer logger.Sync() //nolint:errcheck

	wasmPath := flags.Arg(0)
	data, err := os.ReadFile(wasmPath)
	if err != nil {
		fmt.Fprintf(stdErr, "error reading wasm binary: %v\n", err)
		return 1
	}

	c := wasmframe.NewCursor(data)
	for {
		f := c.Next()
		logger.Debug("frame", zap.Stringer("kind", f.Kind))
		switch f.Kind {
		case wasmframe.FrameHead:
			fmt.Fprintf(stdOut, "header: version=%d\n", f.Version)
		case wasmframe.FrameSection:
			fmt.Fprintf(stdOut, "section: %s\n", describeSection(f.Section))
		case wasmframe.FrameEnd:
			return 0
		case wasmframe.FrameParserError:
			fmt.Fprintf(stdErr, "error decoding wasm binary: %v\n", f.Err)
			return 1
		}
	}
}

func describeSection(s *wasmframe.Section) string {
	switch s.ID {
	case wasmframe.SectionIDCustom:
		return fmt.Sprintf("custom name=%q size=%d", s.Custom.Name, len(s.Custom.Data))
	case wasmframe.SectionIDType:
		return fmt.Sprintf("type count=%d", len(s.Types))
	case wasmframe.SectionIDImport:
		return fmt.Sprintf("import count=%d", len(s.Imports))
	case wasmframe.SectionIDFunction:
		return fmt.Sprintf("function count=%d", len(s.Functions))
	case wasmframe.SectionIDTable:
		return fmt.Sprintf("table count=%d", len(s.Tables))
	case wasmframe.SectionIDMemory:
		return fmt.Sprintf("memory count=%d", len(s.Memories))
	case wasmframe.SectionIDGlobal:
		return fmt.Sprintf("global count=%d", len(s.Globals))
	case wasmframe.SectionIDExport:
		return fmt.Sprintf("export count=%d", len(s.Exports))
	case wasmframe.SectionIDStart:
		return fmt.Sprintf("start index=%d", *s.Start)
	case wasmframe.SectionIDElement:
		return fmt.Sprintf("element count=%d", len(s.Elements))
	case wasmframe.SectionIDCode:
		return fmt.Sprintf("code count=%d", len(s.Code))
	case wasmframe.SectionIDData:
		return fmt.Sprintf("data count=%d", len(s.Data))
	default:
		return fmt.Sprintf("id=%d", s.ID)
	}
}

func printUsage(stdErr io.Writer) {
	fmt.Fprintln(stdErr, "wasmframe CLI")
	fmt.Fprintln(stdErr)
	fmt.Fprintln(stdErr, "Usage:\n  wasmframe <command>")
	fmt.Fprintln(stdErr)
	fmt.Fprintln(stdErr, "Commands:")
	fmt.Fprintln(stdErr, "  dump\tStreams the frames of a WebAssembly binary to stdout")
}

func printDumpUsage(stdErr io.Writer, flags *flag.FlagSet) {
	fmt.Fprintln(stdErr, "wasmframe CLI")
	fmt.Fprintln(stdErr)
	fmt.Fprintln(stdErr, "Usage:\n  wasmframe dump <options> <path to wasm file>")
	fmt.Fprintln(stdErr)
	fmt.Fprintln(stdErr, "Options:")
	flags.PrintDefaults()
}
