package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/lumenlang/lumen-ir/index"
	"github.com/lumenlang/lumen-ir/lir"
)

func main() {
	var (
		inFile      = flag.String("in", "", "Path to serialized IR file")
		symName     = flag.String("sym", "", "Symbol to resolve and decode (optional)")
		verbose     = flag.Bool("v", false, "Verbose logging")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *inFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: lirdump -in <file.lir>             (list the name index)")
		fmt.Fprintln(os.Stderr, "       lirdump -in <file.lir> -sym <name> (decode one definition)")
		fmt.Fprintln(os.Stderr, "       lirdump -in <file.lir> -i          (interactive mode)")
		os.Exit(1)
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		index.SetLogger(logger)
	}

	if *interactive {
		if err := runInteractive(*inFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*inFile, *symName); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(inFile, symName string) error {
	data, err := os.ReadFile(inFile)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	tbl, err := index.Read(data)
	if err != nil {
		return fmt.Errorf("read index: %w", err)
	}

	fmt.Printf("Stream: %s\n", inFile)
	fmt.Printf("Size: %d bytes\n", len(data))
	fmt.Printf("Revision: %d (compat %d)\n", lir.Revision, lir.CompatVersion)
	fmt.Printf("Definitions: %d\n", tbl.Len())

	if symName != "" {
		return dumpSymbol(tbl, symName)
	}

	fmt.Printf("\nName index:\n")
	for _, e := range tbl.Entries() {
		fmt.Printf("  %8d  %s\n", e.Offset, e.Name)
	}
	return nil
}

// dumpSymbol resolves one symbol through the index and decodes only its
// payload, without touching the rest of the stream.
func dumpSymbol(tbl *index.Table, symName string) error {
	for _, e := range tbl.Entries() {
		if e.Name.String() != symName {
			continue
		}
		defn, err := tbl.DecodeAt(e.Offset)
		if err != nil {
			return fmt.Errorf("decode %s: %w", symName, err)
		}
		fmt.Printf("\n%s\n", renderDefn(defn))
		return nil
	}
	return fmt.Errorf("symbol %q not found in index", symName)
}

func renderDefn(d lir.Defn) string {
	def, ok := d.(lir.DefineDefn)
	if !ok {
		return d.String()
	}

	var b strings.Builder
	b.WriteString(def.String())
	for _, inst := range def.Insts {
		switch inst.(type) {
		case lir.InstLabel:
			b.WriteString("\n" + inst.String())
		default:
			b.WriteString("\n  " + inst.String())
		}
	}
	return b.String()
}
