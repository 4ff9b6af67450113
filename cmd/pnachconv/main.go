package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func main() {
	outFile := flag.String("o", "", "Output file (default: input.pnach or input-raw.txt)")
	to := flag.String("to", "auto", "Conversion direction: auto, pnach or raw")
	title := flag.String("title", "", "gametitle line for pnach output")
	stats := flag.Bool("stats", false, "Print conversion statistics")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: pnachconv [options] input\n\nConverts raw PS2 code pairs to pnach patch lines and back.\n\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  pnachconv cheats-Output.txt\n")
		fmt.Fprintf(os.Stderr, "  pnachconv -to raw -o codes.txt SLUS-20312.pnach\n")
		fmt.Fprintf(os.Stderr, "  pnachconv -title \"Jak and Daxter\" codes.txt\n")
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	inputPath := flag.Arg(0)

	dir, err := ParseDirection(*to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if dir == DirAuto {
		dir = detect(strings.Split(string(data), "\n"))
	}

	conv := NewConverter()
	conv.direction = dir
	conv.title = *title
	output := conv.ConvertFile(string(data))

	outputPath := *outFile
	if outputPath == "" {
		outputPath = defaultOutput(inputPath, dir)
	}
	if err := os.WriteFile(outputPath, []byte(output), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "error writing %s: %v\n", outputPath, err)
		os.Exit(1)
	}

	if *stats {
		fmt.Printf("Input:     %s\n", inputPath)
		fmt.Printf("Output:    %s\n", outputPath)
		fmt.Printf("Converted: %d lines\n", conv.converted)
		fmt.Printf("Copied:    %d lines\n", conv.copied)
		if conv.errors > 0 {
			fmt.Printf("Errors:    %d (search for '// ERROR:' in output)\n", conv.errors)
		}
	}

	if conv.errors > 0 {
		fmt.Fprintf(os.Stderr, "%d malformed patch line(s), search for '// ERROR:' in %s\n", conv.errors, outputPath)
		os.Exit(1)
	}
}

// defaultOutput names the output after the input and the direction.
func defaultOutput(input string, dir Direction) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	if dir == DirToRaw {
		return base + "-raw.txt"
	}
	return base + ".pnach"
}
