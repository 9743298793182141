package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"profilecut/internal"
	"profilecut/internal/config"
	"profilecut/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "convert":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "batch file path (.csv or .xlsx)")
		output := fs.String("output", "", "profile csv output path")
		format := fs.String("format", "", "csv|xlsx (default: by extension)")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*input) == "" {
			must(fmt.Errorf("--input is required"))
		}

		raw, err := os.ReadFile(*input)
		must(err)

		inFormat, err := inputFormat(*format, *input)
		must(err)

		converter := pipeline.NewConverter(cfg)
		result, err := converter.Convert(raw, inFormat)
		must(err)

		outPath := strings.TrimSpace(*output)
		if outPath == "" {
			base := strings.TrimSuffix(filepath.Base(*input), filepath.Ext(*input))
			outPath = filepath.Join(cfg.OutputDir, base+"_profile.csv")
		}
		must(pipeline.WriteProfileFile(result.Profile, outPath))
		fmt.Printf("convert done pages=%d items=%d output=%s\n", result.NumPages, result.MaxItems, outPath)
	default:
		usage()
		os.Exit(1)
	}
}

func inputFormat(flagValue, inputPath string) (internal.InputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(flagValue)) {
	case "csv":
		return internal.FormatCSV, nil
	case "xlsx":
		return internal.FormatXLSX, nil
	}
	switch strings.ToLower(filepath.Ext(inputPath)) {
	case ".xlsx":
		return internal.FormatXLSX, nil
	case ".xls":
		return "", fmt.Errorf("legacy .xls workbooks are not supported, save the file as .xlsx or .csv")
	default:
		return internal.FormatCSV, nil
	}
}

func usage() {
	fmt.Println("usage: profilecut <command>")
	fmt.Println("commands:")
	fmt.Println("  convert --input=batch.csv [--output=profile.csv] [--format=csv|xlsx]")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
