package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klippa-app/go-pdfium"
	"github.com/klippa-app/go-pdfium/webassembly"
	"github.com/urfave/cli/v3"

	pdfoutline "github.com/Shreyash-Thakur/Team-Miraculously-1a"
)

func main() {
	cmd := &cli.Command{
		Name:  "pdfoutline",
		Usage: "Infer document titles and heading outlines from PDF layout",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "Input directory containing PDF files",
				Value:   "input",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output directory for result files",
				Value:   "output",
			},
			&cli.StringFlag{
				Name:  "provider",
				Usage: "Glyph provider: pdfium or text",
				Value: "pdfium",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "Output format: json or markdown",
				Value: "json",
			},
			&cli.BoolFlag{
				Name:  "metrics",
				Usage: "Log per-page timing and document statistics",
			},
		},
		Action: runBatch,
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Run an HTTP server that extracts outlines from uploaded PDFs",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "addr",
						Usage: "Listen address",
						Value: ":8080",
					},
				},
				Action: runServe,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// errorResult is the fallback payload written when a document cannot be
// processed. Sibling documents are unaffected.
type errorResult struct {
	Title   string                    `json:"title"`
	Outline []pdfoutline.OutlineEntry `json:"outline"`
	Error   string                    `json:"error"`
}

func runBatch(_ context.Context, cmd *cli.Command) error {
	inputDir := cmd.String("input")
	outputDir := cmd.String("output")
	provider := cmd.String("provider")
	format := cmd.String("format")

	config := pdfoutline.DefaultConfig()
	config.EnableMetricsLogging = cmd.Bool("metrics")

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	pdfFiles, err := filepath.Glob(filepath.Join(inputDir, "*.pdf"))
	if err != nil {
		return fmt.Errorf("failed to list input directory: %w", err)
	}
	if len(pdfFiles) == 0 {
		fmt.Fprintf(os.Stderr, "No PDF files found in %s\n", inputDir)
		return nil
	}
	fmt.Fprintf(os.Stderr, "Found %d PDF(s) to process.\n", len(pdfFiles))

	var instance pdfium.Pdfium
	if provider == "pdfium" {
		pool, err := webassembly.Init(webassembly.Config{
			MinIdle:  1,
			MaxIdle:  1,
			MaxTotal: 1,
		})
		if err != nil {
			return fmt.Errorf("failed to initialise pdfium: %w", err)
		}
		defer pool.Close()

		instance, err = pool.GetInstance(time.Second * 30)
		if err != nil {
			return fmt.Errorf("failed to get pdfium instance: %w", err)
		}
	}

	for _, pdfPath := range pdfFiles {
		stem := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))

		ext := ".json"
		if format == "markdown" {
			ext = ".md"
		}
		outPath := filepath.Join(outputDir, stem+ext)

		result, err := processDocument(pdfPath, provider, instance, config)
		if err != nil {
			// One document's failure must not abort the rest.
			fmt.Fprintf(os.Stderr, "failed to process %s: %v\n", filepath.Base(pdfPath), err)
			writeErrorResult(filepath.Join(outputDir, stem+".json"), err)
			continue
		}

		if err := writeResult(outPath, result, format); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", outPath, err)
			continue
		}
		fmt.Fprintf(os.Stderr, "wrote %s (%d outline entries)\n", outPath, len(result.Outline))
	}

	return nil
}

func processDocument(path, provider string, instance pdfium.Pdfium, config pdfoutline.Config) (*pdfoutline.DocumentResult, error) {
	if provider == "text" {
		source, err := pdfoutline.OpenTextSource(path)
		if err != nil {
			return nil, err
		}
		defer source.Close()

		return pdfoutline.NewAnalyzerWithConfig(config).Analyze(source, nil)
	}

	return pdfoutline.NewExtractorWithConfig(instance, config).ExtractFile(path)
}

func writeResult(path string, result *pdfoutline.DocumentResult, format string) error {
	if format == "markdown" {
		return os.WriteFile(path, []byte(result.ToMarkdown()), 0644)
	}

	if result.Outline == nil {
		result.Outline = []pdfoutline.OutlineEntry{}
	}
	data, err := json.MarshalIndent(result, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func writeErrorResult(path string, cause error) {
	data, err := json.MarshalIndent(errorResult{
		Outline: []pdfoutline.OutlineEntry{},
		Error:   cause.Error(),
	}, "", "    ")
	if err != nil {
		return
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write error result %s: %v\n", path, err)
	}
}
