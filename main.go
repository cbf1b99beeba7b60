// Command persian-translator translates the text of a PDF document into
// Persian while preserving the original page layout.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"persian-translator/internal/config"
	"persian-translator/internal/fonts"
	"persian-translator/internal/logger"
	"persian-translator/internal/pdf"
	"persian-translator/internal/translate"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		inputPath       string
		outputPath      string
		batchSize       int
		domain          string
		continueOnError bool
		verbose         bool
	)

	flag.StringVar(&inputPath, "input", "", "input PDF file (required)")
	flag.StringVar(&outputPath, "output", "", "output PDF file (default: <input>_translated.pdf)")
	flag.IntVar(&batchSize, "batch-size", config.DefaultBatchSize, "number of text segments per API request")
	flag.StringVar(&domain, "domain", "general", "translation domain: "+strings.Join(config.Domains, ", "))
	flag.BoolVar(&continueOnError, "continue-on-error", false, "keep source text for segments that fail to translate")
	flag.BoolVar(&verbose, "verbose", false, "enable debug logging")
	flag.Parse()

	if inputPath == "" {
		fmt.Fprintln(os.Stderr, "Error: --input is required")
		flag.Usage()
		return 1
	}
	if !config.IsValidDomain(domain) {
		fmt.Fprintf(os.Stderr, "Error: unknown domain %q (valid: %s)\n", domain, strings.Join(config.Domains, ", "))
		return 1
	}
	if outputPath == "" {
		outputPath = pdf.OutputPath(inputPath)
	}

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Set the GEMINI_API_KEY environment variable and retry.")
		return 1
	}
	cfg.BatchSize = batchSize
	cfg.Domain = domain
	cfg.ContinueOnError = continueOnError

	logCfg := logger.DefaultConfig()
	logCfg.Level = logger.ParseLevel(cfg.LogLevel)
	logCfg.EnableConsole = verbose
	if verbose {
		logCfg.Level = logger.LevelDebug
	}
	if err := logger.Init(logCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: file logging disabled: %v\n", err)
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Input:  %s\n", inputPath)
	fmt.Printf("Output: %s\n", outputPath)
	fmt.Printf("Domain: %s\n", domain)
	fmt.Println()

	client, err := translate.NewGemini(ctx, cfg.APIKey, cfg.Model, cfg.FallbackModel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot create translation client: %v\n", err)
		return 1
	}
	defer client.Close()

	registry, err := fonts.NewRegistry(cfg.FontsDir, cfg.DefaultFont)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot load fonts: %v\n", err)
		return 1
	}
	retrier := translate.NewRetrier(translate.RetrierConfig{
		MaxAttempts:       cfg.MaxRetries,
		BaseDelay:         time.Duration(cfg.BaseDelaySeconds * float64(time.Second)),
		RequestsPerMinute: cfg.RequestsPerMinute,
	})
	batcher := translate.NewBatcher(client, retrier, cfg.Domain, cfg.BatchSize, cfg.ContinueOnError)

	pipeline := pdf.NewPipeline(cfg,
		pdf.NewExtractor(cfg.ContinueOnError),
		batcher,
		pdf.NewCompositor(registry))

	result, err := pipeline.Translate(ctx, inputPath, outputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logger.Error("run failed", err)
		return 1
	}

	fmt.Printf("=== Translation Complete ===\n")
	fmt.Printf("Pages:       %d\n", result.PageCount)
	fmt.Printf("Segments:    %d\n", result.Total)
	fmt.Printf("Translated:  %d\n", result.Translated)
	if result.Fallback > 0 {
		fmt.Printf("Kept source: %d\n", result.Fallback)
	}
	if result.Overflow > 0 {
		fmt.Printf("Overflowing: %d (text did not fit at minimum font size)\n", result.Overflow)
	}
	fmt.Printf("Output:      %s\n", result.OutputPath)
	return 0
}
