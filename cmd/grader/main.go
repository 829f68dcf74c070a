package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/MuhamadAgungGumelar/answer-grader-be/internal/core/export"
	"github.com/MuhamadAgungGumelar/answer-grader-be/internal/core/ocr"
	"github.com/MuhamadAgungGumelar/answer-grader-be/internal/core/pdftext"
	"github.com/MuhamadAgungGumelar/answer-grader-be/internal/core/similarity"
	"github.com/MuhamadAgungGumelar/answer-grader-be/internal/shared/config"
	"github.com/MuhamadAgungGumelar/answer-grader-be/internal/shared/utils"
)

const usage = `Usage:
  grader compare [-max 10] [-compat] [-stem] [-v] output.pdf model.pdf
  grader score   [-max 10] [-compat] [-stem] "text a" "text b"
  grader convert [-o answer.pdf] image.png`

var errUsage = errors.New("invalid usage")

func main() {
	cfg := config.LoadConfig()
	utils.InitLogger(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, usage)
			os.Exit(2)
		}
		log.Error().Err(err).Msg("❌ grader failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	switch args[0] {
	case "compare":
		return runCompare(ctx, cfg, args[1:], stdout)
	case "score":
		return runScore(cfg, args[1:], stdout)
	case "convert":
		return runConvert(ctx, cfg, args[1:], stdout)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
}

// scoringFlags registers the flags shared by compare and score
func scoringFlags(fs *flag.FlagSet, cfg *config.Config) (maxMarks *float64, build func() *similarity.Scorer) {
	maxMarks = fs.Float64("max", 10, "Maximum marks, greater than 0")
	compat := fs.Bool("compat", cfg.ScorerCompat, "Lowercase and drop single-character tokens")
	stem := fs.Bool("stem", cfg.ScorerStem, "Apply English stemming")

	return maxMarks, func() *similarity.Scorer {
		opts := similarity.DefaultOptions()
		if *compat {
			opts = similarity.CompatOptions()
		}
		opts.Stem = *stem
		return similarity.NewScorer(opts)
	}
}

func runCompare(ctx context.Context, cfg *config.Config, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("compare", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	maxMarks, buildScorer := scoringFlags(fs, cfg)
	verbose := fs.Bool("v", false, "Print the extracted contents")
	if err := fs.Parse(args); err != nil || fs.NArg() != 2 {
		return errUsage
	}

	// Reject bad maxima before opening any file
	if err := similarity.ValidateMaxMarks(*maxMarks); err != nil {
		return err
	}

	extractor := pdftext.NewTabulaExtractor("")
	outputText, err := extractor.ExtractFile(ctx, fs.Arg(0))
	if err != nil {
		return fmt.Errorf("%s: %w", fs.Arg(0), err)
	}
	modelText, err := extractor.ExtractFile(ctx, fs.Arg(1))
	if err != nil {
		return fmt.Errorf("%s: %w", fs.Arg(1), err)
	}

	if *verbose {
		fmt.Fprintf(stdout, "Output PDF Content:\n%s\n\n", outputText)
		fmt.Fprintf(stdout, "Model Answer PDF Content:\n%s\n\n", modelText)
	}

	cmp, err := buildScorer().CompareDocuments(similarity.Document(outputText), similarity.Document(modelText))
	if err != nil {
		return err
	}
	return printScore(stdout, cmp.Similarity, *maxMarks)
}

func runScore(cfg *config.Config, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("score", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	maxMarks, buildScorer := scoringFlags(fs, cfg)
	if err := fs.Parse(args); err != nil || fs.NArg() != 2 {
		return errUsage
	}

	if err := similarity.ValidateMaxMarks(*maxMarks); err != nil {
		return err
	}

	score, err := buildScorer().Similarity(fs.Arg(0), fs.Arg(1))
	if err != nil {
		return err
	}
	return printScore(stdout, score, *maxMarks)
}

func runConvert(ctx context.Context, cfg *config.Config, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	outPath := fs.String("o", "", "Output PDF path (default: image name with .pdf)")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		return errUsage
	}

	imagePath := fs.Arg(0)
	if *outPath == "" {
		*outPath = imagePath[:len(imagePath)-len(filepath.Ext(imagePath))] + ".pdf"
	}

	imageData, err := os.ReadFile(imagePath)
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}

	provider, err := ocr.NewProvider(ocr.ProviderConfig{
		Name: cfg.OCRProvider,
		Vision: ocr.VisionConfig{
			APIKey:   cfg.GoogleVisionAPIKey,
			Endpoint: cfg.GoogleVisionEndpoint,
		},
		OCRSpaceAPIKey:    cfg.OCRSpaceAPIKey,
		OCRSpaceLanguage:  cfg.OCRSpaceLanguage,
		TesseractLanguage: cfg.TesseractLanguage,
	})
	if err != nil {
		return err
	}
	ocrService := ocr.NewService(provider)

	log.Info().Str("provider", ocrService.GetProviderName()).Str("image", imagePath).Msg("🔍 Extracting text")
	_, lines, err := ocrService.ExtractLines(ctx, imageData)
	if err != nil {
		return err
	}

	pdfData, err := export.NewService(export.TextPDFOptions{FontPath: cfg.PDFFontPath, Title: "Answer"}).RenderText(lines)
	if err != nil {
		return err
	}
	if err := os.WriteFile(*outPath, pdfData, 0644); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}

	fmt.Fprintf(stdout, "PDF saved to %s (%d lines)\n", *outPath, len(lines))
	return nil
}

func printScore(w io.Writer, score, maxMarks float64) error {
	marks, err := similarity.ComputeMarks(score, maxMarks)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Similarity Score: %s\n", similarity.FormatPercent(score))
	fmt.Fprintf(w, "Marks Obtained: %s\n", similarity.FormatMarks(marks, maxMarks))
	return nil
}
