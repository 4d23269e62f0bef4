package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/kalebabebe/mitx-canvas-tools/internal/config"
	"github.com/kalebabebe/mitx-canvas-tools/internal/convert"
	"github.com/kalebabebe/mitx-canvas-tools/internal/imscc"
	"github.com/kalebabebe/mitx-canvas-tools/internal/logging"
	"github.com/kalebabebe/mitx-canvas-tools/internal/notes"
	"github.com/kalebabebe/mitx-canvas-tools/internal/olx"
	"github.com/kalebabebe/mitx-canvas-tools/internal/qti"
	"github.com/kalebabebe/mitx-canvas-tools/internal/runstore"
)

func main() {
	var (
		archivePath = flag.String("in", "", "path to the Canvas .imscc export (required)")
		outputDir   = flag.String("out", "", "OLX output directory (default from config)")
		configDir   = flag.String("config", ".", "directory holding config.yaml")
	)
	flag.Parse()

	if *archivePath == "" {
		fmt.Fprintln(os.Stderr, "usage: canvas2olx -in course.imscc [-out dir]")
		os.Exit(2)
	}

	cfg, err := config.Load(*configDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	if *outputDir != "" {
		cfg.Convert.OutputDir = *outputDir
	}

	log := logging.New(cfg.Log.Level, cfg.Log.File)
	defer log.Sync()

	if err := run(context.Background(), cfg, *archivePath, log); err != nil {
		log.Error("conversion failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, archivePath string, log *zap.Logger) error {
	archive, err := imscc.Open(archivePath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer archive.Close()

	manifest, err := imscc.ParseManifest(archive)
	if err != nil {
		return fmt.Errorf("parse manifest: %w", err)
	}
	quizzes := manifest.Assessments()
	log.Info("archive opened",
		zap.String("course", manifest.Identifier),
		zap.Int("quizzes", len(quizzes)),
	)

	engine := convert.New(convert.Options{
		Workers:      cfg.Convert.Workers,
		OptionSelect: cfg.Convert.OptionSelect,
		Logger:       log,
	})
	loader := qti.NewLoader(archive, log)

	writer, err := olx.NewWriter(cfg.Convert.OutputDir)
	if err != nil {
		return err
	}
	noteBuilder := notes.NewBuilder()

	var courseReport convert.Report
	for _, quiz := range quizzes {
		file := quiz.QuizFile()
		if file == "" {
			log.Warn("assessment resource has no quiz file", zap.String("resource", quiz.Identifier))
			continue
		}
		data, err := archive.ReadFile(file)
		if err != nil {
			return fmt.Errorf("read quiz %s: %w", file, err)
		}
		assessment, err := qti.ParseAssessment(data)
		if err != nil {
			return fmt.Errorf("parse quiz %s: %w", file, err)
		}
		items := loader.Load(assessment)

		result, err := engine.Run(ctx, items)
		if err != nil {
			if errors.Is(err, convert.ErrNoQuestions) {
				log.Warn("quiz has no questions", zap.String("quiz", assessment.Title))
				continue
			}
			return fmt.Errorf("convert quiz %s: %w", assessment.Title, err)
		}

		if _, err := writer.WriteQuiz(result.Outcomes); err != nil {
			return err
		}
		noteBuilder.AddQuiz(assessment.Title, result.Outcomes)
		courseReport = courseReport.Merge(result.Report)
		log.Info("quiz converted",
			zap.String("quiz", assessment.Title),
			zap.Int("questions", result.Report.Total()),
			zap.Int("converted", result.Report.Counts[convert.OutcomeConverted]),
			zap.Int("unsupported", result.Report.Counts[convert.OutcomeUnsupported]),
		)
	}

	if err := noteBuilder.WriteFile(filepath.Join(cfg.Convert.OutputDir, "import_notes.md")); err != nil {
		return err
	}

	if cfg.History.Enabled {
		db, err := runstore.Open(ctx, runstore.Driver(cfg.History.Driver), cfg.History.DSN)
		if err != nil {
			return fmt.Errorf("open run history: %w", err)
		}
		defer db.Close()
		run, err := runstore.NewSQLStore(db).PutRun(ctx, filepath.Base(archivePath), courseReport)
		if err != nil {
			return fmt.Errorf("record run: %w", err)
		}
		log.Info("run recorded", zap.String("run_id", run.ID))
	}

	printSummary(courseReport)
	return nil
}

func printSummary(r convert.Report) {
	fmt.Printf("Converted %d of %d questions\n", r.Counts[convert.OutcomeConverted], r.Total())
	if n := r.Counts[convert.OutcomeManual]; n > 0 {
		fmt.Printf("  %d need manual grading\n", n)
	}
	if n := r.Counts[convert.OutcomePlaceholder]; n > 0 {
		fmt.Printf("  %d written as placeholders\n", n)
	}
	if n := r.Counts[convert.OutcomeUnsupported]; n > 0 {
		fmt.Printf("  %d not converted:\n", n)
		for sourceType, count := range r.Skipped {
			fmt.Printf("    %s: %d\n", sourceType, count)
		}
	}
}
