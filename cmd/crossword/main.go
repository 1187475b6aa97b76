package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"crossword_gen_go/internal/clues"
	"crossword_gen_go/internal/db"
	"crossword_gen_go/internal/engine"
	"crossword_gen_go/internal/lexicon"
	"crossword_gen_go/internal/visualizer"
)

func main() {
	size := flag.Int("size", engine.DefaultGridSize, "grid size")
	count := flag.Int("count", 10, "number of puzzles to generate")
	ratio := flag.Float64("ratio", 0, "target block ratio (0 = default)")
	seedBase := flag.Uint64("seed", 1, "first seed of the batch")
	theme := flag.String("theme", "", "theme label (defaults to the word list's)")
	wordlist := flag.String("wordlist", "", "word list path (WORD,clue per line)")
	outDir := flag.String("out", "puzzles", "output directory for puzzle JSON")
	upload := flag.Bool("upload", false, "upload accepted puzzles to PocketBase")
	show := flag.Bool("show", false, "print the first accepted puzzle")
	fillClues := flag.Bool("fill-clues", false, "fill missing clues via Gemini before generating")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found")
	}
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	lex, err := loadLexicon(*theme, *wordlist)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word list")
	}
	words, lengths := lex.Stats()
	log.Info().Int("words", words).Int("lengths", lengths).Str("theme", lex.Theme()).Msg("lexicon loaded")

	if *fillClues {
		lex = fillMissingClues(lex)
	}

	start := time.Now()
	progress := make(chan engine.ProgressReport)
	go renderProgress(progress, start)

	results := engine.GenerateBatch(context.Background(), lex, engine.Params{
		GridSize:   *size,
		BlockRatio: *ratio,
		Theme:      *theme,
	}, *seedBase, *count, progress)
	close(progress)

	ok, failed := engine.Summary(results)
	log.Info().
		Int("accepted", ok).
		Int("failed", len(failed)).
		Dur("elapsed", time.Since(start)).
		Msg("batch finished")
	for _, seed := range failed {
		log.Warn().Uint64("seed", seed).Msg("seed failed, retry with a different seed")
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatal().Err(err).Msg("failed to create output directory")
	}

	var uploads int
	if *upload {
		if err := db.Init(); err != nil {
			log.Fatal().Err(err).Msg("PocketBase init failed")
		}
		if err := db.Authenticate(); err != nil {
			log.Fatal().Err(err).Msg("PocketBase auth failed")
		}
	}

	shown := false
	for _, r := range results {
		if r.Err != nil {
			continue
		}

		data, err := r.Puzzle.ToJSON()
		if err != nil {
			log.Error().Err(err).Uint64("seed", r.Seed).Msg("failed to serialize puzzle")
			continue
		}
		name := filepath.Join(*outDir, fmt.Sprintf("crossword_%dx%d_seed%d.json", *size, *size, r.Seed))
		if err := os.WriteFile(name, data, 0o644); err != nil {
			log.Error().Err(err).Str("file", name).Msg("failed to write puzzle")
			continue
		}

		if *upload {
			if _, err := db.UploadPuzzle(r.Puzzle); err != nil {
				log.Error().Err(err).Uint64("seed", r.Seed).Msg("upload failed")
			} else {
				uploads++
			}
		}

		if *show && !shown {
			shown = true
			viz := visualizer.NewVisualizer(r.Puzzle)
			viz.Print()
			viz.PrintSolution()
			viz.PrintClues()
		}
	}

	if *upload {
		log.Info().Int("uploaded", uploads).Msg("upload complete")
	}
}

func loadLexicon(theme, path string) (*lexicon.Lexicon, error) {
	if path == "" {
		return lexicon.Default(), nil
	}
	if theme == "" {
		theme = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return lexicon.LoadFile(theme, path)
}

// fillMissingClues asks Gemini for clues the word bank lacks. Purely a
// setup step: generation itself never reaches the network.
func fillMissingClues(lex *lexicon.Lexicon) *lexicon.Lexicon {
	projectID := os.Getenv("GCP_PROJECT_ID")
	if projectID == "" {
		log.Warn().Msg("GCP_PROJECT_ID not set, skipping clue filling")
		return lex
	}
	missing := lex.MissingClues()
	if len(missing) == 0 {
		return lex
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	writer, err := clues.NewClueWriter(ctx, projectID, os.Getenv("GCP_REGION"))
	if err != nil {
		log.Error().Err(err).Msg("clue writer unavailable, keeping synthesized fallbacks")
		return lex
	}
	defer writer.Close()

	written, err := writer.WriteClues(ctx, lex.Theme(), missing)
	if err != nil {
		log.Error().Err(err).Msg("clue filling failed, keeping synthesized fallbacks")
		return lex
	}
	log.Info().Int("requested", len(missing)).Int("written", len(written)).Msg("clues filled")
	return lex.WithExtraClues(written)
}

// renderProgress draws a single updating progress line, cleared before
// each redraw.
func renderProgress(progress <-chan engine.ProgressReport, start time.Time) {
	lastLine := ""
	for p := range progress {
		if len(lastLine) > 0 {
			fmt.Printf("\r%s\r", strings.Repeat(" ", len(lastLine)))
		}
		line := fmt.Sprintf("\rGenerating puzzles... %s - %s [%s elapsed]",
			progressBar(p.Progress, 20), p.Message, formatDuration(time.Since(start)))
		fmt.Print(line)
		lastLine = line

		if p.Completed {
			fmt.Println()
		}
	}
}

func progressBar(progress float64, width int) string {
	filled := int(progress * float64(width))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("[%s] %.1f%%", bar, progress*100)
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
