package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"crossword_gen_go/internal/lexicon"
	"crossword_gen_go/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found")
	}
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	var lex *lexicon.Lexicon
	if path := os.Getenv("WORDLIST_FILE"); path != "" {
		var err error
		lex, err = lexicon.LoadFile(os.Getenv("WORDLIST_THEME"), path)
		if err != nil {
			log.Fatal().Err(err).Str("file", path).Msg("failed to load word list")
		}
	} else {
		lex = lexicon.Default()
	}
	words, _ := lex.Stats()
	log.Info().Int("words", words).Str("theme", lex.Theme()).Msg("lexicon loaded")

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := server.New(lex)
	log.Info().Str("port", port).Msg("server started")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
