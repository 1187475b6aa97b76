// Package server exposes the generation engine over a small HTTP API:
// generate a puzzle for given parameters, then fetch it back by seed.
// The renderer and QA tooling consume the same JSON contract the batch
// CLI writes to disk.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"crossword_gen_go/internal/engine"
	"crossword_gen_go/internal/lexicon"
	"crossword_gen_go/internal/placement"
	"crossword_gen_go/internal/types"
	"crossword_gen_go/internal/validate"
)

// cacheKey identifies one generation request. The same seed with a
// different size, ratio or theme is a different puzzle, so every
// request parameter participates in the key.
type cacheKey struct {
	seed       uint64
	gridSize   int
	blockRatio float64
	theme      string
}

// Server bundles the router, the shared lexicon and the puzzles
// generated so far. The lexicon is read-only, so handler goroutines
// can generate concurrently without coordination beyond the store
// maps. bySeed backs the fetch-by-seed routes and holds the most
// recently generated puzzle per seed.
type Server struct {
	r   *chi.Mux
	lex *lexicon.Lexicon

	mu      sync.RWMutex
	puzzles map[cacheKey]*types.Puzzle
	bySeed  map[uint64]*types.Puzzle
}

// New constructs a Server, installs middleware, and registers routes.
func New(lex *lexicon.Lexicon) *Server {
	s := &Server{
		r:       chi.NewRouter(),
		lex:     lex,
		puzzles: make(map[cacheKey]*types.Puzzle),
		bySeed:  make(map[uint64]*types.Puzzle),
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(30 * time.Second))
	s.r.Use(jsonContentType)

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.r.Post("/api/puzzles", s.handleGenerate)
	s.r.Get("/api/puzzles", s.handleList)
	s.r.Get("/api/puzzles/{seed}", s.handleGet)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

type generateRequest struct {
	Seed       uint64  `json:"seed"`
	GridSize   int     `json:"grid_size"`
	BlockRatio float64 `json:"block_ratio"`
	Theme      string  `json:"theme"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	key := cacheKey{
		seed:       req.Seed,
		gridSize:   req.GridSize,
		blockRatio: req.BlockRatio,
		theme:      req.Theme,
	}
	s.mu.RLock()
	cached, ok := s.puzzles[key]
	s.mu.RUnlock()
	if ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	puz, err := engine.Generate(s.lex, engine.Params{
		GridSize:   req.GridSize,
		BlockRatio: req.BlockRatio,
		Theme:      req.Theme,
	}, req.Seed)
	if err != nil {
		var verr *validate.Error
		switch {
		case errors.Is(err, placement.ErrPlacementFailed):
			log.Warn().Uint64("seed", req.Seed).Msg("placement failed, caller should retry with a new seed")
			writeError(w, http.StatusUnprocessableEntity, "placement failed for this seed, retry with another")
		case errors.As(err, &verr):
			log.Error().Uint64("seed", req.Seed).Interface("violations", verr.Violations).Msg("generated puzzle failed validation")
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"error":      "validation_failed",
				"violations": verr.Violations,
			})
		default:
			log.Error().Err(err).Uint64("seed", req.Seed).Msg("generation failed")
			writeError(w, http.StatusInternalServerError, "generation failed")
		}
		return
	}

	s.mu.Lock()
	s.puzzles[key] = puz
	s.bySeed[req.Seed] = puz
	s.mu.Unlock()

	log.Info().Uint64("seed", req.Seed).Int("entries", len(puz.Entries)).Msg("puzzle generated")
	writeJSON(w, http.StatusCreated, puz)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	seed, err := strconv.ParseUint(chi.URLParam(r, "seed"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "seed must be an unsigned integer")
		return
	}

	s.mu.RLock()
	puz, ok := s.bySeed[seed]
	s.mu.RUnlock()
	if !ok {
		writeError(w, http.StatusNotFound, "no puzzle for this seed")
		return
	}
	writeJSON(w, http.StatusOK, puz)
}

type puzzleSummary struct {
	Seed     uint64 `json:"seed"`
	GridSize int    `json:"grid_size"`
	Theme    string `json:"theme,omitempty"`
	Entries  int    `json:"entries"`
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	list := make([]puzzleSummary, 0, len(s.bySeed))
	for seed, p := range s.bySeed {
		list = append(list, puzzleSummary{
			Seed:     seed,
			GridSize: p.GridSize,
			Theme:    p.Theme,
			Entries:  len(p.Entries),
		})
	}
	s.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool { return list[i].Seed < list[j].Seed })
	writeJSON(w, http.StatusOK, list)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
