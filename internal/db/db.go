// Package db persists accepted puzzles to PocketBase so the page-layout
// renderer and QA tooling can fetch them later.
package db

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/habibrosyad/pocketbase-go-sdk"
	"github.com/joho/godotenv"

	"crossword_gen_go/internal/types"
)

const collection = "crosswords"

var client *pocketbase.Client

// Init loads credentials and creates the PocketBase client. Call once
// before any other function in this package.
func Init() error {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		fmt.Println("⚠️ Warning: No .env file found")
	}

	url := os.Getenv("POCKETBASE_URL")
	if url == "" {
		return fmt.Errorf("POCKETBASE_URL is not set")
	}
	email := os.Getenv("POCKETBASE_EMAIL")
	password := os.Getenv("POCKETBASE_PASSWORD")

	client = pocketbase.NewClient(url,
		pocketbase.WithSuperuserEmailPassword(email, password))

	if err := client.Authorize(); err != nil {
		return fmt.Errorf("initial authorization failed: %v", err)
	}
	return nil
}

// Authenticate verifies credentials and keeps the session fresh with a
// periodic re-authorization.
func Authenticate() error {
	err := client.Authorize()
	if err != nil {
		return fmt.Errorf("authentication failed: %v", err)
	}

	go func() {
		ticker := time.NewTicker(30 * time.Minute)
		for range ticker.C {
			if err := client.Authorize(); err != nil {
				fmt.Printf("⚠️ Re-authentication failed: %v\n", err)
			}
		}
	}()
	return nil
}

// RecordID derives the stable record ID for a puzzle seed.
func RecordID(seed uint64) string {
	return fmt.Sprintf("%06x", seed%0x1000000)
}

// UploadPuzzle stores an accepted puzzle. The record ID is derived from
// the seed so a batch re-run does not duplicate records.
func UploadPuzzle(p *types.Puzzle) (*pocketbase.ResponseCreate, error) {
	id := RecordID(p.Seed)

	puzzleJSON, err := p.ToJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal puzzle: %v", err)
	}

	data := map[string]any{
		"id":     id,
		"puzzle": string(puzzleJSON),
		"size":   fmt.Sprintf("%d", p.GridSize),
		"theme":  p.Theme,
		"seed":   fmt.Sprintf("%d", p.Seed),
	}

	exists, err := PuzzleExists(id)
	if err != nil {
		return nil, fmt.Errorf("failed to check if puzzle exists: %v", err)
	}
	if exists {
		return nil, fmt.Errorf("puzzle with ID %s already exists", id)
	}

	record, err := client.Create(collection, data)
	if err != nil {
		return nil, fmt.Errorf("failed to upload puzzle: %v", err)
	}
	return &record, nil
}

// GetPuzzle loads one puzzle by record ID.
func GetPuzzle(id string) (*types.Puzzle, error) {
	record, err := client.One(collection, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load puzzle %s: %v", id, err)
	}

	raw, ok := record["puzzle"].(string)
	if !ok {
		return nil, fmt.Errorf("record %s has no puzzle payload", id)
	}
	p, err := types.FromJSON([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal puzzle %s: %v", id, err)
	}
	return p, nil
}

// ListPuzzles pages through stored puzzles, optionally filtered by
// size and theme.
func ListPuzzles(page int, perPage int, filters map[string]string, sortField string, sortOrder string) (*pocketbase.ResponseList[map[string]any], error) {
	var filterRules []string

	if size, ok := filters["size"]; ok {
		filterRules = append(filterRules, fmt.Sprintf("size = \"%s\"", size))
	}
	if theme, ok := filters["theme"]; ok {
		filterRules = append(filterRules, fmt.Sprintf("theme = \"%s\"", theme))
	}

	sort := sortField
	if sortOrder == "desc" {
		sort = "-" + sortField
	}

	params := pocketbase.ParamsList{
		Page:    page,
		Size:    perPage,
		Sort:    sort,
		Filters: strings.Join(filterRules, " && "),
	}

	result, err := client.List(collection, params)
	return &result, err
}

// PuzzleExists reports whether a record with the given ID is stored.
func PuzzleExists(id string) (bool, error) {
	_, err := client.One(collection, id)
	if err != nil {
		if strings.Contains(err.Error(), "404") {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
