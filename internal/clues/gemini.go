package clues

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const (
	defaultRegion = "europe-west1"
	defaultModel  = "gemini-2.5-flash"
)

const writePrompt = `Write one short crossword clue for each of these %s-themed words.

Respond ONLY with a JSON object mapping each word to its clue, no commentary
and no markdown:
{"WORD": "clue", ...}

Rules:
- One clue per word, at most ten words long.
- Never use the word itself (or an obvious derivative) inside its clue.
- Clues must be factual and family-friendly.

Words: %s`

// ClueWriter fills missing clues in a word bank through Gemini. It is
// a one-time setup tool that runs before generation, never inside the
// per-puzzle path.
type ClueWriter struct {
	client    *genai.Client
	modelName string
}

// NewClueWriter creates a writer using Application Default Credentials.
// Set GOOGLE_APPLICATION_CREDENTIALS to the service account key file path.
func NewClueWriter(ctx context.Context, projectID, region string) (*ClueWriter, error) {
	if region == "" {
		region = defaultRegion
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  projectID,
		Location: region,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &ClueWriter{
		client:    client,
		modelName: defaultModel,
	}, nil
}

// Close releases resources held by the client.
func (w *ClueWriter) Close() error {
	return nil
}

// WriteClues asks the model for one clue per word and returns the
// parsed mapping. Words the model skipped are simply absent; the
// caller falls back to synthesized clues for those.
func (w *ClueWriter) WriteClues(ctx context.Context, theme string, words []string) (map[string]string, error) {
	if len(words) == 0 {
		return map[string]string{}, nil
	}

	prompt := fmt.Sprintf(writePrompt, theme, strings.Join(words, ", "))
	resp, err := w.client.Models.GenerateContent(ctx, w.modelName,
		[]*genai.Content{{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		}},
		&genai.GenerateContentConfig{
			Temperature:      genai.Ptr(float32(0.7)),
			ResponseMIMEType: "application/json",
		},
	)
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("empty gemini response")
	}

	var raw map[string]string
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("parse clue JSON: %w\nraw response: %s", err, text)
	}

	out := make(map[string]string, len(raw))
	for word, clue := range raw {
		word = strings.ToUpper(strings.TrimSpace(word))
		clue = strings.TrimSpace(clue)
		if word != "" && clue != "" {
			out[word] = clue
		}
	}
	return out, nil
}
