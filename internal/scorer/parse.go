package scorer

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseError reports a model response that could not be turned into a
// Score. Callers treat it as recoverable and fall back to the neutral
// priority.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unparseable model response: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// parseScore decodes a model response into a Score. Markdown code fences
// are stripped first; some models wrap JSON in them despite the response
// schema.
func parseScore(text string) (Score, error) {
	cleaned := stripFences(text)
	if cleaned == "" {
		return Score{}, &ParseError{Raw: text, Err: fmt.Errorf("empty response")}
	}

	var score Score
	if err := json.Unmarshal([]byte(cleaned), &score); err != nil {
		return Score{}, &ParseError{Raw: text, Err: err}
	}

	if score.Priority < 1 || score.Priority > 5 {
		return Score{}, &ParseError{Raw: text, Err: fmt.Errorf("priority %d out of range", score.Priority)}
	}

	return score, nil
}

// stripFences removes a surrounding markdown code fence, if any.
func stripFences(text string) string {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
	}
	return strings.TrimSpace(cleaned)
}
