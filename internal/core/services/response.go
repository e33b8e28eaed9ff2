package services

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/comitanigiacomo/kanso-insights/internal/core/domain"
)

const (
	msgNoTextResponse = "No text response from Claude"
	msgNoJSON         = "Could not find JSON in response"
)

// newValidator returns the validator used for every generated payload.
func newValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

// firstText returns the first text block of resp. Any other block type is
// not a usable answer.
func firstText(resp *domain.GenerateResponse) (string, error) {
	if resp != nil {
		for _, block := range resp.Content {
			if block.Type == domain.ContentTypeText {
				return block.Text, nil
			}
		}
	}
	return "", domain.NewMalformedResponseError(msgNoTextResponse)
}

// extractJSON returns the span from the first '{' to the last '}' of text,
// which strips prose and code fences around a single object.
func extractJSON(text string) (string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", domain.NewMalformedResponseError(msgNoJSON)
	}

	raw := text[start : end+1]
	if !json.Valid([]byte(raw)) {
		return "", domain.NewMalformedResponseError(msgNoJSON)
	}
	return raw, nil
}

// decodeText extracts the JSON object embedded in text into out and checks
// it against out's validate tags. Parse failures are MalformedResponse,
// shape failures are ValidationError.
func decodeText(v *validator.Validate, text string, out any) error {
	raw, err := extractJSON(text)
	if err != nil {
		return err
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return domain.NewValidationError(err)
		}
		return domain.NewMalformedResponseError(msgNoJSON)
	}

	if err := v.Struct(out); err != nil {
		return domain.NewValidationError(err)
	}
	return nil
}

// decodeResponse is firstText followed by decodeText. It returns the raw
// text for callers that keep it.
func decodeResponse(v *validator.Validate, resp *domain.GenerateResponse, out any) (string, error) {
	text, err := firstText(resp)
	if err != nil {
		return "", err
	}
	return text, decodeText(v, text, out)
}
