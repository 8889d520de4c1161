package jsonx

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/kaptinlin/jsonrepair"
)

// Thin wrapper so hot paths can swap JSON implementations in one place.
var (
	Marshal       = json.Marshal
	MarshalIndent = json.MarshalIndent
	Unmarshal     = json.Unmarshal
	NewDecoder    = json.NewDecoder
	NewEncoder    = json.NewEncoder
)

type RawMessage = json.RawMessage
type Number = json.Number

// DecodeLenient unmarshals backend output into v. Markdown code fences are
// stripped first; when the payload still does not parse it is run through
// jsonrepair once before giving up.
func DecodeLenient(raw string, v any) error {
	payload := stripFences(raw)
	if payload == "" {
		return fmt.Errorf("empty JSON payload")
	}
	err := json.Unmarshal([]byte(payload), v)
	if err == nil {
		return nil
	}
	repaired, repairErr := jsonrepair.JSONRepair(payload)
	if repairErr != nil {
		return fmt.Errorf("decode JSON: %w", err)
	}
	if err := json.Unmarshal([]byte(repaired), v); err != nil {
		return fmt.Errorf("decode repaired JSON: %w", err)
	}
	return nil
}

// DecodeList accepts either a bare JSON array or an object holding the array
// under key, as backends answering in json_object mode tend to wrap lists.
func DecodeList[T any](raw, key string) ([]T, error) {
	payload := stripFences(raw)
	if strings.HasPrefix(payload, "[") {
		var list []T
		if err := DecodeLenient(payload, &list); err != nil {
			return nil, err
		}
		return list, nil
	}

	var envelope map[string]RawMessage
	if err := DecodeLenient(payload, &envelope); err != nil {
		return nil, err
	}
	field, ok := envelope[key]
	if !ok {
		for _, value := range envelope {
			if trimmed := strings.TrimSpace(string(value)); strings.HasPrefix(trimmed, "[") {
				field = value
				ok = true
				break
			}
		}
	}
	if !ok {
		return nil, fmt.Errorf("no %q list in payload", key)
	}
	var list []T
	if err := json.Unmarshal(field, &list); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return list, nil
}

func stripFences(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.IndexByte(trimmed, '\n'); idx >= 0 {
		trimmed = trimmed[idx+1:]
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
