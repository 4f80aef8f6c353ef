package validator

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FieldType is the small primitive-type lattice a Structured schema
// describes its required fields with.
type FieldType string

const (
	FieldString  FieldType = "string"
	FieldNumber  FieldType = "number"
	FieldBoolean FieldType = "boolean"
	FieldArray   FieldType = "array"
	FieldObject  FieldType = "object"
)

// Schema describes the required fields of a structured reply and their
// primitive types. A nil Schema skips field validation entirely.
type Schema map[string]FieldType

// Mode selects how strictly Structured interprets the candidate text.
type Mode string

const (
	// ModeStrict requires the entire text to parse as JSON.
	ModeStrict Mode = "strict"

	// ModeExtract finds the largest well-formed JSON substring anywhere in
	// the text.
	ModeExtract Mode = "extract"
)

// Structured validates that a reply's text is parseable JSON, optionally
// checking it against a Schema of required field names and primitive
// types.
type Structured struct {
	Mode   Mode
	Schema Schema
}

func (s Structured) Validate(text string) Outcome {
	candidate := text
	if s.Mode == ModeExtract {
		extracted, ok := extractJSONObject(text)
		if !ok {
			return s.failure("no well-formed JSON object found in response")
		}
		candidate = extracted
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(candidate), &parsed); err != nil {
		return s.failure(fmt.Sprintf("response is not valid JSON: %v", err))
	}

	if s.Schema != nil {
		if err := s.checkSchema(parsed); err != nil {
			return s.failure(err.Error())
		}
	}

	return Outcome{OK: true, Value: parsed}
}

func (s Structured) checkSchema(parsed map[string]any) error {
	for field, want := range s.Schema {
		val, ok := parsed[field]
		if !ok {
			return fmt.Errorf("missing required field %q", field)
		}
		if !matchesType(val, want) {
			return fmt.Errorf("field %q must be of type %s", field, want)
		}
	}
	return nil
}

func matchesType(v any, want FieldType) bool {
	switch want {
	case FieldString:
		_, ok := v.(string)
		return ok
	case FieldNumber:
		_, ok := v.(float64)
		return ok
	case FieldBoolean:
		_, ok := v.(bool)
		return ok
	case FieldArray:
		_, ok := v.([]any)
		return ok
	case FieldObject:
		_, ok := v.(map[string]any)
		return ok
	default:
		return false
	}
}

func (s Structured) failure(message string) Outcome {
	var suffix strings.Builder
	suffix.WriteString("Your previous response was not valid JSON. Respond with only valid JSON")
	if s.Schema != nil {
		suffix.WriteString(" matching this schema: ")
		first := true
		for field, typ := range s.Schema {
			if !first {
				suffix.WriteString(", ")
			}
			first = false
			fmt.Fprintf(&suffix, "%s (%s)", field, typ)
		}
	}
	suffix.WriteString(", with no surrounding prose.")

	return Outcome{
		OK:                false,
		ErrorMessage:      message,
		RetryPromptSuffix: suffix.String(),
	}
}

// extractJSONObject returns the longest substring of text that is
// well-formed JSON. Each '{' or '[' is tried as a start: a bracket-matching
// pass finds where that value closes, the span is kept if json.Valid
// accepts it, and the search recurses past the start to compare it with
// the spans that begin later.
func extractJSONObject(text string) (string, bool) {
	start := strings.IndexAny(text, "{[")
	if start == -1 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	var end = -1
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				end = i
			}
		}
		if depth == 0 && end != -1 {
			break
		}
	}
	candidate := ""
	if end != -1 && json.Valid([]byte(text[start:end+1])) {
		candidate = text[start : end+1]
	}
	if later, ok := extractJSONObject(text[start+1:]); ok && len(later) > len(candidate) {
		candidate = later
	}
	return candidate, candidate != ""
}
