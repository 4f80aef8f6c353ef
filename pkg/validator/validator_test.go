package validator

import "testing"

func TestStructured_StrictValid(t *testing.T) {
	s := Structured{Mode: ModeStrict}
	out := s.Validate(`{"result": 42}`)
	if !out.OK {
		t.Fatalf("expected OK, got error %q", out.ErrorMessage)
	}
	parsed := out.Value.(map[string]any)
	if parsed["result"].(float64) != 42 {
		t.Fatalf("unexpected parsed value: %+v", parsed)
	}
}

func TestStructured_StrictRejectsTrailingProse(t *testing.T) {
	s := Structured{Mode: ModeStrict}
	out := s.Validate(`result: 42`)
	if out.OK {
		t.Fatal("expected strict mode to reject non-JSON text")
	}
	if out.RetryPromptSuffix == "" {
		t.Fatal("expected a retry prompt addendum on failure")
	}
}

func TestStructured_ExtractFindsEmbeddedJSON(t *testing.T) {
	s := Structured{Mode: ModeExtract}
	out := s.Validate(`Sure, here you go: {"result": 42} -- hope that helps!`)
	if !out.OK {
		t.Fatalf("expected extract mode to find the embedded object, got %q", out.ErrorMessage)
	}
}

func TestStructured_SchemaMissingField(t *testing.T) {
	s := Structured{Mode: ModeStrict, Schema: Schema{"name": FieldString}}
	out := s.Validate(`{"other": 1}`)
	if out.OK {
		t.Fatal("expected schema validation to fail on a missing required field")
	}
}

func TestStructured_SchemaWrongType(t *testing.T) {
	s := Structured{Mode: ModeStrict, Schema: Schema{"count": FieldNumber}}
	out := s.Validate(`{"count": "not a number"}`)
	if out.OK {
		t.Fatal("expected schema validation to fail on a type mismatch")
	}
}

func TestFreeText_PredicateFailureCarriesMessage(t *testing.T) {
	f := FreeText{Predicate: func(text string) (bool, string) {
		return false, "must mention widgets"
	}}
	out := f.Validate("irrelevant text")
	if out.OK {
		t.Fatal("expected failure")
	}
	if out.RetryPromptSuffix != "must mention widgets" {
		t.Fatalf("expected the predicate's message verbatim, got %q", out.RetryPromptSuffix)
	}
}

func TestFreeText_PanicRecovered(t *testing.T) {
	f := FreeText{Predicate: func(text string) (bool, string) {
		panic("boom")
	}}
	out := f.Validate("anything")
	if out.OK {
		t.Fatal("expected a panicking predicate to be treated as a failure")
	}
	if out.ErrorMessage == "" {
		t.Fatal("expected the panic value to surface in ErrorMessage")
	}
}

func TestPattern_MatchReturnsWholeMatch(t *testing.T) {
	p := &Pattern{Expr: `\d{3}-\d{4}`}
	out := p.Validate("call 555-1234 now")
	if !out.OK || out.Value.(string) != "555-1234" {
		t.Fatalf("unexpected outcome: %+v", out)
	}
}

func TestPattern_CaseInsensitive(t *testing.T) {
	p := &Pattern{Expr: "hello", CaseInsensitive: true}
	out := p.Validate("HELLO world")
	if !out.OK {
		t.Fatal("expected case-insensitive match to succeed")
	}
}

func TestPattern_NoMatch(t *testing.T) {
	p := &Pattern{Expr: `^\d+$`}
	out := p.Validate("not a number")
	if out.OK {
		t.Fatal("expected no match")
	}
}

func TestPattern_RepeatedValidationIsIdempotent(t *testing.T) {
	p := &Pattern{Expr: `[a-z]+`}
	first := p.Validate("ABC def")
	second := p.Validate("ABC def")
	if first.Value != second.Value {
		t.Fatalf("expected repeated validation to yield the same match: %v vs %v", first.Value, second.Value)
	}
}
