package contact

import (
	"errors"
	"testing"
)

func TestState_LastWriteWinsPerField(t *testing.T) {
	state := NewState(Values{})

	writes := []struct {
		field Field
		value string
	}{
		{FieldName, "A"},
		{FieldEmail, "a@x.com"},
		{FieldName, "Ann"},
		{FieldMessage, "first"},
		{FieldMessage, ""},
		{FieldMessage, "Hi"},
		{FieldEmail, "ann@x.com"},
	}
	for _, w := range writes {
		if err := state.Set(w.field, w.value); err != nil {
			t.Fatalf("set %s: %v", w.field, err)
		}
	}

	want := Values{Name: "Ann", Email: "ann@x.com", Message: "Hi"}
	if got := state.Snapshot(); got != want {
		t.Fatalf("snapshot mismatch\nwant: %+v\n got: %+v", want, got)
	}
}

func TestState_SetUnknownField(t *testing.T) {
	state := NewState(Values{Name: "Ann"})
	if err := state.Set(Field("phone"), "123"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if got := state.Get(FieldName); got != "Ann" {
		t.Fatalf("unknown field write must not touch other fields, got name %q", got)
	}
}

func TestState_ResetClearsAllFields(t *testing.T) {
	state := NewState(Values{Name: "Ann", Email: "a@x.com", Message: "Hi"})
	state.Reset()
	if !state.IsZero() {
		t.Fatalf("expected empty state after reset, got %+v", state.Snapshot())
	}
}

func TestState_NilReceiver(t *testing.T) {
	var state *State
	if got := state.Get(FieldName); got != "" {
		t.Fatalf("nil state get: want empty, got %q", got)
	}
	if err := state.Set(FieldName, "x"); !errors.Is(err, ErrStateNil) {
		t.Fatalf("nil state set: want ErrStateNil, got %v", err)
	}
	state.Reset()
	if !state.IsZero() {
		t.Fatalf("nil state should report zero")
	}
}

func TestParseField(t *testing.T) {
	for _, raw := range []string{"name", " Email ", "MESSAGE"} {
		if _, err := ParseField(raw); err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
	}
	if _, err := ParseField("subject"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}
