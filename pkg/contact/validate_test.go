package contact

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValidate_RequiresEveryField(t *testing.T) {
	cases := []struct {
		name   string
		values Values
		want   []Field
	}{
		{name: "all empty", values: Values{}, want: []Field{FieldName, FieldEmail, FieldMessage}},
		{name: "missing name", values: Values{Email: "a@x.com", Message: "Hi"}, want: []Field{FieldName}},
		{name: "missing email", values: Values{Name: "Ann", Message: "Hi"}, want: []Field{FieldEmail}},
		{name: "missing message", values: Values{Name: "Ann", Email: "a@x.com"}, want: []Field{FieldMessage}},
		{name: "complete", values: Values{Name: "Ann", Email: "a@x.com", Message: "Hi"}, want: nil},
		{name: "whitespace counts as filled", values: Values{Name: " ", Email: "a@x.com", Message: "Hi"}, want: nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Validate(tc.values, ValidateOptions{}).Fields()
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("fields mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidate_EmailFormat(t *testing.T) {
	opts := ValidateOptions{CheckEmailFormat: true}
	base := Values{Name: "Ann", Message: "Hi"}

	for _, email := range []string{"a@x.com", "ann.lee+work@studio.example"} {
		base.Email = email
		if errs := Validate(base, opts); errs != nil {
			t.Fatalf("%q should be accepted, got %v", email, errs)
		}
	}
	for _, email := range []string{"ann", "Ann <a@x.com>", "a@", "@x.com"} {
		base.Email = email
		errs := Validate(base, opts)
		if !errs.Has(FieldEmail) {
			t.Fatalf("%q should be rejected", email)
		}
	}

	base.Email = "ann"
	if errs := Validate(base, ValidateOptions{}); errs != nil {
		t.Fatalf("format check disabled should accept %q, got %v", base.Email, errs)
	}
}

func TestFieldErrors_ByName(t *testing.T) {
	errs := FieldErrors{}
	errs.Add(FieldEmail, "Email is required")
	errs.Add(FieldEmail, "  ")

	want := map[string][]string{"email": {"Email is required"}}
	if diff := cmp.Diff(want, errs.ByName()); diff != "" {
		t.Fatalf("by name mismatch (-want +got):\n%s", diff)
	}
}
