package content

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStore_AccessorsReturnCopies(t *testing.T) {
	store := Default()

	projects := store.Projects()
	projects[0].Title = "mutated"
	testimonials := store.Testimonials()
	testimonials[0].Name = "mutated"
	profile := store.Profile()
	profile.Contact.Social[0].Handle = "mutated"

	if store.Projects()[0].Title != "Modern Living Room" {
		t.Fatalf("store projects were mutated through accessor")
	}
	if store.Testimonials()[0].Name != "Client A" {
		t.Fatalf("store testimonials were mutated through accessor")
	}
	if store.Profile().Contact.Social[0].Handle != "@yourpage" {
		t.Fatalf("store profile was mutated through accessor")
	}
}

func TestNewStore_CopiesInput(t *testing.T) {
	projects := []Project{{Title: "One", Image: "/one.jpg"}}
	store := NewStore(Profile{}, projects, nil)
	projects[0].Title = "changed"

	want := []Project{{Title: "One", Image: "/one.jpg"}}
	if diff := cmp.Diff(want, store.Projects()); diff != "" {
		t.Fatalf("projects mismatch (-want +got):\n%s", diff)
	}
	if got := store.Testimonials(); len(got) != 0 {
		t.Fatalf("expected no testimonials, got %d", len(got))
	}
}

func TestDefault_MatchesShippedContent(t *testing.T) {
	store := Default()
	if got := len(store.Projects()); got != 3 {
		t.Fatalf("expected 3 projects, got %d", got)
	}
	if got := len(store.Testimonials()); got != 2 {
		t.Fatalf("expected 2 testimonials, got %d", got)
	}
	if err := Validate(store); err != nil {
		t.Fatalf("default content must validate: %v", err)
	}
}

func TestNilStore(t *testing.T) {
	var store *Store
	if store.Projects() != nil || store.Testimonials() != nil {
		t.Fatalf("nil store should return nil lists")
	}
}
