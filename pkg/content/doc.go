// Package content holds the hand-authored data shown on the page: projects,
// testimonials and the studio profile with its contact details. A Store is
// immutable once built; accessors return copies.
package content
