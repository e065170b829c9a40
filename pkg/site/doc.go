// Package site composes the portfolio page. It owns the content store, the
// renderer registry and theme selection, and hands out one contact
// controller per visitor session.
//
// A Site is safe for concurrent use; the controllers it creates are not.
package site
