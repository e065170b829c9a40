// Package text renders the portfolio as plain text for terminals, previews
// and clients that ask for text/plain.
package text
