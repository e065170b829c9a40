// Package render defines the contract between page composition and the
// concrete renderers (HTML, plain text), plus the helpers they share: hidden
// form fields, error mapping and the read-only list contract.
package render
