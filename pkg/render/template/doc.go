// Package template defines the template engine contract renderers depend on.
// The pongo subpackage provides the default implementation.
package template
