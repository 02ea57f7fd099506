// Package template defines the template engine seam used by renderers. The
// pongo subpackage provides the default pongo2 implementation.
package template
