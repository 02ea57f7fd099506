// Package form composes fields, bare inputs and buttons into a form bound to
// a config store. Components are plain values attached to a Form through its
// Field, Input and Button methods. Resolve snapshots the store and turns every
// component into a view whose style attributes come from the first tier that
// sets them: component props, the named preset, the config defaults (the
// button section first for buttons) and finally style.Fallback. Field status
// is error when an explicit or context-supplied error message exists, success
// when a success message exists, and default otherwise. Inputs form a closed
// set of kinds decoded from YAML definitions through their kind key.
package form
