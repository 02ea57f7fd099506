// Package openapi builds form definitions from the request bodies of an
// OpenAPI 3 document. Documents are loaded from files, an fs.FS or HTTP,
// parsed with kin-openapi, and each operation's request schema becomes a
// form.Definition whose input kinds are chosen by a widgets.Registry.
//
// Schema extensions prefixed with x-formkit tune the result:
//
//	x-formkit-kind        force an input kind
//	x-formkit-label       field label (defaults to the schema title)
//	x-formkit-order       sort key, lower first, unset is 0
//	x-formkit-multiline   render strings as a textarea
//	x-formkit-accept      accepted media types for file inputs
//	x-formkit-endpoint    suggestion endpoint for search inputs
//	x-formkit-submit      submit button label on an operation
package openapi
