// Package suggest serves JSON suggestions for search inputs. A handler owns a
// fixed list of choices and answers GET and HEAD requests with the entries
// matching the q parameter, prefix matches first.
package suggest
