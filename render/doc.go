// Package render writes reconciled mock trees for people and programs.
//
// Text output draws one node per line, using the connector guides computed
// by [mocktree.Annotate]:
//
//	response (object)
//	├─ bool: true (boolean)
//	├─ + int: 0 (integer)
//	└─ - extra: "x" (string)
//
// Nodes only in the template are prefixed with "+", nodes only in the mock
// with "-". Collapsed containers end in "…". When color is enabled, added
// nodes are green and removed nodes are red and struck through.
//
// JSON output wraps the tree and the incompatibility flag in one object, for
// editors and other tools that draw the tree themselves.
//
// Use [Config] to bind these choices to CLI flags.
package render
