// Package schematree builds template trees for [mocktree] from JSON Schema.
//
// [Compile] converts a [jsonschema.Schema] into a [mocktree.Node] tree where
// every node has [mocktree.StatusAdded], objects list their properties in
// declaration order, and arrays carry a single item_0 prototype child.
// [Parse] decodes a schema document written as JSON or YAML first, keeping
// the document's property order. [Infer] derives the template from sample
// documents instead, which is useful when a tool has no declared schema:
//
//	tmpl, err := schematree.Parse("response", schemaBytes)
//	if err != nil {
//		return err
//	}
//
//	res := mocktree.Reconcile(tmpl, &mock)
//
// [Config] binds the choice between a schema file and sample files to CLI
// flags and loads the template with [Config.Load].
//
// Only the structural parts of a schema are used: types, properties,
// required, items, local references, combinators, and default, const or
// enum values for scalar placeholders. Validation keywords are ignored.
package schematree
