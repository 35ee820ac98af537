// Package mocktree reconciles mock data with the shape a tool expects and
// annotates the result for display as a tree.
//
// A template is a [Node] tree describing the expected fields of a payload,
// usually compiled from a JSON Schema (see
// [go.jacobcolvin.com/mocktree/schematree]). A mock value is an arbitrary,
// possibly stale or hand-edited JSON document. Reconciliation merges the two
// into one annotated tree that tells a human which fields are missing, extra,
// or consistent, plus a single incompatible flag.
//
// # Pipeline
//
// The engine is a chain of pure functions over immutable trees:
//
//  1. [ParseValue] parses the raw mock, keeping object members in document
//     order.
//  2. [Classify] and [Build] turn the parsed value into a value tree. Every
//     node carries the same status; for reconciliation it is
//     [StatusRemoved], meaning "present only in the value" until proven
//     otherwise.
//  3. [Merge] and [Reconcile] match value nodes to template nodes. Matched
//     nodes become [StatusDefault]; unmatched template nodes keep their own
//     status (normally [StatusAdded]); unmatched value nodes stay
//     [StatusRemoved]. A missing required field or any surplus field makes
//     the result incompatible.
//  4. [Prune] collapses optional containers that exist only in the template.
//  5. [Annotate] computes the connector lines of every row.
//
// [Pipeline] runs steps 3 to 5 with a configured [Format] and logger.
//
// # Matching
//
// Siblings are matched by label. Types must be compatible: equal, or
// integer and number, since runtime values never distinguish the two. The
// template's type always wins in the merged node. Arrays use their first
// template element as a prototype for every value element, so a template
// declaring one example element accepts arrays of any length.
//
// # Keys
//
// Every node has a key unique within its tree, derived from its ancestors'
// labels (see [JoinKey]). Array elements are labeled item_0, item_1, and so
// on. Renderers look up [Branch] metadata by key.
//
// # Errors
//
// Reconciliation never fails. A mock that cannot be parsed is reconciled as
// one opaque string, so the mismatch shows up as an incompatible result.
// [ParseValue], [RepairPatch], and [Config.NewPipeline] return errors
// wrapping [ErrInvalidInput], [ErrEncode], or [ErrInvalidOption].
package mocktree
