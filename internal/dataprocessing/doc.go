// Package dataprocessing implements the dataset pipeline behind the wealth
// gap dashboard: parsing uploaded tabular files, mapping columns to semantic
// roles, cleaning and deriving per-state ratios, and ranking/aggregating the
// cleaned rows for the three views.
//
// # Data Flow
//
// The stages run strictly one-directionally:
//
//	Upload → LoadTable → FieldMapping → Clean → {CompareStates, RankByMetric, geo.ResolveRows}
//
// Every stage is a pure function over its inputs; a remap or re-upload
// recomputes everything from the raw table. Nothing is cached between
// interactions.
//
// # Error Handling
//
// Only unparseable files are fatal, reported as *FormatError. Cells that
// fail numeric coercion and rows with missing required values are dropped
// silently (counted in CleanStats); downstream stages reduce to empty
// results rather than erroring.
package dataprocessing
