// Package dataset turns a relational career dataset into the uniform graph
// consumed by the layout engine and the reveal sequencer.
//
// Build never fails on bad data. Dangling or mistyped edges are dropped,
// duplicate ids keep their first declaration, and every such defect is logged
// and recorded in the returned Report.
package dataset
