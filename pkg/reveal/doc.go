// Package reveal drives the staged appearance of a career graph on one view.
//
// A Sequencer owns the visible canvas of a view. It turns pointer and resize
// intents into timed insertion plans, runs them on a scheduler.Scheduler and
// pushes the resulting node and edge lists to a ports.Surface. Edges are only
// ever pushed once both of their endpoints are visible.
//
// A Sequencer is not safe for concurrent use. Session managers run every
// intent and every timer callback of a view on the same scheduler.Loop.
package reveal
