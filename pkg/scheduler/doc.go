/*
Package scheduler provides the single logical thread every graph view runs on.

A Loop serializes callbacks onto one goroutine, a Clock is the only time source
(LoopClock in production, ManualClock in tests and simulations), and a Scheduler tracks
every pending timer of a view in one cancelable collection. Suspension is only ever
expressed as a scheduled callback; nothing blocks waiting for time to pass.
*/
package scheduler
