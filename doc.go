/*
Package careergraph renders a career history as an interactive, progressively
revealed graph.

A dataset of companies, schools, soft skills and achievements is normalized
into a graph, laid out with a closed-form timeline layout that adapts to the
viewport, and revealed in timed stages as the user points at it.

# Concept

The Engine owns the dataset and the memoized layouts. Each rendering surface
gets its own view: a reveal.Sequencer that receives pointer and resize intents
and pushes node and edge lists to a ports.Surface and fit commands to a
ports.Camera. Views never share mutable state; the session package hosts many
of them behind an HTTP API.

# Usage

	eng, err := careergraph.New(ctx)
	if err != nil {
		log.Fatal(err)
	}

	seq := eng.NewView(scheduler.NewManualClock(time.Now()), surface, camera)
	if err := seq.Mount(ctx, domain.Viewport{Width: 1920, Height: 1080}); err != nil {
		log.Fatal(err)
	}
	_ = seq.PointerEnterGraph()

Use WithDatasetSource to read a file or a Loam achievement library instead of
the embedded dataset, and WithLayoutCache to share layouts through Redis.
*/
package careergraph
