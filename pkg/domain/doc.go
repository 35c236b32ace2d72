/*
Package domain contains the core domain models of the career graph.

It defines the node and edge variants of the graph, the geometry used by the layout
(Viewport, Margins, SafeArea, Position), the render-ready projections handed to the
rendering surface, and the RevealState owned by the expansion store. The package is
kept pure and free of I/O, timers or persistence.

# Key Entities

  - GraphNode: a root, company, education, soft-skill or achievement node.
  - GraphEdge: a typed relation between two nodes (career, education, soft-skill, project).
  - PositionedNode: a node plus canvas position and entrance animation metadata.
  - RevealState: the monotonic reveal latches and the set of expanded achievements.
  - CanvasSnapshot: what is currently visible, and Diff to stream partial updates.
*/
package domain
