/*
Package ports defines the driven ports (interfaces) of the career graph core.

These interfaces decouple the layout and reveal logic from external implementations,
allowing the core to work with various dataset sources, layout caches and rendering
surfaces.

# Key Interfaces

  - DatasetSource: loads the read-only dataset (file, memory, loam markdown library).
  - LayoutCache: memoizes layout passes keyed by dataset fingerprint and viewport.
  - Surface: receives the visible node and edge lists.
  - Camera: executes FitView commands.
*/
package ports
