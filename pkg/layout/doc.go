/*
Package layout places the career graph on the canvas.

SafeAreaFor turns a raw viewport into the rectangle left after chrome margins, and
Compute places every node tier with a closed-form formula (root, soft-skill triangle,
timeline row, achievement zigzag). Both functions are pure: the same inputs always yield
bit-identical outputs, with no clock reads and no randomness, so the reveal
choreography built on top of them is reproducible.
*/
package layout
