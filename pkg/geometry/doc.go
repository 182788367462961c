/*
Package geometry decides which canvas nodes are "aware" of each other.

Every node gets an awareness zone: its rendered bounds expanded by a fixed
distance on all four sides. Two nodes are aware of each other when their zones
intersect. Intersection uses closed intervals, so zones whose edges exactly
touch count as overlapping.

Pair detection is a brute-force O(n²) scan over unordered node pairs. It is
meant for interactive graphs of tens to low hundreds of nodes.

Pairs are identified by a pair key: the two node ids sorted lexicographically
and joined with ":". Node ids must not contain the separator.
*/
package geometry
