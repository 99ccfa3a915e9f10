/*
Package graph plans routes through the sparse graph of pre-rendered
animation sequences.

The transition graph is irregular: most expressions connect only to neutral,
the speech visemes form a small mesh, and two expressions (happy_big,
surprised_ah) are reachable only through a single intermediate. Rather than
special-casing those, the planner represents every sequence as a tagged edge
(start, end, pose scope) and runs a breadth-first search, so any number of
single-hop-only expressions fall out of the table.

PlanRoute is pure and deterministic: no I/O, no hidden state, identical
output for identical input.
*/
package graph
