// Package flow lays out a temporal flow diagram over year columns.
//
// # Columns
//
// Each selected year becomes a column. Countries with a positive value are
// ranked (value descending, then name, then table order); the top N keep
// their own node and the rest collapse into one "Other" node, created only
// when its sum is positive. Nodes are stacked top to bottom with a fixed
// gap, and each column is scaled so its node heights sum to the column
// height:
//
//	height = value * ColumnHeight / columnTotal
//
// # Links
//
// Between adjacent columns, every country with a positive value on both
// sides contributes min(before, after) to the link keyed by its category
// pair. Countries that share a pair merge into one link, so the outgoing
// links of a node never carry more than the node's value. Each link also
// carries band offsets inside its source and target nodes so ribbons never
// overlap within a node.
//
// Diagrams are pure values. [Build] recomputes everything from the table.
package flow
