// Package transform derives layout structure from a [flow.Graph].
//
// # Column Assignment
//
// [AssignColumns] ranks every node into an integer column, left to right,
// so that money enters on the left (income sources) and leaves on the right
// (expense categories). The ranking is a breadth-first walk from the graph's
// roots that keeps the largest column seen for each node, settled with a
// longest-path pass so that every link in an acyclic graph points strictly
// rightward:
//
//	Salary ─┐
//	        ├─> Budget ─> Rent
//	Bonus ──┘         └─> Food
//
//	column:   0          1         2
//
// Nodes the walk never reaches (components without an entry point, or cycles
// with no root) are placed afterwards at the right edge: at the largest
// column when they still have outgoing links, one past it otherwise.
//
// Cycles are neither detected nor reported. Nodes inside a cycle keep the
// column the breadth-first walk gave them, which may put a link sideways or
// backward.
package transform
