package transform

import "github.com/matzehuels/moneyflow/pkg/flow"

// AssignColumns returns the column of every node in g, keyed by node index.
//
// # Algorithm
//
//  1. Seed a FIFO queue with the roots at column 0. Roots are nodes with no
//     incoming links and at least one outgoing link; a graph without any
//     well-formed link seeds every node instead.
//  2. Walk breadth-first. A dequeued node keeps the larger of its recorded
//     and offered column; the first time it is seen it offers column+1 to
//     each target not yet visited.
//  3. Settle the visited nodes with Kahn's algorithm, pushing each node to
//     one past its deepest visited parent. Nodes in or behind a cycle never
//     complete and keep their breadth-first column.
//  4. Place nodes the walk never visited, in index order, against the
//     largest visited column m (0 if none): m when the node has outgoing
//     links, m+1 otherwise.
//
// Malformed links are ignored. The result is empty for an empty graph.
//
// Time complexity is O(V + E).
func AssignColumns(g flow.Graph) map[int]int {
	n := g.NodeCount()
	columns := make(map[int]int, n)
	if n == 0 {
		return columns
	}

	_, outgoing := g.Adjacency()
	visited := walk(seedRoots(g.Roots(), outgoing), outgoing, columns)
	settle(visited, outgoing, columns)

	maxColumn := MaxColumn(columns)
	for i := range n {
		if visited[i] {
			continue
		}
		if len(outgoing[i]) > 0 {
			columns[i] = maxColumn
		} else {
			columns[i] = maxColumn + 1
		}
	}
	return columns
}

// MaxColumn returns the largest column in columns, or 0 when it is empty.
func MaxColumn(columns map[int]int) int {
	m := 0
	for _, c := range columns {
		m = max(m, c)
	}
	return m
}

func seedRoots(sources []int, outgoing [][]int) []int {
	var roots, isolated []int
	for _, i := range sources {
		if len(outgoing[i]) > 0 {
			roots = append(roots, i)
		} else {
			isolated = append(isolated, i)
		}
	}
	for _, targets := range outgoing {
		if len(targets) > 0 {
			return roots
		}
	}
	return isolated
}

func walk(roots []int, outgoing [][]int, columns map[int]int) []bool {
	type entry struct{ node, column int }

	visited := make([]bool, len(outgoing))
	queue := make([]entry, 0, len(roots))
	for _, r := range roots {
		queue = append(queue, entry{r, 0})
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		if c, ok := columns[curr.node]; !ok || curr.column > c {
			columns[curr.node] = curr.column
		}
		if visited[curr.node] {
			continue
		}
		visited[curr.node] = true

		for _, child := range outgoing[curr.node] {
			if !visited[child] {
				queue = append(queue, entry{child, curr.column + 1})
			}
		}
	}
	return visited
}

func settle(visited []bool, outgoing [][]int, columns map[int]int) {
	inDegree := make([]int, len(outgoing))
	for node, targets := range outgoing {
		if !visited[node] {
			continue
		}
		for _, t := range targets {
			inDegree[t]++
		}
	}

	depth := make([]int, len(outgoing))
	queue := make([]int, 0, len(outgoing))
	for node := range outgoing {
		if visited[node] && inDegree[node] == 0 {
			queue = append(queue, node)
		}
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		columns[curr] = depth[curr]

		for _, child := range outgoing[curr] {
			if d := depth[curr] + 1; d > depth[child] {
				depth[child] = d
			}
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}
}
