package graph

// reaches reports whether to is reachable from from over active edges.
// Iterative DFS; the visited set keeps it terminating even if a defect
// elsewhere produced a cycle.
func (g *Graph) reaches(from, to string) bool {
	visited := make(map[string]bool)
	stack := []string{from}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur == to {
			return true
		}
		if visited[cur] {
			continue
		}
		visited[cur] = true
		for _, connID := range g.outgoing[cur] {
			conn, ok := g.connections[connID]
			if !ok || !conn.IsActive {
				continue
			}
			stack = append(stack, conn.TargetBlockID)
		}
	}
	return false
}

// cycleEdges finds every active connection that closes a directed cycle.
// Standard three-color DFS over the active subgraph: an edge into a node
// currently on the recursion stack is a back edge. Traversal visits
// instances in sorted-id order and edges in Order/Seq order, so repeated
// calls on an unchanged graph report identical diagnostics.
func (g *Graph) cycleEdges() []string {
	const (
		white = 0 // unvisited
		gray  = 1 // on stack
		black = 2 // done
	)
	color := make(map[string]int, len(g.instances))
	var backEdges []string

	var visit func(id string)
	visit = func(id string) {
		color[id] = gray
		for _, conn := range g.OutgoingEdges(id) {
			switch color[conn.TargetBlockID] {
			case white:
				if _, ok := g.instances[conn.TargetBlockID]; ok {
					visit(conn.TargetBlockID)
				}
			case gray:
				backEdges = append(backEdges, conn.ID)
			}
		}
		color[id] = black
	}

	for _, inst := range g.Instances() {
		if color[inst.ID] == white {
			visit(inst.ID)
		}
	}
	return backEdges
}
