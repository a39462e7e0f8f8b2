package escorex

import (
	"go.uber.org/atomic"
)

// RoundRobinNodePool cycles through a fixed set of nodes. It performs
// no health tracking and never reports exhaustion.
type RoundRobinNodePool struct {
	nodes  []Node
	cursor atomic.Uint64
}

func NewRoundRobinNodePool(nodes []Node) (*RoundRobinNodePool, error) {
	if len(nodes) == 0 {
		return nil, invalidArgumentError{"must pass at least one node"}
	}

	poolNodes := make([]Node, len(nodes))
	copy(poolNodes, nodes)

	return &RoundRobinNodePool{
		nodes: poolNodes,
	}, nil
}

func (p *RoundRobinNodePool) Next() (Node, error) {
	idx := p.cursor.Inc() - 1
	return p.nodes[idx%uint64(len(p.nodes))], nil
}
