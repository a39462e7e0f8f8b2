package escorex

import (
	"sync"
	"time"

	"go.uber.org/atomic"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"

	"github.com/escorex/escorex/zaputils"
)

type statusPoolNode struct {
	node      Node
	dead      bool
	deadSince time.Time
	failures  atomic.Int64
}

type StatusNodePoolOptions struct {
	Logger *zap.Logger

	// ResurrectAfter is how long a node stays dead before it becomes a
	// candidate again. Defaults to 60 seconds.
	ResurrectAfter time.Duration
}

// StatusNodePool cycles through its live nodes and tracks dead ones.
// A dead node is resurrected once its resurrection window has elapsed;
// until then Next skips it. When every node is dead and none is
// resurrectable yet, Next reports ErrPoolExhausted.
type StatusNodePool struct {
	logger         *zap.Logger
	resurrectAfter time.Duration

	lock   sync.Mutex
	nodes  []*statusPoolNode
	cursor int
}

func NewStatusNodePool(nodes []Node, opts *StatusNodePoolOptions) (*StatusNodePool, error) {
	if len(nodes) == 0 {
		return nil, invalidArgumentError{"must pass at least one node"}
	}

	if opts == nil {
		opts = &StatusNodePoolOptions{}
	}

	resurrectAfter := opts.ResurrectAfter
	if resurrectAfter == 0 {
		resurrectAfter = 60 * time.Second
	}

	pool := &StatusNodePool{
		logger:         loggerOrNop(opts.Logger),
		resurrectAfter: resurrectAfter,
	}
	for _, node := range nodes {
		pool.nodes = append(pool.nodes, &statusPoolNode{node: node})
	}

	return pool, nil
}

func (p *StatusNodePool) Next() (Node, error) {
	p.lock.Lock()
	defer p.lock.Unlock()

	for range p.nodes {
		candidate := p.nodes[p.cursor%len(p.nodes)]
		p.cursor++

		if !candidate.dead {
			return candidate.node, nil
		}
	}

	// Everything is dead, try to resurrect the node that has been dead
	// the longest.
	dead := make([]*statusPoolNode, len(p.nodes))
	copy(dead, p.nodes)
	slices.SortStableFunc(dead, func(a, b *statusPoolNode) int {
		return a.deadSince.Compare(b.deadSince)
	})

	oldest := dead[0]
	if time.Since(oldest.deadSince) < p.resurrectAfter {
		return Node{}, ErrPoolExhausted
	}

	oldest.dead = false

	p.logger.Info("resurrecting node",
		zaputils.NodeAddr("node", oldest.node.Scheme, oldest.node.Host, oldest.node.Port))

	return oldest.node, nil
}

func (p *StatusNodePool) MarkDead(node Node) {
	p.lock.Lock()
	defer p.lock.Unlock()

	for _, candidate := range p.nodes {
		if candidate.node != node {
			continue
		}

		candidate.dead = true
		candidate.deadSince = time.Now()
		failures := candidate.failures.Inc()

		p.logger.Info("marking node dead",
			zaputils.NodeAddr("node", node.Scheme, node.Host, node.Port),
			zap.Int64("failures", failures))
	}
}

func (p *StatusNodePool) MarkLive(node Node) {
	p.lock.Lock()
	defer p.lock.Unlock()

	for _, candidate := range p.nodes {
		if candidate.node != node {
			continue
		}

		if candidate.dead {
			candidate.dead = false
			candidate.deadSince = time.Time{}

			p.logger.Debug("marking node live",
				zaputils.NodeAddr("node", node.Scheme, node.Host, node.Port))
		}

		candidate.failures.Store(0)
	}
}
