package escorex

// NodePool yields the next node a request should be tried against.
// Implementations own the selection and health-tracking policy; callers
// only consume nodes one at a time.
type NodePool interface {
	// Next returns the next node to try, or ErrPoolExhausted when no
	// node is available.
	Next() (Node, error)
}

// DeadNodeReporter is implemented by pools that track node health. The
// transport reports nodes that failed with a network error through it.
type DeadNodeReporter interface {
	MarkDead(node Node)
	MarkLive(node Node)
}
