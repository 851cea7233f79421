package toyplex

// tree is the branch-and-bound search tree: every node ever created keyed by
// its id, a FIFO work list of candidates still awaiting processing, and the
// incumbent. Keys come from a monotonic counter owned by the tree, so node
// removal can never cause a key collision.
type tree struct {
	nodes map[int]*node
	queue []int
	next  int

	incumbentKey int
	incumbentVal float64
}

func newTree() *tree {
	return &tree{
		nodes:        make(map[int]*node),
		incumbentKey: -1,
	}
}

func (t *tree) nextKey() int {
	k := t.next
	t.next++
	return k
}

// add inserts the node into the tree and the candidate queue.
func (t *tree) add(n *node) {
	t.nodes[n.key] = n
	t.queue = append(t.queue, n.key)
}

// pop removes and returns the first-inserted candidate. The node stays in the
// tree map for result retrieval.
func (t *tree) pop() (*node, bool) {
	if len(t.queue) == 0 {
		return nil, false
	}
	key := t.queue[0]
	t.queue = t.queue[1:]
	return t.nodes[key], true
}

func (t *tree) pending() bool {
	return len(t.queue) > 0
}

func (t *tree) node(key int) *node {
	return t.nodes[key]
}

func (t *tree) setIncumbent(key int, val float64) {
	t.incumbentKey = key
	t.incumbentVal = val
}
