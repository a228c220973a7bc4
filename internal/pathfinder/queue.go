package pathfinder

import (
	"transit-pathfinder/internal/network"
)

type entry struct {
	cost    int
	station network.StationID
	name    string
}

// queue is a min-heap of entries ordered by cost, then by station name so
// equal-cost stations are finalized in a stable order.
type queue []entry

func (q queue) Len() int { return len(q) }

func (q queue) Less(i, j int) bool {
	if q[i].cost != q[j].cost {
		return q[i].cost < q[j].cost
	}
	return q[i].name < q[j].name
}

func (q queue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *queue) Push(x any) { *q = append(*q, x.(entry)) }

func (q *queue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	*q = old[:n-1]
	return e
}
