package huffman

import (
	"container/heap"
	"fmt"
	"slices"

	"github.com/chronos-tachyon/assert"
)

// Tree is a node in a Huffman coding tree: either a leaf carrying a single
// symbol, or an internal node with exactly two children whose weight is the
// sum of its children's weights. Trees are immutable once built and safe to
// share between concurrent decodes.
type Tree interface {
	Frequency() int
	order() int
}

type leaf struct {
	freq, id int
	symbol   rune
}

type node struct {
	freq, id    int
	left, right Tree
}

func (l leaf) Frequency() int { return l.freq }

func (l leaf) order() int { return l.id }

func (n node) Frequency() int { return n.freq }

func (n node) order() int { return n.id }

type treeHeap []Tree

func (hub *treeHeap) Push(item any) {
	*hub = append(*hub, item.(Tree))
}

func (hub *treeHeap) Pop() any {
	popped := (*hub)[len(*hub)-1]
	(*hub) = (*hub)[:len(*hub)-1]
	return popped
}

func (hub treeHeap) Len() int {
	return len(hub)
}

func (hub treeHeap) Less(i, j int) bool {
	if hub[i].Frequency() != hub[j].Frequency() {
		return hub[i].Frequency() < hub[j].Frequency()
	}
	return hub[i].order() < hub[j].order()
}

func (hub treeHeap) Swap(i, j int) {
	hub[i], hub[j] = hub[j], hub[i]
}

// FromFrequencies builds a Huffman tree from a symbol frequency table by
// repeatedly merging the two lightest nodes. Leaves are seeded in ascending
// symbol order with a monotonically increasing id, and weight ties break on
// that id, so the same table always produces the same tree shape. A table
// with a single entry yields a lone leaf.
func FromFrequencies(symbolFreq map[rune]int) (Tree, error) {
	if len(symbolFreq) == 0 {
		return nil, fmt.Errorf("%w: empty frequency table", ErrInvalidInput)
	}
	var keys []rune
	for r := range symbolFreq {
		keys = append(keys, r)
	}
	slices.Sort(keys)
	var treehub treeHeap
	monoId := 0
	for _, key := range keys {
		treehub = append(treehub, leaf{
			freq:   symbolFreq[key],
			symbol: key,
			id:     monoId,
		})
		monoId++
	}
	heap.Init(&treehub)
	for treehub.Len() > 1 {
		x := heap.Pop(&treehub).(Tree)
		y := heap.Pop(&treehub).(Tree)
		heap.Push(&treehub, node{
			freq:  x.Frequency() + y.Frequency(),
			left:  x,
			right: y,
			id:    monoId,
		})
		monoId++
	}
	assert.Assertf(treehub.Len() == 1, "merge loop left %d nodes", treehub.Len())
	return heap.Pop(&treehub).(Tree), nil
}
