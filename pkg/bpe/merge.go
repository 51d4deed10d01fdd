package bpe

import "container/heap"

const noIndex = ^uint32(0) // sentinel: no neighbor

// Encoder merges a piece's bytes into the coarsest token sequence a
// Vocabulary's implicit merge rules allow (spec §4.3).
type Encoder struct {
	vocab *Vocabulary
}

// NewEncoder returns an Encoder bound to vocab.
func NewEncoder(vocab *Vocabulary) *Encoder {
	return &Encoder{vocab: vocab}
}

// Vocabulary returns the encoder's underlying vocabulary.
func (e *Encoder) Vocabulary() *Vocabulary { return e.vocab }

// candidate is one entry in the merge priority queue: the pair starting at
// left has rank rank if it is still valid (see the 4-point check below).
type candidate struct {
	rank uint32
	left uint32
}

// candidateHeap orders candidates by (rank asc, left asc), giving a
// leftmost-position tiebreak as spec §4.3.1 requires.
type candidateHeap []candidate

func (h candidateHeap) Len() int { return len(h) }
func (h candidateHeap) Less(i, j int) bool {
	if h[i].rank != h[j].rank {
		return h[i].rank < h[j].rank
	}
	return h[i].left < h[j].left
}
func (h candidateHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *candidateHeap) Push(x any)        { *h = append(*h, x.(candidate)) }
func (h *candidateHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// tokenBuffer is the per-call arena: four parallel arrays plus a doubly
// linked list over live positions (spec §4.3.2). One arena is built per
// EncodePiece call and discarded on return; the candidate heap and the
// pair keys built by mergedRank are allocated separately as the merge
// loop runs.
type tokenBuffer struct {
	tokens []uint32
	prev   []uint32
	next   []uint32
	valid  []bool
}

func newTokenBuffer(n int) *tokenBuffer {
	b := &tokenBuffer{
		tokens: make([]uint32, n),
		prev:   make([]uint32, n),
		next:   make([]uint32, n),
		valid:  make([]bool, n),
	}
	for i := 0; i < n; i++ {
		b.valid[i] = true
		if i == 0 {
			b.prev[i] = noIndex
		} else {
			b.prev[i] = uint32(i - 1)
		}
		if i == n-1 {
			b.next[i] = noIndex
		} else {
			b.next[i] = uint32(i + 1)
		}
	}
	return b
}

// EncodePiece returns the unique sequence of ranks such that concatenating
// the corresponding token bytes reproduces piece exactly (spec §4.3.1).
func (e *Encoder) EncodePiece(piece []byte) ([]uint32, error) {
	n := len(piece)
	if n == 0 {
		return nil, nil
	}
	if n == 1 {
		r, ok := e.vocab.RankOf(piece)
		if !ok {
			return nil, &Error{Kind: ErrEncodePieceFailed, Reason: "byte has no rank in vocabulary"}
		}
		return []uint32{r}, nil
	}

	buf := newTokenBuffer(n)
	for i := 0; i < n; i++ {
		r, ok := e.vocab.RankOf(piece[i : i+1])
		if !ok {
			return nil, &Error{Kind: ErrEncodePieceFailed, PieceOffset: i, Reason: "byte has no rank in vocabulary"}
		}
		buf.tokens[i] = r
	}

	q := &candidateHeap{}
	heap.Init(q)
	pushPair := func(left uint32) {
		if left == noIndex {
			return
		}
		right := buf.next[left]
		if right == noIndex {
			return
		}
		lb, _ := e.vocab.BytesOf(buf.tokens[left])
		rb, _ := e.vocab.BytesOf(buf.tokens[right])
		if r, ok := e.vocab.mergedRank(lb, rb); ok {
			heap.Push(q, candidate{rank: r, left: left})
		}
	}
	for i := uint32(0); i < uint32(n); i++ {
		pushPair(i)
	}

	for q.Len() > 0 {
		c := heap.Pop(q).(candidate)
		left := c.left

		if !buf.valid[left] {
			continue
		}
		right := buf.next[left]
		if right == noIndex || !buf.valid[right] {
			continue
		}
		lb, _ := e.vocab.BytesOf(buf.tokens[left])
		rb, _ := e.vocab.BytesOf(buf.tokens[right])
		mergedRank, ok := e.vocab.mergedRank(lb, rb)
		if !ok || mergedRank != c.rank {
			continue
		}

		// Valid candidate: merge right into left, splice right out of the
		// linked list, and re-evaluate the (prev,left) and (left,next)
		// pairs the merge may have newly formed.
		buf.tokens[left] = mergedRank
		buf.valid[right] = false
		newRight := buf.next[right]
		buf.next[left] = newRight
		if newRight != noIndex {
			buf.prev[newRight] = left
		}

		pushPair(buf.prev[left])
		pushPair(left)
	}

	out := make([]uint32, 0, n)
	for i := uint32(0); i != noIndex; i = buf.next[i] {
		out = append(out, buf.tokens[i])
	}
	return out, nil
}
