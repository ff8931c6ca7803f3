package sync

import "sort"

// OpTag classifies one run of an edit script.
type OpTag string

const (
	OpEqual   OpTag = "equal"
	OpInsert  OpTag = "insert"
	OpDelete  OpTag = "delete"
	OpReplace OpTag = "replace"
)

// EditOp is one run of an edit script over half-open ranges: current[I1:I2]
// is replaced by desired[J1:J2] (either range may be empty, depending on
// the tag).
type EditOp struct {
	Tag            OpTag
	I1, I2, J1, J2 int
}

// CorrectedOpcodes returns the edit script that transforms current into
// desired, with each op's source range shifted by the cumulative length
// change of the ops before it. The returned indices are therefore valid
// against the sequence as it is being rewritten in place, op by op, rather
// than against the original current.
func CorrectedOpcodes(current, desired []string) []EditOp {
	raw := opcodes(current, desired)
	corrected := make([]EditOp, 0, len(raw))

	delta := 0
	for _, op := range raw {
		corrected = append(corrected, EditOp{op.Tag, op.I1 + delta, op.I2 + delta, op.J1, op.J2})
		switch op.Tag {
		case OpDelete:
			delta -= op.I2 - op.I1
		case OpInsert:
			delta += op.J2 - op.J1
		case OpReplace:
			delta += (op.J2 - op.J1) - (op.I2 - op.I1)
		}
	}
	return corrected
}

// opcodes computes the longest-common-subsequence edit script between a and
// b. Consecutive runs are emitted in order and together cover both
// sequences exactly once. Every element is significant; there is no junk or
// popularity heuristic.
func opcodes(a, b []string) []EditOp {
	var ops []EditOp
	i, j := 0, 0
	for _, m := range matchingBlocks(a, b) {
		var tag OpTag
		switch {
		case i < m.a && j < m.b:
			tag = OpReplace
		case i < m.a:
			tag = OpDelete
		case j < m.b:
			tag = OpInsert
		}
		if tag != "" {
			ops = append(ops, EditOp{tag, i, m.a, j, m.b})
		}
		i, j = m.a+m.size, m.b+m.size
		if m.size > 0 {
			ops = append(ops, EditOp{OpEqual, m.a, i, m.b, j})
		}
	}
	return ops
}

type block struct {
	a, b, size int
}

// matchingBlocks finds the maximal matching runs between a and b by
// recursively locating the longest match and splitting around it. The
// result is sorted by position and terminated by a zero-length sentinel at
// (len(a), len(b)).
func matchingBlocks(a, b []string) []block {
	// element -> positions in b, for the inner matching loop
	b2j := make(map[string][]int, len(b))
	for j, elem := range b {
		b2j[elem] = append(b2j[elem], j)
	}

	type span struct {
		alo, ahi, blo, bhi int
	}
	queue := []span{{0, len(a), 0, len(b)}}
	var blocks []block

	for len(queue) > 0 {
		s := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		m := longestMatch(a, b2j, s.alo, s.ahi, s.blo, s.bhi)
		if m.size == 0 {
			continue
		}
		blocks = append(blocks, m)
		if s.alo < m.a && s.blo < m.b {
			queue = append(queue, span{s.alo, m.a, s.blo, m.b})
		}
		if m.a+m.size < s.ahi && m.b+m.size < s.bhi {
			queue = append(queue, span{m.a + m.size, s.ahi, m.b + m.size, s.bhi})
		}
	}

	sort.Slice(blocks, func(x, y int) bool {
		if blocks[x].a != blocks[y].a {
			return blocks[x].a < blocks[y].a
		}
		return blocks[x].b < blocks[y].b
	})

	// coalesce adjacent blocks so each run is maximal
	merged := blocks[:0]
	for _, bl := range blocks {
		if n := len(merged); n > 0 && merged[n-1].a+merged[n-1].size == bl.a && merged[n-1].b+merged[n-1].size == bl.b {
			merged[n-1].size += bl.size
			continue
		}
		merged = append(merged, bl)
	}

	return append(merged, block{len(a), len(b), 0})
}

// longestMatch returns the earliest longest matching block within
// a[alo:ahi] and b[blo:bhi], using dynamic programming over b's element
// positions.
func longestMatch(a []string, b2j map[string][]int, alo, ahi, blo, bhi int) block {
	best := block{alo, blo, 0}
	j2len := map[int]int{}

	for i := alo; i < ahi; i++ {
		newJ2len := map[int]int{}
		for _, j := range b2j[a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			newJ2len[j] = k
			if k > best.size {
				best = block{i - k + 1, j - k + 1, k}
			}
		}
		j2len = newJ2len
	}

	return best
}
