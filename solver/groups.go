package solver

type groupResult struct {
	done   bool
	total  int
	groups groupSet
}

// groupSizer finds the largest number of tiles at one face value that can be
// placed in groups. Counts are capped at 3 per suit, since no combination of
// groups can use a fourth tile of one suit; this bounds the table to 4^4
// entries.
type groupSizer struct {
	table [maxRun + 1][maxRun + 1][maxRun + 1][maxRun + 1]groupResult
}

// size returns the best result for the given per-suit tile counts. A
// strictly larger total replaces the best found so far, so ties keep the
// group of four and then the lowest omitted suit.
func (g *groupSizer) size(counts [numSuits]int) groupResult {
	for k := range counts {
		counts[k] = min(counts[k], maxRun)
	}
	entry := &g.table[counts[0]][counts[1]][counts[2]][counts[3]]
	if entry.done {
		return *entry
	}
	best := groupResult{done: true}
	for omit := int8(allSuits); omit < numSuits; omit++ {
		next, ok := takeGroup(counts, omit)
		if !ok {
			continue
		}
		child := g.size(next)
		if child.groups.n == maxGroups {
			continue
		}
		total := child.total + numSuits
		if omit != allSuits {
			total--
		}
		if total > best.total {
			best.total = total
			best.groups = child.groups.prepend(omit)
		}
	}
	*entry = best
	return best
}

// takeGroup removes one tile of every suit but omit from counts.
func takeGroup(counts [numSuits]int, omit int8) ([numSuits]int, bool) {
	for k := range counts {
		if int8(k) == omit {
			continue
		}
		if counts[k] == 0 {
			return counts, false
		}
		counts[k]--
	}
	return counts, true
}
