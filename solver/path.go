package solver

// step is one face value of the reconstructed board: which run slots take a
// tile, which suits the jokers stand in for, and the groups.
type step struct {
	value  int
	runs   [numSuits][2]bool
	jokers jokerSet
	groups groupSet
}

// follows reports whether a run slot can go from length prev to length
// next in one value: either the run stops, or it takes one more tile.
func follows(prev, next int8) bool {
	return next == 0 || next == min(maxRun, prev+1)
}

// alignRun orders the canonical pair next so that each slot continues the
// run in the same slot of prev. When both orders are possible (a 2 and a 3
// where one run stops and the other reaches 3) the run of length 2 is the
// one that continues, since that is the higher-scoring reading.
func alignRun(prev, next runPair) runPair {
	if prev[0] == prev[1] || next[0] == next[1] {
		return next
	}
	swapped := runPair{next[1], next[0]}
	straight := follows(prev[0], next[0]) && follows(prev[1], next[1])
	crossed := follows(prev[0], swapped[0]) && follows(prev[1], swapped[1])
	switch {
	case straight && crossed:
		shorter := 0
		if prev[1] < prev[0] {
			shorter = 1
		}
		if next[shorter] != 0 {
			return next
		}
		return swapped
	case crossed:
		return swapped
	}
	return next
}

// path follows the memo records from the start state and returns one step
// per face value.
func (s *search) path() []step {
	var runs runState
	key := stateKey{value: 1}
	path := make([]step, 0, maxValue)
	for {
		rec, ok := s.memo[key]
		if !ok || !rec.found {
			break
		}
		st := step{value: int(key.value), jokers: rec.jokers, groups: rec.groups}
		next := rec.nextRuns
		for k := range next {
			next[k] = alignRun(runs[k], next[k])
			for i := range next[k] {
				st.runs[k][i] = next[k][i] == maxRun || next[k][i] > runs[k][i]
			}
		}
		path = append(path, st)
		runs = next
		key = stateKey{value: key.value + 1, runs: next.canonical(), jokersUsed: rec.nextJokers}
	}
	return path
}

// removePartialRuns clears run slots that never reached length 3. Their
// tiles scored nothing and are covered elsewhere.
func removePartialRuns(path []step) {
	drop := func(k, i, end, n int) {
		for j := end - n; j < end; j++ {
			path[j].runs[k][i] = false
		}
	}
	for k := 0; k < numSuits; k++ {
		for i := 0; i < 2; i++ {
			n := 0
			for j := range path {
				if path[j].runs[k][i] {
					n++
					continue
				}
				if n > 0 && n < maxRun {
					drop(k, i, j, n)
				}
				n = 0
			}
			if n > 0 && n < maxRun {
				drop(k, i, len(path), n)
			}
		}
	}
}
