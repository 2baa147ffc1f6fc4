package solver

// runOption is one way of playing tiles of the current value into the runs
// of a single suit.
type runOption struct {
	pair   runPair
	score  int
	window int
	played int
}

// extension is a combination of run options, one per suit.
type extension struct {
	runs   runState
	score  int
	window [numSuits]int
	inRuns [numSuits]int
}

// extensionScore is what adding a tile of value v to a run of length n adds
// to the board. Completing a run scores all three of its tiles at once.
func extensionScore(n int8, v int) int {
	switch n {
	case 2:
		return 3 * (v - 1)
	case 3:
		return v
	}
	return 0
}

// boardAt returns the board count for suit k and value v, or 0 off the low
// end.
func (s *search) boardAt(k, v int) int {
	if v < 1 {
		return 0
	}
	return s.board[k][v-1]
}

// canEnd reports whether a run of length n may stop before value v without
// uncovering a board tile.
func (s *search) canEnd(k, v int, n int8, win window) bool {
	switch n {
	case 1:
		return win[k][0]-1 >= s.boardAt(k, v-1)
	case 2:
		return win[k][0]-1 >= s.boardAt(k, v-1) &&
			win[k][1]-1 >= s.boardAt(k, v-2)
	}
	return true
}

func (s *search) canEndBoth(k, v int, p runPair, win window) bool {
	a, b := p[0], p[1]
	switch {
	case a == 0 || a == maxRun:
		return s.canEnd(k, v, b, win)
	case b == 0 || b == maxRun:
		return s.canEnd(k, v, a, win)
	case a == 1 && b == 1:
		return win[k][0]-2 >= s.boardAt(k, v-1)
	case a == 2 && b == 2:
		return win[k][0]-2 >= s.boardAt(k, v-1) &&
			win[k][1]-2 >= s.boardAt(k, v-2)
	}
	return win[k][0]-2 >= s.boardAt(k, v-1) &&
		win[k][1]-1 >= s.boardAt(k, v-2)
}

// canStart reports whether `need` new runs of suit k can start at value v.
// There must be room for two more values, and the tiles at v+1 and v+2 must
// be available, with any shortfall covered by spare jokers.
func (s *search) canStart(k, v, need, spare int) bool {
	if v >= maxValue-1 {
		return false
	}
	short := max(0, need-s.avail[k][v]) + max(0, need-s.avail[k][v+1])
	return short <= spare
}

func partial(n int8) int {
	if n == 1 || n == 2 {
		return 1
	}
	return 0
}

// suitOptions lists the run options for suit k at value v, in the order:
// end both runs, extend one run, extend the other, extend both.
func (s *search) suitOptions(k, v int, p runPair, win window, spare int) []runOption {
	a, b := p[0], p[1]
	endA := s.canEnd(k, v, a, win)
	endB := s.canEnd(k, v, b, win)
	startA := a != 0 || s.canStart(k, v, 1, spare)
	startB := b != 0 || s.canStart(k, v, 1, spare)
	startBoth := startA && startB && (a != 0 || b != 0 || s.canStart(k, v, 2, spare))
	have := s.avail[k][v-1]

	opts := make([]runOption, 0, 4)
	if s.canEndBoth(k, v, p, win) {
		opts = append(opts, runOption{
			pair:   runPair{0, 0},
			window: win[k][0] - partial(a) - partial(b),
		})
	}
	if have >= 1 {
		// Starting a new run while an existing one ends is never better than
		// extending the existing one.
		if endB && startA && !(a == 0 && b != 0) {
			opts = append(opts, runOption{
				pair:   runPair{0, min(maxRun, a+1)},
				score:  extensionScore(a, v),
				window: win[k][0] - partial(b),
				played: 1,
			})
		}
		if a != b && endA && startB && !(b == 0 && a != 0) {
			opts = append(opts, runOption{
				pair:   runPair{0, min(maxRun, b+1)},
				score:  extensionScore(b, v),
				window: win[k][0] - partial(a),
				played: 1,
			})
		}
	}
	if have >= 2 && startBoth {
		opts = append(opts, runOption{
			pair:   runPair{min(maxRun, a+1), min(maxRun, b+1)},
			score:  extensionScore(a, v) + extensionScore(b, v),
			window: win[k][0],
			played: 2,
		})
	}
	return opts
}

// extendRuns returns every way of playing tiles of value v into runs: the
// cross product of the per-suit options. runs must be canonical. spare is
// the number of jokers still uncommitted after this value.
func (s *search) extendRuns(v int, runs runState, win window, spare int) []extension {
	exts := []extension{{}}
	for k := 0; k < numSuits; k++ {
		opts := s.suitOptions(k, v, runs[k], win, spare)
		next := make([]extension, 0, len(exts)*len(opts))
		for _, e := range exts {
			for _, o := range opts {
				e.runs[k] = o.pair
				e.window[k] = o.window
				e.inRuns[k] = o.played
				ext := e
				ext.score += o.score
				next = append(next, ext)
			}
		}
		exts = next
	}
	return exts
}
