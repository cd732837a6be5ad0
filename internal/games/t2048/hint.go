package t2048

import (
	"math"
	"sync"

	"github.com/hashicorp/golang-lru/simplelru"
)

// Heuristic weights.
const (
	WeightEmpty      = 100.0
	WeightMaxTile    = 10.0
	WeightMonotonic  = 50.0
	WeightSmoothness = 20.0
)

// Evaluate scores a board for desirability; higher is better.
func Evaluate(board Board) float64 {
	score := float64(len(board.EmptyPositions())) * WeightEmpty
	score += float64(board.MaxTile()) * WeightMaxTile
	score += float64(Monotonicity(board)) * WeightMonotonic
	score += Smoothness(board) * WeightSmoothness
	return score
}

// Monotonicity sums, over every row and column, the larger of the counts of
// non-decreasing and non-increasing adjacent pairs.
func Monotonicity(board Board) int {
	mono := 0
	for i := range board.size {
		mono += lineMonotonicity(board.Row(i))
		mono += lineMonotonicity(board.Column(i))
	}
	return mono
}

func lineMonotonicity(line []int) int {
	increasing, decreasing := 0, 0
	for i := 0; i+1 < len(line); i++ {
		if line[i] <= line[i+1] {
			increasing++
		}
		if line[i] >= line[i+1] {
			decreasing++
		}
	}
	return max(increasing, decreasing)
}

// Smoothness is minus the sum of |log2(a) - log2(b)| over horizontally and
// vertically adjacent non-empty pairs. It is never positive.
func Smoothness(board Board) float64 {
	smoothness := 0.0
	n := board.size

	for r := range n {
		for c := range n {
			v := board.at(r, c)
			if v == 0 {
				continue
			}
			logV := math.Log2(float64(v))

			if c < n-1 {
				if right := board.at(r, c+1); right != 0 {
					smoothness -= math.Abs(logV - math.Log2(float64(right)))
				}
			}
			if r < n-1 {
				if down := board.at(r+1, c); down != 0 {
					smoothness -= math.Abs(logV - math.Log2(float64(down)))
				}
			}
		}
	}
	return smoothness
}

// BestMove returns the direction whose resulting board evaluates highest.
// Only directions that change the board are considered; ties go to the
// earliest direction in Directions order. ok is false when no move exists.
func BestMove(board Board) (dir Direction, ok bool) {
	return bestMove(board, Evaluate)
}

func bestMove(board Board, eval func(Board) float64) (Direction, bool) {
	best := Direction(-1)
	bestScore := math.Inf(-1)

	for _, d := range Directions {
		res := Move(board, d)
		if !res.Changed {
			continue
		}
		if score := eval(res.Board); score > bestScore {
			bestScore = score
			best = d
		}
	}

	if best < 0 {
		return 0, false
	}
	return best, true
}

var hintLabels = map[Direction]string{
	DirUp:    "↑ UP",
	DirDown:  "↓ DOWN",
	DirLeft:  "← LEFT",
	DirRight: "→ RIGHT",
}

// HintText returns a short suggestion for display.
func HintText(board Board) string {
	return hintText(BestMove(board))
}

func hintText(dir Direction, ok bool) string {
	if !ok {
		return "No moves available"
	}
	return "Try: " + hintLabels[dir]
}

// DefaultAdvisorCacheSize is used when NewAdvisor is given a non-positive size.
const DefaultAdvisorCacheSize = 4096

// Advisor is a BestMove helper that memoises board evaluations in an LRU
// cache. Long autoplay runs revisit the same positions often.
// It is safe for concurrent use.
type Advisor struct {
	mux    sync.Mutex
	lru    *simplelru.LRU
	hits   int
	misses int
}

// NewAdvisor creates an advisor caching up to size evaluations.
func NewAdvisor(size int) *Advisor {
	if size <= 0 {
		size = DefaultAdvisorCacheSize
	}
	lru, _ := simplelru.NewLRU(size, nil) // only fails for size <= 0
	return &Advisor{lru: lru}
}

// Evaluate returns Evaluate(board), served from the cache when possible.
func (a *Advisor) Evaluate(board Board) float64 {
	key := board.String()

	a.mux.Lock()
	defer a.mux.Unlock()
	if v, ok := a.lru.Get(key); ok {
		a.hits++
		return v.(float64)
	}
	a.misses++
	v := Evaluate(board)
	a.lru.Add(key, v)
	return v
}

// BestMove is BestMove backed by the cache.
func (a *Advisor) BestMove(board Board) (Direction, bool) {
	return bestMove(board, a.Evaluate)
}

// HintText is HintText backed by the cache.
func (a *Advisor) HintText(board Board) string {
	return hintText(a.BestMove(board))
}

// Stats returns cache hit and miss counts.
func (a *Advisor) Stats() (hits, misses int) {
	a.mux.Lock()
	defer a.mux.Unlock()
	return a.hits, a.misses
}
