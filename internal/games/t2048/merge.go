package t2048

// MergeResult is the outcome of sliding a single line.
type MergeResult struct {
	Line  []int
	Score int
}

// MergeLine slides and merges a line toward index 0.
// Zeros are dropped, equal neighbours combine once, and the result is
// padded with zeros back to the input length. The input is not modified.
func MergeLine(line []int) MergeResult {
	result := make([]int, len(line))
	writePos := 0
	score := 0
	// pending holds the last emitted tile while it is still eligible to merge.
	pending := false

	for _, v := range line {
		if v == 0 {
			continue
		}

		if pending && result[writePos-1] == v {
			// Merge with previous tile
			result[writePos-1] *= 2
			score += result[writePos-1]
			pending = false
		} else {
			// Move tile
			result[writePos] = v
			writePos++
			pending = true
		}
	}

	return MergeResult{Line: result, Score: score}
}

// MergeLineRight slides and merges a line toward its last index.
func MergeLineRight(line []int) MergeResult {
	res := MergeLine(reverseLine(line))
	res.Line = reverseLine(res.Line)
	return res
}

// reverseLine returns a reversed copy of line.
func reverseLine(line []int) []int {
	n := len(line)
	result := make([]int, n)
	for i, v := range line {
		result[n-1-i] = v
	}
	return result
}

// WouldLineChange reports whether MergeLine would alter the line.
func WouldLineChange(line []int) bool {
	return !linesEqual(line, MergeLine(line).Line)
}

// CanMergeLine reports whether the line has an empty cell ahead of a tile
// or two equal tiles that are adjacent once zeros are removed.
func CanMergeLine(line []int) bool {
	seenGap := false
	prev := 0
	for _, v := range line {
		if v == 0 {
			seenGap = true
			continue
		}
		if seenGap || v == prev {
			return true
		}
		prev = v
	}
	return false
}

func linesEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
