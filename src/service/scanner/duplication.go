package scanner

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

const (
	// duplicateWindow is the fixed sliding-window size in lines
	duplicateWindow = 5

	// minBlockChars skips small windows whose joined text is too short
	// to be a meaningful duplicate
	minBlockChars = 50
)

// DuplicatePair records one exact duplicate pairing between two window
// starts within the same file. Lines are 1-based.
type DuplicatePair struct {
	FirstLine  int
	SecondLine int
	Length     int
}

func (p DuplicatePair) describe() string {
	return fmt.Sprintf("Lines %d-%d are repeated at lines %d-%d",
		p.FirstLine, p.FirstLine+p.Length-1, p.SecondLine, p.SecondLine+p.Length-1)
}

// findDuplicateBlocks compares every window start i against every later
// start j > i+window within a single file. Intentionally O(n^2) over line
// count; cross-file duplication is out of this scanner's scope. Window
// hashes are compared first and the joined text confirms on hash equality,
// so matching stays exact.
func findDuplicateBlocks(lines []string) []DuplicatePair {
	n := len(lines)
	if n < duplicateWindow {
		return nil
	}

	starts := n - duplicateWindow + 1
	joined := make([]string, starts)
	hashes := make([]uint64, starts)
	for i := 0; i < starts; i++ {
		var sb strings.Builder
		for k := 0; k < duplicateWindow; k++ {
			sb.WriteString(strings.TrimSpace(lines[i+k]))
			sb.WriteByte('\n')
		}
		joined[i] = sb.String()
		hashes[i] = xxhash.Sum64String(joined[i])
	}

	var pairs []DuplicatePair
	for i := 0; i < starts; i++ {
		if len(joined[i])-duplicateWindow < minBlockChars {
			continue
		}
		for j := i + duplicateWindow + 1; j < starts; j++ {
			if hashes[i] == hashes[j] && joined[i] == joined[j] {
				pairs = append(pairs, DuplicatePair{
					FirstLine:  i + 1,
					SecondLine: j + 1,
					Length:     duplicateWindow,
				})
			}
		}
	}

	return pairs
}
