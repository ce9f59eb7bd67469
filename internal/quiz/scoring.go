package quiz

import (
	"sort"
	"strings"
)

const passRatio = 90

// TokenSetRatio scores two strings 0..100 by comparing their word sets, so
// word order and repeated words do not matter. A string whose words are a
// subset of the other's scores 100.
func TokenSetRatio(a, b string) float64 {
	setA, setB := tokenSet(a), tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	var sect, diffAB, diffBA []string
	for tok := range setA {
		if setB[tok] {
			sect = append(sect, tok)
		} else {
			diffAB = append(diffAB, tok)
		}
	}
	for tok := range setB {
		if !setA[tok] {
			diffBA = append(diffBA, tok)
		}
	}
	if len(sect) > 0 && (len(diffAB) == 0 || len(diffBA) == 0) {
		return 100
	}

	ab, ba := joinSorted(diffAB), joinSorted(diffBA)
	abLen, baLen := runeLen(ab), runeLen(ba)
	best := indelRatio(ab, ba)

	sectLen := runeLen(joinSorted(sect))
	if sectLen == 0 {
		return best
	}
	// sect is a prefix of sect+" "+diff, so their distance is the diff plus one space.
	for _, diffLen := range []int{abLen, baLen} {
		dist := diffLen + 1
		total := sectLen + sectLen + 1 + diffLen
		if r := 100 * (1 - float64(dist)/float64(total)); r > best {
			best = r
		}
	}
	return best
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, f := range strings.Fields(s) {
		set[f] = true
	}
	return set
}

func joinSorted(tokens []string) string {
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

func runeLen(s string) int {
	return len([]rune(s))
}

// indelRatio is 100 * (1 - insertions and deletions needed / total length).
func indelRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 100
	}
	dist := total - 2*lcs(ra, rb)
	return 100 * (1 - float64(dist)/float64(total))
}

func lcs(a, b []rune) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				cur[j] = prev[j-1] + 1
			case prev[j] >= cur[j-1]:
				cur[j] = prev[j]
			default:
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

// Grade reports whether answer is correct for q. Answers are compared
// case-insensitively.
func Grade(q Question, answer string) bool {
	answer = strings.ToLower(strings.TrimSpace(answer))
	if q.IsObjective() {
		return TokenSetRatio(answer, strings.ToLower(strings.TrimSpace(q.Ans))) > passRatio
	}

	if len(q.Keywords) == 0 {
		return false
	}
	found := 0
	for _, k := range q.Keywords {
		if strings.Contains(answer, strings.ToLower(k)) {
			found++
		}
	}
	return float64(found) >= float64(len(q.Keywords))/2
}

// CorrectDisplay is the expected answer as shown on the results page.
func CorrectDisplay(q Question) string {
	if q.IsObjective() {
		return q.Ans
	}
	return "Keywords: " + strings.Join(q.Keywords, ", ")
}

var computationalMarkers = []string{"=", "+", "/", "*", "calculate", "solve", "formula"}

// TimerSeconds allows more time per question when the text looks computational.
func TimerSeconds(text string, count int) int {
	lower := strings.ToLower(text)
	for _, m := range computationalMarkers {
		if strings.Contains(lower, m) {
			return count * 180
		}
	}
	return count * 90
}
