package ai

import "strings"

// VerdictFunc decides whether the model's free-text authenticity answer
// counts as "authentic". Isolated so the heuristic can be replaced
// without touching the surrounding pipeline.
type VerdictFunc func(responseText string) bool

// ContainsReal is the default heuristic: the answer is authentic iff it
// contains the token "real" in any case. It is wording-sensitive and
// easily gamed; it gates trust on phrasing, not content.
func ContainsReal(responseText string) bool {
	return strings.Contains(strings.ToLower(responseText), "real")
}
