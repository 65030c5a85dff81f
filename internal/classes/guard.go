package classes

// Rejection records a string rewrite the guard refused.
type Rejection struct {
	Original  string // Content as found in the source
	Attempted string // Content with every mapped word substituted
	Words     int
	Replaced  int
}

// ShouldApply decides whether a rewrite of one string span is trustworthy.
//
// When the words that were not recognized outnumber the ones that were, the
// span is treated as prose that happens to contain a class-like token and the
// rewrite is refused. A span with no replacements is always accepted.
func ShouldApply(words, replaced int) bool {
	if replaced == 0 {
		return true
	}
	balance := replaced - (words - replaced)
	return balance >= 0
}
