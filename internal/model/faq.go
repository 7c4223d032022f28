package model

// FAQEntry is one question/answer pair of the support corpus.
// Entries are immutable once indexed; identity is the question text.
type FAQEntry struct {
	Question string
	Answer   string
	Position int // insertion order in the corpus, used for deterministic tie-breaks
}
