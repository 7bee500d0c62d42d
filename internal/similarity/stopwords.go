package similarity

// english stopwords excluded from term-frequency vocabulary.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {},
	"be": {}, "by": {}, "for": {}, "from": {}, "has": {}, "have": {},
	"he": {}, "her": {}, "his": {}, "in": {}, "is": {}, "it": {},
	"its": {}, "of": {}, "on": {}, "or": {}, "our": {}, "she": {},
	"that": {}, "the": {}, "their": {}, "them": {}, "they": {},
	"this": {}, "to": {}, "was": {}, "we": {}, "were": {}, "which": {},
	"will": {}, "with": {}, "you": {}, "your": {},
}

func isStopword(token string) bool {
	_, found := stopwords[token]
	return found
}
