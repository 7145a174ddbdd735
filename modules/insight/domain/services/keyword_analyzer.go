package services

import (
	"regexp"
	"sort"
	"strings"
)

// stopWords is the fixed set the keyword analyzer strips (§4.F, Glossary):
// common determiners, pronouns, auxiliaries, conjunctions, plus a
// hand-curated list of conversational filler. ~160 tokens.
var stopWords = map[string]bool{}

func init() {
	for _, w := range []string{
		"the", "and", "that", "have", "for", "not", "with", "you", "this",
		"but", "his", "her", "she", "they", "their", "them", "from", "was",
		"were", "are", "been", "being", "has", "had", "will", "would",
		"could", "should", "can", "may", "might", "must", "shall", "does",
		"did", "doing", "done", "than", "then", "there", "here", "where",
		"when", "what", "which", "who", "whom", "whose", "why", "how",
		"all", "any", "both", "each", "few", "more", "most", "other",
		"some", "such", "only", "own", "same", "just", "very", "also",
		"into", "over", "under", "again", "further", "once", "about",
		"above", "below", "between", "during", "before", "after", "above",
		"against", "because", "while", "until", "these", "those", "itself",
		"himself", "herself", "myself", "yourself", "ourselves",
		"themselves", "being", "doesn", "isn", "aren", "wasn", "weren",
		"hasn", "haven", "hadn", "won", "wouldn", "shouldn", "couldn",
		"mustn", "let", "lets", "still", "yeah", "okay", "right", "thing",
		"things", "really", "actually", "maybe", "sort", "kind", "lot",
		"bit", "way", "ways", "got", "get", "gets", "getting", "going",
		"go", "goes", "went", "gone", "know", "knew", "known", "knows",
		"like", "likes", "liked", "want", "wants", "wanted", "think",
		"thinks", "thought", "make", "makes", "made", "making", "said",
		"says", "saying", "look", "looks", "looked", "looking", "come",
		"comes", "came", "coming",
	} {
		stopWords[w] = true
	}
}

var nonWordChar = regexp.MustCompile(`[^a-z0-9 \t\n]`)

// Keywords implements component F's keywords(text) (§4.F step 1-3): lower,
// strip non-alphanumeric-non-whitespace, tokenize, drop short/stop tokens,
// frequency-rank, return the top 20 distinct tokens.
func Keywords(text string) []string {
	lowered := strings.ToLower(text)
	cleaned := nonWordChar.ReplaceAllString(lowered, " ")

	counts := make(map[string]int)
	var order []string
	for _, token := range strings.Fields(cleaned) {
		if len(token) <= 3 || stopWords[token] {
			continue
		}
		if _, seen := counts[token]; !seen {
			order = append(order, token)
		}
		counts[token]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > 20 {
		order = order[:20]
	}
	return order
}

// KeywordSet is Keywords as a lookup set, convenient for overlap checks.
func KeywordSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, k := range Keywords(text) {
		set[k] = true
	}
	return set
}

// SharedCount returns the number of tokens common to both sets.
func SharedCount(a, b map[string]bool) int {
	count := 0
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}
	for token := range small {
		if large[token] {
			count++
		}
	}
	return count
}

var attendeesLine = regexp.MustCompile(`(?i)attendees?\s*:\s*(.+)`)
var speakerLine = regexp.MustCompile(`(?i)^([a-z]{2,15}):`)

// People implements component F's people(text) (§4.F): union of the
// "attendees:" line heuristic and the per-line speaker-prefix heuristic,
// deduplicated, lowercase.
func People(text string) []string {
	seen := make(map[string]bool)
	var names []string

	add := func(name string) {
		name = strings.ToLower(strings.TrimSpace(name))
		if len(name) < 2 || len(name) > 19 {
			return
		}
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	if m := attendeesLine.FindStringSubmatch(text); m != nil {
		for _, entry := range strings.FieldsFunc(m[1], func(r rune) bool {
			return r == ',' || r == ';' || r == '&'
		}) {
			fields := strings.Fields(entry)
			if len(fields) > 0 {
				add(fields[0])
			}
		}
	}

	for _, line := range strings.Split(text, "\n") {
		if m := speakerLine.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			label := strings.ToLower(m[1])
			if label == "attendee" || label == "attendees" {
				continue
			}
			add(label)
		}
	}

	return names
}
