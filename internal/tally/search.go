package tally

import (
	"riksvote/internal/dataset"
	"sort"
	"strings"

	"github.com/antzucaro/matchr"
)

// MinSimilarity is the lowest score Search keeps.
const MinSimilarity = 0.6

type Match struct {
	Event dataset.VotingEvent
	Score float64
}

func similarity(query, name string) float64 {
	if name == "" {
		return 0
	}
	name = strings.ToLower(name)
	if strings.Contains(name, query) {
		return 1
	}
	best := matchr.JaroWinkler(query, name, false)
	// a short query is also compared against every run of words of the same length
	queryWords := len(strings.Fields(query))
	words := strings.Fields(name)
	for i := 0; i+queryWords <= len(words); i++ {
		sim := matchr.JaroWinkler(query, strings.Join(words[i:i+queryWords], " "), false)
		if sim > best {
			best = sim
		}
	}
	return best
}

// Search ranks events by how similar their name is to query, best first. An exact dok_id
// match always ranks first. limit <= 0 means no limit.
func Search(events []dataset.VotingEvent, query string, limit int) []Match {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	var matches []Match
	for _, e := range events {
		score := similarity(query, e.Name)
		if strings.ToLower(e.ID) == query {
			score = 2
		}
		if score < MinSimilarity {
			continue
		}
		matches = append(matches, Match{Event: e, Score: score})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Event.ID < matches[j].Event.ID
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
