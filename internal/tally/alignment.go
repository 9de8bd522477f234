package tally

import (
	"fmt"
	"os"
	"riksvote/internal/dataset"
	"slices"
	"strings"

	"github.com/titanous/json5"
)

// Ballot holds the choices a user made, keyed by dok_id.
type Ballot map[string]dataset.Choice

// allowed choices for a user, being absent is not something you can vote for.
var ballotChoices = []dataset.Choice{
	dataset.ChoiceYes,
	dataset.ChoiceNo,
	dataset.ChoiceAbstain,
}

// Validate checks that every choice in the ballot is one a user can make.
func (b Ballot) Validate() error {
	for id, choice := range b {
		if !slices.Contains(ballotChoices, choice) {
			return fmt.Errorf("ballot: %s: invalid choice %q", id, choice)
		}
	}
	return nil
}

// ParseBallot parses a json5 object mapping dok_id to a choice.
func ParseBallot(contents []byte) (Ballot, error) {
	var ballot Ballot
	err := json5.Unmarshal(contents, &ballot)
	if err != nil {
		return nil, fmt.Errorf("ballot: %w", err)
	}
	if ballot == nil {
		ballot = Ballot{}
	}
	err = ballot.Validate()
	if err != nil {
		return nil, err
	}
	return ballot, nil
}

// ReadBallot reads and parses the ballot file at path.
func ReadBallot(path string) (Ballot, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ballot: %w", err)
	}
	return ParseBallot(contents)
}

// PartyScore is the number of voting events in which a party's majority matched the user.
type PartyScore struct {
	Party string
	Score int
}

// Alignment scores each party by how many of the user's choices equal the party's majority.
// Only events present in the ballot count. Scores are sorted from highest to lowest, ties are
// ordered by party code.
func Alignment(events []dataset.VotingEvent, ballot Ballot) []PartyScore {
	scores := map[string]int{}
	for _, event := range events {
		choice, ok := ballot[event.ID]
		if !ok {
			continue
		}
		for _, party := range ByParty(event.Votes) {
			if _, seen := scores[party.Party]; !seen {
				scores[party.Party] = 0
			}
			if party.Counts.Majority() == choice {
				scores[party.Party]++
			}
		}
	}

	out := make([]PartyScore, 0, len(scores))
	for party, score := range scores {
		out = append(out, PartyScore{Party: party, Score: score})
	}
	slices.SortFunc(out, func(a, b PartyScore) int {
		if a.Score != b.Score {
			return b.Score - a.Score
		}
		return strings.Compare(a.Party, b.Party)
	})
	return out
}

// MostAligned returns the party with the highest alignment score, or "" if there are no scores.
func MostAligned(scores []PartyScore) string {
	if len(scores) == 0 {
		return ""
	}
	return scores[0].Party
}

// Progress splits events into the ones the user voted on and the ones they have not, both keep
// their original order.
func Progress(events []dataset.VotingEvent, ballot Ballot) (voted, notVoted []dataset.VotingEvent) {
	for _, event := range events {
		if _, ok := ballot[event.ID]; ok {
			voted = append(voted, event)
			continue
		}
		notVoted = append(notVoted, event)
	}
	return voted, notVoted
}
