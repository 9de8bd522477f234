// Package tally aggregates the votes of voting events per party and compares a user's own
// choices against the party majorities.
package tally

import (
	"riksvote/internal/dataset"
)

// Counts is the amount of each choice cast.
type Counts map[dataset.Choice]int

func (c Counts) Yes() int {
	return c[dataset.ChoiceYes]
}

func (c Counts) No() int {
	return c[dataset.ChoiceNo]
}

func (c Counts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Majority is Yes when more members voted yes than no, otherwise it is No.
// Abstentions and absences do not count towards either side.
func (c Counts) Majority() dataset.Choice {
	if c.Yes() > c.No() {
		return dataset.ChoiceYes
	}
	return dataset.ChoiceNo
}

// PartyCounts is the tally of a single party in a voting event.
type PartyCounts struct {
	Party  string
	Counts Counts
}

// ByParty tallies votes per party, parties are ordered by their first appearance.
func ByParty(votes []dataset.VoteRow) []PartyCounts {
	index := map[string]int{}
	var out []PartyCounts
	for _, vote := range votes {
		i, ok := index[vote.Party]
		if !ok {
			i = len(out)
			index[vote.Party] = i
			out = append(out, PartyCounts{Party: vote.Party, Counts: Counts{}})
		}
		out[i].Counts[vote.Choice]++
	}
	return out
}

// Total tallies every vote regardless of party.
func Total(votes []dataset.VoteRow) Counts {
	counts := Counts{}
	for _, vote := range votes {
		counts[vote.Choice]++
	}
	return counts
}

type Outcome string

const (
	Passed Outcome = "Passed"
	Failed Outcome = "Failed"
)

// OutcomeOf is Passed when there are more yes votes than no votes in total.
func OutcomeOf(votes []dataset.VoteRow) Outcome {
	total := Total(votes)
	if total.Yes() > total.No() {
		return Passed
	}
	return Failed
}

// PartiesFor returns the parties where more members voted yes than no.
func PartiesFor(tallies []PartyCounts) []string {
	var parties []string
	for _, t := range tallies {
		if t.Counts.Yes() > t.Counts.No() {
			parties = append(parties, t.Party)
		}
	}
	return parties
}

// PartiesAgainst returns the parties where more members voted no than yes.
func PartiesAgainst(tallies []PartyCounts) []string {
	var parties []string
	for _, t := range tallies {
		if t.Counts.No() > t.Counts.Yes() {
			parties = append(parties, t.Party)
		}
	}
	return parties
}
