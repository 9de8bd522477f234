package tally

import (
	"os"
	"path/filepath"
	"riksvote/internal/dataset"
	"testing"

	"github.com/stretchr/testify/require"
)

func testEvents() []dataset.VotingEvent {
	rows := append(votes("A1",
		"s", "Ja", "s", "Ja",
		"m", "Nej", "m", "Nej",
		"v", "Ja",
	), votes("B2",
		"s", "Nej",
		"m", "Ja",
		"v", "Nej",
	)...)
	rows = append(rows, votes("C3", "s", "Ja", "m", "Ja")...)
	return dataset.Group(rows)
}

func TestAlignment(t *testing.T) {
	ballot := Ballot{
		"A1": dataset.ChoiceYes,
		"B2": dataset.ChoiceNo,
	}

	scores := Alignment(testEvents(), ballot)
	require.Equal(t, []PartyScore{
		{Party: "s", Score: 2},
		{Party: "v", Score: 2},
		{Party: "m", Score: 0},
	}, scores)
	require.Equal(t, "s", MostAligned(scores))
}

func TestAlignmentAbstainMatchesNobody(t *testing.T) {
	scores := Alignment(testEvents(), Ballot{"A1": dataset.ChoiceAbstain})
	for _, s := range scores {
		require.Equal(t, 0, s.Score)
	}
	require.Len(t, scores, 3)
}

func TestAlignmentEmptyBallot(t *testing.T) {
	scores := Alignment(testEvents(), Ballot{})
	require.Empty(t, scores)
	require.Equal(t, "", MostAligned(scores))
}

func TestProgress(t *testing.T) {
	voted, notVoted := Progress(testEvents(), Ballot{"B2": dataset.ChoiceNo})
	require.Len(t, voted, 1)
	require.Equal(t, "B2", voted[0].ID)
	require.Len(t, notVoted, 2)
	require.Equal(t, "A1", notVoted[0].ID)
	require.Equal(t, "C3", notVoted[1].ID)
}

func TestParseBallot(t *testing.T) {
	ballot, err := ParseBallot([]byte(`{
		// json5 allows comments
		A1: "Ja",
		"B2": "Avstår",
	}`))
	require.NoError(t, err)
	require.Equal(t, Ballot{"A1": dataset.ChoiceYes, "B2": dataset.ChoiceAbstain}, ballot)

	_, err = ParseBallot([]byte(`{"A1": "Frånvarande"}`))
	require.Error(t, err)

	_, err = ParseBallot([]byte(`{"A1": `))
	require.Error(t, err)

	ballot, err = ParseBallot([]byte(`null`))
	require.NoError(t, err)
	require.Empty(t, ballot)
}

func TestReadBallot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ballot.json5")
	require.NoError(t, os.WriteFile(path, []byte(`{"A1": "Nej"}`), 0600))

	ballot, err := ReadBallot(path)
	require.NoError(t, err)
	require.Equal(t, dataset.ChoiceNo, ballot["A1"])

	_, err = ReadBallot(filepath.Join(t.TempDir(), "missing.json5"))
	require.Error(t, err)
}
