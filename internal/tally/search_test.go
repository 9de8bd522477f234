package tally

import (
	"riksvote/internal/dataset"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	events := []dataset.VotingEvent{
		{ID: "H901FiU1", Name: "Statens budget 2020"},
		{ID: "H901SfU2", Name: "Ändringar i socialförsäkringsbalken"},
		{ID: "H901JuU3", Name: "Skärpta straff för vapenbrott"},
		{ID: "H901UbU4", Name: ""},
	}

	matches := Search(events, "budget", 0)
	require.NotEmpty(t, matches)
	require.Equal(t, "H901FiU1", matches[0].Event.ID)
	require.Equal(t, 1.0, matches[0].Score)

	matches = Search(events, "vapenbrot", 0)
	require.NotEmpty(t, matches)
	require.Equal(t, "H901JuU3", matches[0].Event.ID)

	matches = Search(events, "h901ubu4", 0)
	require.Len(t, matches, 1)
	require.Equal(t, "H901UbU4", matches[0].Event.ID)

	require.Empty(t, Search(events, "   ", 0))
	require.Empty(t, Search(events, "zzzzqqqq", 0))

	for _, m := range Search(events, "s", 1) {
		require.GreaterOrEqual(t, m.Score, MinSimilarity)
	}
	require.Len(t, Search(events, "s", 1), 1)
}
