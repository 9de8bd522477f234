package htmlutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestGetText(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(
		`<html><body><h1>Betänkande <span>2019/20:FiU1</span></h1><p>other</p></body></html>`,
	))
	require.NoError(t, err)
	require.Equal(t, "Betänkande 2019/20:FiU1other", GetText(doc))
	require.Equal(t, "", GetText(nil))
}

func TestNormalizeText(t *testing.T) {
	table := []struct {
		input    string
		expected string
	}{
		{input: "  Statens budget  ", expected: "Statens budget"},
		{input: "\n\tStatens\n   budget\n", expected: "Statens budget"},
		{input: "Statens budget", expected: "Statens budget"},
		{input: "Statens\u200bbudget", expected: "Statensbudget"},
		{input: "", expected: ""},
	}

	for _, row := range table {
		require.Equal(t, row.expected, NormalizeText(row.input))
	}
}
