// Package dataset contains the voting record model, its csv representation and the grouping of
// rows into voting events.
package dataset

// Column names of the csv as exported by riksdagen.
const (
	ColumnDokID      = "dok_id"
	ColumnParty      = "parti"
	ColumnChoice     = "rost"
	ColumnDate       = "datum"
	ColumnVotingName = "votingName"
	ColumnVotingURL  = "votingURL"
)

var requiredColumns = []string{
	ColumnDokID,
	ColumnParty,
	ColumnChoice,
	ColumnDate,
}

// Choice is the vote cast by a legislator, the value is the raw string used in the csv.
type Choice string

const (
	ChoiceYes     Choice = "Ja"
	ChoiceNo      Choice = "Nej"
	ChoiceAbstain Choice = "Avstår"
	ChoiceAbsent  Choice = "Frånvarande"
)

// Choices lists every valid choice in display order.
var Choices = []Choice{ChoiceYes, ChoiceNo, ChoiceAbstain, ChoiceAbsent}

func (c Choice) Valid() bool {
	switch c {
	case ChoiceYes, ChoiceNo, ChoiceAbstain, ChoiceAbsent:
		return true
	}
	return false
}

// Label is the english name of the choice.
func (c Choice) Label() string {
	switch c {
	case ChoiceYes:
		return "Yes"
	case ChoiceNo:
		return "No"
	case ChoiceAbstain:
		return "Abstain"
	case ChoiceAbsent:
		return "Absent"
	}
	return string(c)
}

// VoteRow is a single legislator's vote in a voting event.
type VoteRow struct {
	DokID  string
	Party  string
	Choice Choice
	Date   string
	// VotingName and VotingURL are empty until the row has been enriched.
	VotingName string
	VotingURL  string
	// Extra holds the columns that are not known to this package, keyed by header name.
	Extra map[string]string
}

// VotingEvent is one parliamentary vote occasion.
type VotingEvent struct {
	ID    string
	Name  string
	URL   string
	Date  string
	Votes []VoteRow
}

// DisplayName returns the name of the event, or its id if it was never resolved.
func (e VotingEvent) DisplayName() string {
	if e.Name == "" {
		return e.ID
	}
	return e.Name
}

// Dataset is the content of a voting csv.
type Dataset struct {
	// Header is the column order as read.
	Header []string
	Rows   []VoteRow
}
