package dataset

// DistinctIDs returns the dok_ids of rows without duplicates, in the order they were first seen.
func DistinctIDs(rows []VoteRow) []string {
	seen := map[string]struct{}{}
	var ids []string
	for _, row := range rows {
		if _, ok := seen[row.DokID]; ok {
			continue
		}
		seen[row.DokID] = struct{}{}
		ids = append(ids, row.DokID)
	}
	return ids
}

// Group groups rows into voting events. Events are ordered by the first appearance of their
// dok_id and the votes of an event keep their input order. The name, url and date of an event
// are taken from its first row.
func Group(rows []VoteRow) []VotingEvent {
	index := map[string]int{}
	var events []VotingEvent
	for _, row := range rows {
		i, ok := index[row.DokID]
		if !ok {
			i = len(events)
			index[row.DokID] = i
			events = append(events, VotingEvent{
				ID:   row.DokID,
				Name: row.VotingName,
				URL:  row.VotingURL,
				Date: row.Date,
			})
		}
		events[i].Votes = append(events[i].Votes, row)
	}
	return events
}

// Flatten concatenates the votes of every event.
func Flatten(events []VotingEvent) []VoteRow {
	var rows []VoteRow
	for _, e := range events {
		rows = append(rows, e.Votes...)
	}
	return rows
}

// Find returns the event with the given id.
func Find(events []VotingEvent, id string) (VotingEvent, bool) {
	for _, e := range events {
		if e.ID == id {
			return e, true
		}
	}
	return VotingEvent{}, false
}

// LoadEvents reads the csv at path and groups it.
func LoadEvents(path string) ([]VotingEvent, error) {
	ds, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return Group(ds.Rows), nil
}
