package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
)

// ParseError is returned when a voting csv is missing or malformed.
type ParseError struct {
	Path string
	// Line is the 1-indexed line the problem was found on, 0 if it applies to the whole file.
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	source := e.Path
	if source == "" {
		source = "<input>"
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse %s:%d: %s", source, e.Line, e.Err)
	}
	return fmt.Sprintf("parse %s: %s", source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var (
	ErrEmpty         = errors.New("file is empty")
	ErrMissingColumn = errors.New("missing required column")
	ErrInvalidChoice = errors.New("invalid vote choice")
	ErrEmptyDokID    = errors.New("empty dok_id")
)

// ErrDuplicateColumn is returned for a header naming a column twice, rows could not be written
// back unchanged otherwise.
var ErrDuplicateColumn = errors.New("duplicate column")

// LoadFile reads and parses the voting csv at path.
func LoadFile(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, &ParseError{Path: path, Err: err}
	}
	defer f.Close()

	ds, err := Load(f)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.Path = path
		}
		return Dataset{}, err
	}
	return ds, nil
}

// Load parses a voting csv, the first record must be the header.
func Load(r io.Reader) (Dataset, error) {
	reader := csv.NewReader(r)
	// records must have as many fields as the header
	reader.FieldsPerRecord = 0

	header, err := reader.Read()
	if err == io.EOF {
		return Dataset{}, &ParseError{Err: ErrEmpty}
	}
	if err != nil {
		return Dataset{}, wrapCsvError(err)
	}
	// spreadsheet exports tend to start with a byte order mark
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	index := map[string]int{}
	for i, name := range header {
		if _, seen := index[name]; seen {
			return Dataset{}, &ParseError{
				Line: 1,
				Err:  fmt.Errorf("%w %q", ErrDuplicateColumn, name),
			}
		}
		index[name] = i
	}
	for _, required := range requiredColumns {
		if _, ok := index[required]; !ok {
			return Dataset{}, &ParseError{
				Line: 1,
				Err:  fmt.Errorf("%w %q", ErrMissingColumn, required),
			}
		}
	}

	ds := Dataset{Header: header}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Dataset{}, wrapCsvError(err)
		}
		line, _ := reader.FieldPos(0)

		row, err := decodeRow(header, record)
		if err != nil {
			return Dataset{}, &ParseError{Line: line, Err: err}
		}
		ds.Rows = append(ds.Rows, row)
	}

	return ds, nil
}

func wrapCsvError(err error) error {
	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		return &ParseError{Line: csvErr.Line, Err: csvErr.Err}
	}
	return &ParseError{Err: err}
}

func decodeRow(header, record []string) (VoteRow, error) {
	var row VoteRow
	for i, name := range header {
		value := record[i]
		switch name {
		case ColumnDokID:
			row.DokID = value
		case ColumnParty:
			row.Party = value
		case ColumnChoice:
			row.Choice = Choice(value)
		case ColumnDate:
			row.Date = value
		case ColumnVotingName:
			row.VotingName = value
		case ColumnVotingURL:
			row.VotingURL = value
		default:
			if row.Extra == nil {
				row.Extra = map[string]string{}
			}
			row.Extra[name] = value
		}
	}

	if strings.TrimSpace(row.DokID) == "" {
		return VoteRow{}, ErrEmptyDokID
	}
	if !row.Choice.Valid() {
		return VoteRow{}, fmt.Errorf("%w %q", ErrInvalidChoice, row.Choice)
	}
	return row, nil
}

// OutputHeader is the header Write emits, the dataset's header with the enrichment columns
// appended if they are missing.
func (ds Dataset) OutputHeader() []string {
	header := slices.Clone(ds.Header)
	if len(header) == 0 {
		header = slices.Clone(requiredColumns)
	}
	for _, column := range []string{ColumnVotingName, ColumnVotingURL} {
		if !slices.Contains(header, column) {
			header = append(header, column)
		}
	}
	return header
}

func encodeRow(header []string, row VoteRow) []string {
	record := make([]string, len(header))
	for i, name := range header {
		switch name {
		case ColumnDokID:
			record[i] = row.DokID
		case ColumnParty:
			record[i] = row.Party
		case ColumnChoice:
			record[i] = string(row.Choice)
		case ColumnDate:
			record[i] = row.Date
		case ColumnVotingName:
			record[i] = row.VotingName
		case ColumnVotingURL:
			record[i] = row.VotingURL
		default:
			record[i] = row.Extra[name]
		}
	}
	return record
}

// Write serializes ds as csv with a header row.
func Write(w io.Writer, ds Dataset) error {
	writer := csv.NewWriter(w)
	header := ds.OutputHeader()

	err := writer.Write(header)
	if err != nil {
		return err
	}
	for _, row := range ds.Rows {
		err = writer.Write(encodeRow(header, row))
		if err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// Encode is Write into a byte slice.
func Encode(ds Dataset) ([]byte, error) {
	var buff bytes.Buffer
	err := Write(&buff, ds)
	if err != nil {
		return nil, err
	}
	return buff.Bytes(), nil
}
