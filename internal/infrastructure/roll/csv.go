// Package roll parses membership roll files uploaded by branch admins.
//
// Rolls arrive as UTF-8 CSV with a header row. Column names are matched
// case-insensitively against a small set of aliases so exports from
// common spreadsheet tools load without manual renaming.
package roll

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

var (
	// ErrEmptyFile is returned when the uploaded file has no content
	ErrEmptyFile = errors.New("roll file is empty")

	// ErrInvalidEncoding is returned when the file is not valid UTF-8
	ErrInvalidEncoding = errors.New("roll file must be UTF-8 encoded")

	// ErrMissingHeader is returned when the file has no header row
	ErrMissingHeader = errors.New("roll file is missing a header row")
)

// columnAliases maps canonical member fields to accepted header spellings
var columnAliases = map[string][]string{
	"first_name": {"first_name", "firstname", "first name", "given name"},
	"last_name":  {"last_name", "lastname", "last name", "surname", "family name"},
	"email":      {"email", "e-mail", "email address"},
	"phone":      {"phone", "phone number", "mobile", "telephone"},
}

// MemberRow is one resolved line of a membership roll
type MemberRow struct {
	Line      int
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// RowError reports a line that could not be resolved into a member row
type RowError struct {
	Line    int
	Message string
}

func (e RowError) String() string {
	return fmt.Sprintf("row %d: %s", e.Line, e.Message)
}

// ParseOption configures roll parsing
type ParseOption func(*parser)

// WithDelimiter sets the field delimiter (default is comma)
func WithDelimiter(d rune) ParseOption {
	return func(p *parser) {
		p.delimiter = d
	}
}

type parser struct {
	delimiter rune
}

// ParseMemberRoll reads a membership roll and resolves it into member
// rows. Lines that cannot be resolved are collected as RowErrors so the
// caller can report them without failing the whole upload. The error
// return covers file-level problems only.
func ParseMemberRoll(r io.Reader, opts ...ParseOption) ([]MemberRow, []RowError, error) {
	p := &parser{delimiter: ','}
	for _, opt := range opts {
		opt(p)
	}

	buf := bufio.NewReader(r)
	if err := stripBOM(buf); err != nil {
		return nil, nil, err
	}
	if err := validateUTF8(buf); err != nil {
		return nil, nil, err
	}

	reader := csv.NewReader(buf)
	reader.Comma = p.delimiter
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	columns, err := readHeader(reader)
	if err != nil {
		return nil, nil, err
	}

	var (
		rows     []MemberRow
		rowErrs  []RowError
		line     = 1 // header is line 1
		firstCol = columns["first_name"]
		lastCol  = columns["last_name"]
	)
	if firstCol < 0 || lastCol < 0 {
		return nil, nil, fmt.Errorf("roll file is missing required columns: need %q and %q", "first_name", "last_name")
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: line, Message: "malformed line"})
			continue
		}
		if isBlank(record) {
			continue
		}

		row := MemberRow{
			Line:      line,
			FirstName: field(record, firstCol),
			LastName:  field(record, lastCol),
			Email:     field(record, columns["email"]),
			Phone:     field(record, columns["phone"]),
		}
		if row.FirstName == "" || row.LastName == "" {
			rowErrs = append(rowErrs, RowError{Line: line, Message: "first and last name are required"})
			continue
		}
		rows = append(rows, row)
	}

	return rows, rowErrs, nil
}

// stripBOM discards a leading UTF-8 byte order mark if present
func stripBOM(r *bufio.Reader) error {
	head, err := r.Peek(3)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read roll file: %w", err)
	}
	if len(head) >= 3 && head[0] == 0xEF && head[1] == 0xBB && head[2] == 0xBF {
		_, _ = r.Discard(3)
	}
	return nil
}

func validateUTF8(r *bufio.Reader) error {
	const checkSize = 4096
	head, err := r.Peek(checkSize)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read roll file: %w", err)
	}
	if len(head) == 0 {
		return ErrEmptyFile
	}
	if !utf8.Valid(head[:truncateToRune(head)]) {
		return ErrInvalidEncoding
	}
	return nil
}

// truncateToRune trims a possibly mid-rune tail off the peeked window so
// a multi-byte rune split at the boundary is not flagged as invalid
func truncateToRune(b []byte) int {
	end := len(b)
	for i := 0; i < 4 && end > 0; i++ {
		if r, _ := utf8.DecodeLastRune(b[:end]); r != utf8.RuneError {
			return end
		}
		end--
	}
	return end
}

// readHeader maps canonical column names to their index, -1 when absent
func readHeader(reader *csv.Reader) (map[string]int, error) {
	record, err := reader.Read()
	if err == io.EOF {
		return nil, ErrMissingHeader
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	seen := make(map[string]int, len(record))
	for i, h := range record {
		seen[strings.ToLower(strings.TrimSpace(h))] = i
	}

	columns := make(map[string]int, len(columnAliases))
	for canonical, aliases := range columnAliases {
		columns[canonical] = -1
		for _, alias := range aliases {
			if idx, ok := seen[alias]; ok {
				columns[canonical] = idx
				break
			}
		}
	}
	return columns, nil
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
