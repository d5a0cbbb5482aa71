package csvimport

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	id "callsync/pkg/domain"
	"callsync/pkg/domerr"
)

// Phone-system exports disagree on almost everything: column names, time
// formats, how a direction is spelled. The parser absorbs that variance at
// the boundary so every row that survives is a fully validated record shape.

// columnAliases maps the column roles we need onto the header spellings seen
// across provider exports. Headers are matched case-insensitively after
// trimming, with underscores treated as spaces so machine-style exports
// (call_time, source_number) resolve to the same roles.
var columnAliases = map[string][]string{
	"call_time":   {"call time", "calltime", "date/time", "datetime", "date time", "start time", "timestamp", "date"},
	"direction":   {"direction", "call direction", "call type", "type"},
	"source":      {"source", "source number", "from", "from number", "caller", "caller id", "calling number"},
	"destination": {"destination", "destination number", "to", "to number", "called number", "dialed number"},
	"duration":    {"duration", "duration (sec)", "duration (s)", "duration seconds", "talk time", "call duration"},
	"disposition": {"disposition", "status", "call status", "result"},
	"tta":         {"time to answer", "time to answer (sec)", "tta", "ring time", "answer time"},
}

// timeLayouts are tried in order against the call-time cell. The first match
// wins; ambiguous US-style dates are interpreted month-first because every
// export observed so far is North American.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"01/02/2006 15:04:05",
	"01/02/2006 3:04:05 PM",
	"01/02/2006 15:04",
	"1/2/2006 15:04:05",
	"1/2/2006 3:04 PM",
}

// Row is one parsed CSV line in record shape, before identity is assigned.
type Row struct {
	CallTime            time.Time
	Direction           id.Direction
	SourceNumber        *string
	DestinationNumber   *string
	DurationSeconds     *int
	Disposition         *string
	TimeToAnswerSeconds *int
}

// RowError pairs a failing line with its cause. Line numbers are 1-based and
// count the header, matching what users see in a spreadsheet.
type RowError struct {
	Line  int
	Cause error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Line, e.Cause)
}

// Parser reads a column-mapped CSV stream row by row.
type Parser struct {
	reader  *csv.Reader
	columns map[string]int
	line    int
}

// NewParser reads and resolves the header. At minimum the export must carry
// a call time and a direction column; everything else is optional.
func NewParser(r io.Reader) (*Parser, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, domerr.New(domerr.CodeInvalidInput, "csv file is empty")
	}
	if err != nil {
		return nil, domerr.Wrap(err, domerr.CodeInvalidInput, "csv header is unreadable")
	}

	columns := resolveColumns(header)
	if _, ok := columns["call_time"]; !ok {
		return nil, domerr.New(domerr.CodeInvalidInput, "csv is missing a call time column")
	}
	if _, ok := columns["direction"]; !ok {
		return nil, domerr.New(domerr.CodeInvalidInput, "csv is missing a direction column")
	}

	return &Parser{reader: cr, columns: columns, line: 1}, nil
}

func resolveColumns(header []string) map[string]int {
	columns := make(map[string]int, len(columnAliases))
	for i, cell := range header {
		name := strings.ToLower(strings.TrimSpace(cell))
		name = strings.ReplaceAll(name, "_", " ")
		for role, aliases := range columnAliases {
			if _, taken := columns[role]; taken {
				continue
			}
			for _, alias := range aliases {
				if name == alias {
					columns[role] = i
					break
				}
			}
		}
	}
	return columns
}

// Next returns the next parsed row. io.EOF ends the stream; a *RowError
// reports a bad line the caller can collect and skip past.
func (p *Parser) Next() (Row, error) {
	cells, err := p.reader.Read()
	if err == io.EOF {
		return Row{}, io.EOF
	}
	p.line++
	if err != nil {
		return Row{}, &RowError{Line: p.line, Cause: err}
	}

	row, err := p.parseRow(cells)
	if err != nil {
		return Row{}, &RowError{Line: p.line, Cause: err}
	}
	return row, nil
}

// Line reports the 1-based line number of the most recently read row.
func (p *Parser) Line() int { return p.line }

func (p *Parser) parseRow(cells []string) (Row, error) {
	var row Row

	callTimeRaw := p.cell(cells, "call_time")
	if callTimeRaw == "" {
		return Row{}, domerr.New(domerr.CodeInvalidInput, "call time is empty")
	}
	callTime, err := parseCallTime(callTimeRaw)
	if err != nil {
		return Row{}, err
	}
	row.CallTime = callTime

	direction, err := parseDirection(p.cell(cells, "direction"))
	if err != nil {
		return Row{}, err
	}
	row.Direction = direction

	row.SourceNumber = optionalString(p.cell(cells, "source"))
	row.DestinationNumber = optionalString(p.cell(cells, "destination"))
	row.Disposition = optionalString(p.cell(cells, "disposition"))

	if raw := p.cell(cells, "duration"); raw != "" {
		seconds, err := parseDuration(raw)
		if err != nil {
			return Row{}, err
		}
		row.DurationSeconds = &seconds
	}

	if raw := p.cell(cells, "tta"); raw != "" {
		seconds, err := parseDuration(raw)
		if err != nil {
			return Row{}, domerr.Wrap(err, domerr.CodeInvalidInput, "bad time to answer")
		}
		row.TimeToAnswerSeconds = &seconds
	}

	return row, nil
}

func (p *Parser) cell(cells []string, role string) string {
	idx, ok := p.columns[role]
	if !ok || idx >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[idx])
}

func parseCallTime(raw string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, domerr.Newf(domerr.CodeInvalidInput, "unparsable call time %q", raw)
}

func parseDirection(raw string) (id.Direction, error) {
	switch strings.ToLower(raw) {
	case "inbound", "in", "incoming", "received":
		return id.DirectionInbound, nil
	case "outbound", "out", "outgoing", "placed", "dialed":
		return id.DirectionOutbound, nil
	case "":
		return "", domerr.New(domerr.CodeInvalidInput, "direction is empty")
	default:
		return "", domerr.Newf(domerr.CodeInvalidInput, "unknown direction %q", raw)
	}
}

// parseDuration accepts plain seconds ("125") and clock notation
// ("2:05", "1:02:05").
func parseDuration(raw string) (int, error) {
	if !strings.Contains(raw, ":") {
		seconds, err := strconv.Atoi(raw)
		if err != nil {
			return 0, domerr.Newf(domerr.CodeInvalidInput, "unparsable duration %q", raw)
		}
		if seconds < 0 {
			return 0, domerr.Newf(domerr.CodeInvalidInput, "negative duration %q", raw)
		}
		return seconds, nil
	}

	parts := strings.Split(raw, ":")
	if len(parts) > 3 {
		return 0, domerr.Newf(domerr.CodeInvalidInput, "unparsable duration %q", raw)
	}
	total := 0
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			return 0, domerr.Newf(domerr.CodeInvalidInput, "unparsable duration %q", raw)
		}
		total = total*60 + n
	}
	return total, nil
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
