// Package importer turns freeform tabular text into validated inventory line
// records. Input typically arrives pasted from a spreadsheet, so the parser
// accepts comma, semicolon and tab separators, tolerates currency symbols and
// unit suffixes in the numeric columns, and reports problems per line instead
// of aborting.
package importer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"bottega/internal/core"
)

// LineResult is the outcome of parsing one input line: either a validated
// record (Name, Quantity, UnitCost) or a per-line error message. Raw always
// holds the original line for display next to the diagnostic.
type LineResult struct {
	Raw      string
	Name     string
	Quantity int
	UnitCost decimal.Decimal
	Err      string
}

// OK reports whether the line parsed into a valid record.
func (r LineResult) OK() bool {
	return r.Err == ""
}

var separators = strings.NewReplacer(";", ",", "\t", ",")

// Parse converts pasted multi-line text into one result per non-blank line,
// preserving input order. When firstRowHeader is set, the first non-blank
// line is a header: it is skipped entirely and produces no result.
func Parse(text string, firstRowHeader bool) []LineResult {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if firstRowHeader && len(lines) > 0 {
		lines = lines[1:]
	}

	results := make([]LineResult, 0, len(lines))
	for _, line := range lines {
		results = append(results, parseFields(line, splitColumns(line)))
	}
	return results
}

// splitColumns splits a line on any supported separator and trims each field.
// Empty interior fields (doubled separators, trailing tabs) are dropped; a
// leading empty field is kept so a missing name is reported as such rather
// than as a column-count problem.
func splitColumns(line string) []string {
	raw := strings.Split(separators.Replace(line), ",")
	fields := make([]string, 0, len(raw))
	for i, f := range raw {
		f = strings.TrimSpace(f)
		if f == "" && i > 0 {
			continue
		}
		fields = append(fields, f)
	}
	return fields
}

func parseFields(raw string, fields []string) LineResult {
	if len(fields) < 3 {
		return LineResult{
			Raw: raw,
			Err: fmt.Sprintf("Expected 3 columns (name, quantity, unit cost). Found %d.", len(fields)),
		}
	}

	// Spreadsheet pastes often carry a leading row index; drop it when the
	// first field is an integer and enough columns remain.
	if len(fields) >= 4 {
		if _, err := strconv.Atoi(fields[0]); err == nil {
			fields = fields[1:]
		}
	}

	name := fields[0]
	if name == "" {
		return LineResult{Raw: raw, Err: "Item name is required."}
	}

	quantity, err := core.ParseQuantity(fields[1])
	if err != nil {
		return LineResult{Raw: raw, Err: "Quantity must be a positive whole number."}
	}

	unitCost, err := core.ParsePrice(fields[2])
	if err != nil {
		return LineResult{Raw: raw, Err: "Unit cost must be a positive number."}
	}

	return LineResult{Raw: raw, Name: name, Quantity: quantity, UnitCost: unitCost}
}
