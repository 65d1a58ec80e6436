// Package importer reads bank statements in the YNAB import CSV format and
// books them on the ledger.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

var ErrInvalidCSV = errors.New("the CSV file is invalid")

// Columns of the YNAB import CSV format.
const (
	Date = iota
	Payee
	Memo
	Outflow
	Inflow
	columns
)

// Row is one transaction of a statement.
type Row struct {
	Line   int             `json:"line" example:"2"`                  // Line of the row in the CSV file
	Date   string          `json:"date" example:"2025-02-05"`         // Date of the transaction, ISO 8601
	Payee  string          `json:"payee" example:"Deutsche Bahn"`     // Who was paid or who paid
	Memo   string          `json:"memo" example:"Train to Hamburg"`   // Free text
	Amount decimal.Decimal `json:"amount" example:"45.9" minimum:"0"` // Amount of the transaction
	Inflow bool            `json:"inflow" example:"false"`            // True for money received, false for money spent
}

// Parse parses a statement in the YNAB import CSV format. The first line
// is the header and is skipped.
func Parse(f io.Reader) ([]Row, error) {
	reader := csv.NewReader(f)
	reader.FieldsPerRecord = columns

	// We can reuse the array in the background to improve performance
	reader.ReuseRecord = true

	rows := []Row{}

	// Skip the first line
	_, err := reader.Read()
	if err == io.EOF {
		return rows, nil
	}
	if err != nil {
		return csvReadError(reader, fmt.Errorf("could not read header: %w", err))
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return csvReadError(reader, fmt.Errorf("could not read line: %w", err))
		}

		date, err := time.Parse("01/02/2006", record[Date])
		if err != nil {
			return csvReadError(reader, fmt.Errorf("could not parse time: %w", err))
		}

		line, _ := reader.FieldPos(Date)
		row := Row{
			Line:  line,
			Date:  date.Format(time.DateOnly),
			Payee: record[Payee],
			Memo:  record[Memo],
		}

		var raw string
		switch {
		case record[Outflow] != "" && record[Inflow] != "":
			return csvReadError(reader, errors.New("both outflow and inflow are set for the transaction"))
		case record[Outflow] == "" && record[Inflow] == "":
			return csvReadError(reader, errors.New("no amount is set for the transaction"))
		case record[Outflow] != "":
			raw = record[Outflow]
		default:
			raw = record[Inflow]
			row.Inflow = true
		}

		row.Amount, err = decimal.NewFromString(raw)
		if err != nil {
			return csvReadError(reader, fmt.Errorf("amount %q could not be parsed to a decimal", raw))
		}

		if !row.Amount.IsPositive() {
			return csvReadError(reader, errors.New("the amount for a transaction must be positive"))
		}

		rows = append(rows, row)
	}

	return rows, nil
}

// csvReadError returns the error with the line of the input it occurred in.
func csvReadError(r *csv.Reader, err error) ([]Row, error) {
	// always use the first field, we are only interested in the line
	line, _ := r.FieldPos(Date)

	return nil, fmt.Errorf("%w: error in line %d: %w", ErrInvalidCSV, line, err)
}
