package internal

import (
	"encoding/csv"
	"io"
	"iter"
)

// CSVRecord is a single parsed row, or the error that stopped parsing.
type CSVRecord[T any] struct {
	Value *T
	Error error
}

// ParseCSV lazily parses rows from r, converting each record with fromCSV.
// When hasHeaders is true the first row is consumed and passed to fromCSV
// alongside every record.
func ParseCSV[T any](r io.Reader, hasHeaders bool, fromCSV func(record, headers []string) (*T, error)) iter.Seq[CSVRecord[T]] {
	return func(yield func(CSVRecord[T]) bool) {
		reader := csv.NewReader(r)
		reader.FieldsPerRecord = -1

		var headers []string
		if hasHeaders {
			row, err := reader.Read()
			if err != nil {
				yield(CSVRecord[T]{Error: err})
				return
			}
			headers = row
		}

		for {
			record, err := reader.Read()
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(CSVRecord[T]{Error: err})
				return
			}

			value, err := fromCSV(record, headers)
			if !yield(CSVRecord[T]{Value: value, Error: err}) {
				return
			}
		}
	}
}
