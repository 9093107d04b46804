package dataset

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
)

// Dataset holds one delimited file fully in memory: the ordered header
// plus every record in file order. A dataset with a header and zero
// records is valid; aggregates define their own empty-input behavior.
type Dataset struct {
	Path    string
	Header  []string
	Records [][]string

	index map[string]int
}

// Load reads a comma-delimited UTF-8 file whose first line is the header.
// Every record must have exactly as many fields as the header; the first
// mismatch aborts the load with no partial dataset. Lines are numbered
// from 1 counting the header, so the first record is line 2.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NotFoundErr(path)
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)

	header, err := r.Read()
	if err == io.EOF {
		return nil, EmptyFileErr(path)
	}
	if err != nil {
		return nil, MalformedRowErr(path, parseLine(err, 1), err)
	}

	var records [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, MalformedRowErr(path, parseLine(err, len(records)+2), err)
		}
		records = append(records, rec)
	}

	return New(path, header, records), nil
}

// New builds a Dataset from already-parsed rows. Callers are expected to
// hand over records matching the header width; Load guarantees this.
func New(path string, header []string, records [][]string) *Dataset {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}

	return &Dataset{
		Path:    path,
		Header:  header,
		Records: records,
		index:   index,
	}
}

// Len returns the number of records, excluding the header.
func (d *Dataset) Len() int {
	return len(d.Records)
}

// Column resolves a header name to its field position.
func (d *Dataset) Column(name string) (int, bool) {
	i, ok := d.index[name]
	return i, ok
}

// Value returns the raw string value of a column in record rec.
// The column must exist; summarize validates columns up front.
func (d *Dataset) Value(rec int, column string) string {
	return d.Records[rec][d.index[column]]
}

// RecordMap exposes one record as a column-keyed map, the shape boolean
// filter expressions evaluate against.
func (d *Dataset) RecordMap(rec int) map[string]any {
	m := make(map[string]any, len(d.Header))
	for i, name := range d.Header {
		m[name] = d.Records[rec][i]
	}
	return m
}

// parseLine pulls the 1-based line number out of a csv parse error,
// falling back to the caller's own count.
func parseLine(err error, fallback int) int {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return pe.Line
	}
	return fallback
}
