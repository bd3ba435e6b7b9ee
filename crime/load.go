// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package crime

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// LoadOptions control Load.
type LoadOptions struct {
	Deriver

	// Strict makes Load fail on the first malformed index crime
	// row. Otherwise malformed rows are skipped and counted in
	// Dataset.Skipped.
	Strict bool
}

// Dataset is the result of loading a crime CSV.
type Dataset struct {
	Records []Record

	// Read is the number of data rows read. Every row is either
	// kept in Records, Filtered because it is not an index
	// crime, or Skipped because it is malformed.
	Read     int
	Filtered int

	// Skipped counts malformed rows by the name of the first bad
	// column.
	Skipped map[string]int
}

// SkippedTotal returns the total number of skipped rows.
func (d *Dataset) SkippedTotal() int {
	n := 0
	for _, c := range d.Skipped {
		n += c
	}
	return n
}

// SkipReasons returns the keys of d.Skipped in sorted order.
func (d *Dataset) SkipReasons() []string {
	keys := make([]string, 0, len(d.Skipped))
	for k := range d.Skipped {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// A RowError is a malformed row encountered by a strict Load.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// requiredColumns must be present in the header.
var requiredColumns = []string{"Date", "FBI.Code", "District", "Latitude", "Longitude"}

// NormalizeColumn returns header name with spaces replaced by dots.
func NormalizeColumn(name string) string {
	return strings.Replace(strings.TrimSpace(name), " ", ".", -1)
}

// header maps Row fields to CSV field indexes. Absent optional
// columns have index -1.
type header struct {
	date, code, ptype, district, lat, lng, arrest, domestic int
}

func parseHeader(names []string) (*header, error) {
	idx := make(map[string]int, len(names))
	for i, name := range names {
		if i == 0 {
			name = strings.TrimPrefix(name, "\uFEFF")
		}
		name = NormalizeColumn(name)
		if _, ok := idx[name]; !ok {
			idx[name] = i
		}
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("missing required column %q", col)
		}
	}
	get := func(col string) int {
		if i, ok := idx[col]; ok {
			return i
		}
		return -1
	}
	return &header{
		date:     get("Date"),
		code:     get("FBI.Code"),
		ptype:    get("Primary.Type"),
		district: get("District"),
		lat:      get("Latitude"),
		lng:      get("Longitude"),
		arrest:   get("Arrest"),
		domestic: get("Domestic"),
	}, nil
}

func (h *header) row(fields []string) Row {
	cell := func(i int) string {
		if i < 0 || i >= len(fields) {
			return ""
		}
		return fields[i]
	}
	return Row{
		Date:        cell(h.date),
		FBICode:     cell(h.code),
		PrimaryType: cell(h.ptype),
		District:    cell(h.district),
		Latitude:    cell(h.lat),
		Longitude:   cell(h.lng),
		Arrest:      cell(h.arrest),
		Domestic:    cell(h.domestic),
	}
}

// Load reads a crime CSV from r, keeps the index crimes and derives
// their columns.
func Load(r io.Reader, opts LoadOptions) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	names, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("empty input: no header row")
	} else if err != nil {
		return nil, err
	}
	h, err := parseHeader(names)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{Skipped: make(map[string]int)}
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		ds.Read++

		rec, ok, err := opts.Derive(h.row(fields))
		if err != nil {
			if opts.Strict {
				line, _ := cr.FieldPos(0)
				return nil, &RowError{line, err}
			}
			reason := "row"
			var fe *FieldError
			if errors.As(err, &fe) {
				reason = fe.Column
			}
			ds.Skipped[reason]++
			continue
		}
		if !ok {
			ds.Filtered++
			continue
		}
		ds.Records = append(ds.Records, rec)
	}
	return ds, nil
}
