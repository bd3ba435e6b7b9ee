// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package crime

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Row is one raw input row. Fields hold the cell text of the
// correspondingly named column, or "" if the column is absent.
type Row struct {
	Date        string // "Date"
	FBICode     string // "FBI.Code"
	PrimaryType string // "Primary.Type"
	District    string // "District"
	Latitude    string // "Latitude"
	Longitude   string // "Longitude"
	Arrest      string // "Arrest"
	Domestic    string // "Domestic"
}

// PortalLayout is the timestamp layout of the city data portal CSV
// export.
const PortalLayout = "01/02/2006 03:04:05 PM"

// defaultLayouts are tried, in order, after any caller-supplied
// layouts. The second is the portal's JSON API "floating timestamp"
// form; fractional seconds are accepted by time.Parse.
var defaultLayouts = []string{
	PortalLayout,
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// A FieldError records a malformed cell.
type FieldError struct {
	Column string
	Value  string
	Err    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("column %s: bad value %q: %v", e.Column, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// A Deriver turns raw rows into Records.
//
// The zero Deriver parses timestamps with the default layouts in UTC.
type Deriver struct {
	// Layouts are additional timestamp layouts to try before the
	// default ones.
	Layouts []string

	// Location is the time zone of timestamps that carry no zone
	// of their own. If nil, UTC is used.
	Location *time.Location
}

// Derive is shorthand for the zero Deriver's Derive method.
func Derive(row Row) (Record, bool, error) {
	var d Deriver
	return d.Derive(row)
}

// Derive classifies row and computes its derived columns. If row is
// not an index crime, Derive returns ok == false and a nil error
// without examining the remaining columns. Otherwise it returns the
// derived Record, or a *FieldError for the first malformed cell.
func (d *Deriver) Derive(row Row) (rec Record, ok bool, err error) {
	typ, ok := Classify(row.FBICode)
	if !ok {
		return Record{}, false, nil
	}
	rec = Record{
		FBICode:     strings.ToUpper(strings.TrimSpace(row.FBICode)),
		PrimaryType: strings.TrimSpace(row.PrimaryType),
		Type:        typ,
	}

	if rec.Timestamp, err = d.parseTimestamp(row.Date); err != nil {
		return Record{}, true, &FieldError{"Date", row.Date, err}
	}
	if rec.District, err = PadDistrict(row.District); err != nil {
		return Record{}, true, &FieldError{"District", row.District, err}
	}
	if rec.Latitude, err = parseCoord(row.Latitude); err != nil {
		return Record{}, true, &FieldError{"Latitude", row.Latitude, err}
	}
	if rec.Longitude, err = parseCoord(row.Longitude); err != nil {
		return Record{}, true, &FieldError{"Longitude", row.Longitude, err}
	}
	if rec.Arrest, err = parseFlag(row.Arrest); err != nil {
		return Record{}, true, &FieldError{"Arrest", row.Arrest, err}
	}
	if rec.Domestic, err = parseFlag(row.Domestic); err != nil {
		return Record{}, true, &FieldError{"Domestic", row.Domestic, err}
	}
	return rec, true, nil
}

func (d *Deriver) parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty timestamp")
	}
	loc := d.Location
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range d.Layouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	var firstErr error
	for _, layout := range defaultLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

// PadDistrict returns district number s as a two-digit, zero-padded
// label, so that labels sort in numeric order. Blank input yields "".
// Numbers written with an integral fractional part, such as "7.0",
// are accepted.
func PadDistrict(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || f != math.Trunc(f) {
			return "", fmt.Errorf("district %q is not an integer", s)
		}
		n = int(f)
	}
	if n < 0 || n > 99 {
		return "", fmt.Errorf("district %d out of range", n)
	}
	return fmt.Sprintf("%02d", n), nil
}

func parseCoord(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}

func parseFlag(s string) (bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return false, nil
	}
	return strconv.ParseBool(s)
}
