// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package crime reads crime incident records and reduces them to the
// small summary tables used for plotting.
//
// The input is the delimited export of a city crime portal (for
// example, the City of Chicago "Crimes - 2001 to present" dataset).
// Header names are normalized by replacing spaces with dots, so the
// "FBI Code" column is referred to as "FBI.Code". Each row carries an
// incident timestamp, an FBI classification code, a police district
// and a latitude/longitude pair.
//
// Only index crimes are kept. An index crime is one whose FBI code is
// in one of two fixed sets: violent crimes (homicide, criminal sexual
// assault, robbery and aggravated assault/battery) and property
// crimes (burglary, larceny, motor vehicle theft and arson). Every
// kept record is labeled with its CrimeType, and its timestamp is
// broken into the calendar fields used for grouping.
package crime

import (
	"math"
	"strings"
	"time"
)

// CrimeType is the binary classification of an index crime.
type CrimeType string

const (
	Violent  CrimeType = "Violent Crime"
	Property CrimeType = "Property Crime"
)

// CrimeTypes lists the crime types in display order.
var CrimeTypes = []CrimeType{Violent, Property}

// violentCodes and propertyCodes are the FBI codes of index crimes.
var violentCodes = map[string]bool{
	"01A": true, // Homicide 1st & 2nd degree
	"02":  true, // Criminal sexual assault
	"03":  true, // Robbery
	"04A": true, // Aggravated assault
	"04B": true, // Aggravated battery
}

var propertyCodes = map[string]bool{
	"05": true, // Burglary
	"06": true, // Larceny
	"07": true, // Motor vehicle theft
	"09": true, // Arson
}

// Classify returns the crime type of FBI code code. ok is false if
// code is not an index crime code. Surrounding white space and letter
// case are ignored.
func Classify(code string) (typ CrimeType, ok bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	switch {
	case violentCodes[code]:
		return Violent, true
	case propertyCodes[code]:
		return Property, true
	}
	return "", false
}

// Record is a single index crime incident.
type Record struct {
	Timestamp   time.Time
	FBICode     string
	PrimaryType string

	// District is the two-digit, zero-padded police district, or
	// "" if the incident has no district.
	District string

	// Latitude and Longitude are NaN if the incident was not
	// geocoded.
	Latitude, Longitude float64

	Arrest, Domestic bool

	Type CrimeType
}

// Date returns the calendar date of r's timestamp.
func (r *Record) Date() time.Time {
	y, m, d := r.Timestamp.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, r.Timestamp.Location())
}

// Day returns the calendar date of r's timestamp as a Day.
func (r *Record) Day() Day {
	return DayOf(r.Timestamp)
}

func (r *Record) Month() time.Month {
	return r.Timestamp.Month()
}

func (r *Record) Hour() int {
	return r.Timestamp.Hour()
}

func (r *Record) Weekday() time.Weekday {
	return r.Timestamp.Weekday()
}

// HasLocation reports whether r has finite coordinates.
func (r *Record) HasLocation() bool {
	return isFinite(r.Latitude) && isFinite(r.Longitude)
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// Day is a calendar date, counted in days since 1970-01-01. It is an
// integer type so that plot scales treat it as a continuous axis and
// label ticks with its String method.
type Day int

// DayOf returns the calendar date of t in t's location.
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	u := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return Day(u.Unix() / (24 * 60 * 60))
}

// Time returns midnight UTC of d.
func (d Day) Time() time.Time {
	return time.Unix(int64(d)*24*60*60, 0).UTC()
}

func (d Day) String() string {
	return d.Time().Format("2006-01-02")
}

func (d Day) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}
