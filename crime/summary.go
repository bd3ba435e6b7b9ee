// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package crime

import (
	"fmt"
	"reflect"
	"sort"
	"time"

	"github.com/aclements/go-gg/table"
)

// A Summary is a grouped count of records.
type Summary struct {
	// Name identifies the summary on the command line and in URLs.
	Name string

	Keys   []Key
	Groups []Group
}

// Total returns the sum of the group counts.
func (s *Summary) Total() int {
	n := 0
	for _, g := range s.Groups {
		n += g.Count
	}
	return n
}

// Table returns s as a table with one column per key, named by
// Key.String, followed by a "count" column.
func (s *Summary) Table() *table.Table {
	b := new(table.Builder)
	for _, k := range s.Keys {
		b.Add(k.String(), s.column(k))
	}
	counts := make([]int, len(s.Groups))
	for i, g := range s.Groups {
		counts[i] = g.Count
	}
	return b.Add("count", counts).Done()
}

func (s *Summary) column(k Key) interface{} {
	var proto interface{}
	switch k {
	case KeyType, KeyDistrict:
		// Strings get an ordinal scale by default.
		proto = ""
	default:
		proto = (&GroupKey{}).Value(k)
	}
	col := reflect.MakeSlice(reflect.SliceOf(reflect.TypeOf(proto)), len(s.Groups), len(s.Groups))
	for i := range s.Groups {
		v := reflect.ValueOf(s.Groups[i].Key.Value(k))
		col.Index(i).Set(v.Convert(col.Type().Elem()))
	}
	return col.Interface()
}

// Rows returns s as a slice of JSON-friendly rows keyed by
// Key.JSONName and "count".
func (s *Summary) Rows() []map[string]interface{} {
	rows := make([]map[string]interface{}, len(s.Groups))
	for i := range s.Groups {
		g := &s.Groups[i]
		row := make(map[string]interface{}, len(s.Keys)+1)
		for _, k := range s.Keys {
			v := g.Key.Value(k)
			if str, ok := v.(fmt.Stringer); ok {
				v = str.String()
			}
			row[k.JSONName()] = v
		}
		row["count"] = g.Count
		rows[i] = row
	}
	return rows
}

// A Location is the position of a single located record.
type Location struct {
	Type     CrimeType
	Lat, Lng float64
}

// SummaryOptions control Summarize.
type SummaryOptions struct {
	// InRegion, if non-nil, reports whether a location should be
	// kept for the map charts.
	InRegion func(lat, lng float64) bool

	// MaxPoints limits the number of Locations. Larger location
	// sets are thinned by taking every n'th location. 0 means no
	// limit.
	MaxPoints int
}

// Summaries holds the summary tables of a set of records.
type Summaries struct {
	// Records is the number of records summarized.
	Records int

	// First and Last are the earliest and latest dates.
	First, Last Day

	ByDate          *Summary // crime type × date
	ByMonth         *Summary // crime type × month
	ByMonthDistrict *Summary // crime type × month × district
	ByWeekdayHour   *Summary // crime type × day of week × hour, dense

	// NoDistrict is the number of records left out of
	// ByMonthDistrict because they have no district.
	NoDistrict int

	// Locations are the located records inside the region, after
	// thinning.
	Locations []Location

	// Unlocated and OutOfRegion count records left off the maps.
	// Thinned counts in-region records dropped by MaxPoints.
	Unlocated, OutOfRegion, Thinned int
}

// SummaryNames lists the names of the summaries in display order.
var SummaryNames = []string{"date", "month", "district", "weekday-hour"}

// Summarize computes the summary tables of records.
func Summarize(records []Record, opts SummaryOptions) *Summaries {
	s := &Summaries{Records: len(records)}

	for i := range records {
		d := records[i].Day()
		if i == 0 || d < s.First {
			s.First = d
		}
		if i == 0 || d > s.Last {
			s.Last = d
		}
	}

	s.ByDate = &Summary{"date", []Key{KeyType, KeyDate}, nil}
	s.ByDate.Groups = Count(records, s.ByDate.Keys...)

	s.ByMonth = &Summary{"month", []Key{KeyType, KeyMonth}, nil}
	s.ByMonth.Groups = Count(records, s.ByMonth.Keys...)

	withDistrict := make([]Record, 0, len(records))
	for _, r := range records {
		if r.District == "" {
			s.NoDistrict++
			continue
		}
		withDistrict = append(withDistrict, r)
	}
	s.ByMonthDistrict = &Summary{"district", []Key{KeyType, KeyMonth, KeyDistrict}, nil}
	s.ByMonthDistrict.Groups = Count(withDistrict, s.ByMonthDistrict.Keys...)

	s.ByWeekdayHour = &Summary{"weekday-hour", []Key{KeyType, KeyWeekday, KeyHour}, nil}
	s.ByWeekdayHour.Groups = fillWeekdayHour(Count(records, s.ByWeekdayHour.Keys...))

	for i := range records {
		r := &records[i]
		if !r.HasLocation() {
			s.Unlocated++
			continue
		}
		if opts.InRegion != nil && !opts.InRegion(r.Latitude, r.Longitude) {
			s.OutOfRegion++
			continue
		}
		s.Locations = append(s.Locations, Location{r.Type, r.Latitude, r.Longitude})
	}
	if opts.MaxPoints > 0 && len(s.Locations) > opts.MaxPoints {
		stride := (len(s.Locations) + opts.MaxPoints - 1) / opts.MaxPoints
		j := 0
		for i := 0; i < len(s.Locations); i += stride {
			s.Locations[j] = s.Locations[i]
			j++
		}
		s.Thinned = len(s.Locations) - j
		s.Locations = s.Locations[:j]
	}

	return s
}

// fillWeekdayHour adds zero-count groups so that every crime type,
// day of week and hour combination is present.
func fillWeekdayHour(groups []Group) []Group {
	have := make(map[GroupKey]bool, len(groups))
	for _, g := range groups {
		have[g.Key] = true
	}
	for _, ct := range CrimeTypes {
		for wd := time.Sunday; wd <= time.Saturday; wd++ {
			for h := 0; h < 24; h++ {
				gk := GroupKey{Type: ct, Weekday: wd, Hour: h}
				if !have[gk] {
					groups = append(groups, Group{Key: gk})
				}
			}
		}
	}
	sortGroups(groups, []Key{KeyType, KeyWeekday, KeyHour})
	return groups
}

// Summary returns the summary called name.
func (s *Summaries) Summary(name string) (*Summary, error) {
	for _, sum := range s.All() {
		if sum.Name == name {
			return sum, nil
		}
	}
	return nil, fmt.Errorf("unknown summary %q (want one of %v)", name, SummaryNames)
}

// All returns the summaries in SummaryNames order.
func (s *Summaries) All() []*Summary {
	return []*Summary{s.ByDate, s.ByMonth, s.ByMonthDistrict, s.ByWeekdayHour}
}

// LocationTable returns the Locations as a table with columns
// "longitude", "latitude" and "crime type".
func (s *Summaries) LocationTable() *table.Table {
	lng := make([]float64, len(s.Locations))
	lat := make([]float64, len(s.Locations))
	typ := make([]string, len(s.Locations))
	for i, l := range s.Locations {
		lng[i], lat[i], typ[i] = l.Lng, l.Lat, string(l.Type)
	}
	return new(table.Builder).
		Add("longitude", lng).
		Add("latitude", lat).
		Add("crime type", typ).
		Done()
}

// Districts returns the sorted distinct districts of ByMonthDistrict.
func (s *Summaries) Districts() []string {
	seen := make(map[string]bool)
	var out []string
	for _, g := range s.ByMonthDistrict.Groups {
		if !seen[g.Key.District] {
			seen[g.Key.District] = true
			out = append(out, g.Key.District)
		}
	}
	sort.Strings(out)
	return out
}
