// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package crime

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// A Key names a derived field to group records by.
type Key int

const (
	KeyType Key = iota
	KeyDate
	KeyMonth
	KeyDistrict
	KeyWeekday
	KeyHour
)

var keyNames = [...]string{
	KeyType:     "crime type",
	KeyDate:     "date",
	KeyMonth:    "month",
	KeyDistrict: "district",
	KeyWeekday:  "day of week",
	KeyHour:     "hour",
}

// String returns the table column name of k.
func (k Key) String() string {
	if k < 0 || int(k) >= len(keyNames) {
		return fmt.Sprintf("Key(%d)", int(k))
	}
	return keyNames[k]
}

// JSONName returns the name of k in JSON output.
func (k Key) JSONName() string {
	return strings.Replace(k.String(), " ", "_", -1)
}

// GroupKey holds the grouped fields of a Group. Fields not named by
// the grouping keys are zero.
type GroupKey struct {
	Type     CrimeType
	Date     Day
	Month    time.Month
	District string
	Weekday  time.Weekday
	Hour     int
}

// Value returns the field of g selected by k.
func (g *GroupKey) Value(k Key) interface{} {
	switch k {
	case KeyType:
		return g.Type
	case KeyDate:
		return g.Date
	case KeyMonth:
		return g.Month
	case KeyDistrict:
		return g.District
	case KeyWeekday:
		return g.Weekday
	case KeyHour:
		return g.Hour
	}
	panic(fmt.Sprintf("unknown key %v", k))
}

func (g *GroupKey) set(k Key, r *Record) {
	switch k {
	case KeyType:
		g.Type = r.Type
	case KeyDate:
		g.Date = r.Day()
	case KeyMonth:
		g.Month = r.Month()
	case KeyDistrict:
		g.District = r.District
	case KeyWeekday:
		g.Weekday = r.Weekday()
	case KeyHour:
		g.Hour = r.Hour()
	default:
		panic(fmt.Sprintf("unknown key %v", k))
	}
}

// compare orders g and h by field k.
func (g *GroupKey) compare(h *GroupKey, k Key) int {
	var a, b int
	switch k {
	case KeyType:
		a, b = typeRank(g.Type), typeRank(h.Type)
	case KeyDate:
		a, b = int(g.Date), int(h.Date)
	case KeyMonth:
		a, b = int(g.Month), int(h.Month)
	case KeyDistrict:
		return strings.Compare(g.District, h.District)
	case KeyWeekday:
		a, b = int(g.Weekday), int(h.Weekday)
	case KeyHour:
		a, b = g.Hour, h.Hour
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func typeRank(t CrimeType) int {
	for i, ct := range CrimeTypes {
		if ct == t {
			return i
		}
	}
	return len(CrimeTypes)
}

// A Group is the number of records sharing a GroupKey.
type Group struct {
	Key   GroupKey
	Count int
}

// Count groups records by keys and counts each group. The result is
// sorted by keys in order, each in its natural order (crime types in
// CrimeTypes order). The counts sum to len(records).
func Count(records []Record, keys ...Key) []Group {
	counts := make(map[GroupKey]int)
	for i := range records {
		var gk GroupKey
		for _, k := range keys {
			gk.set(k, &records[i])
		}
		counts[gk]++
	}

	groups := make([]Group, 0, len(counts))
	for gk, n := range counts {
		groups = append(groups, Group{gk, n})
	}
	sortGroups(groups, keys)
	return groups
}

func sortGroups(groups []Group, keys []Key) {
	sort.Slice(groups, func(i, j int) bool {
		for _, k := range keys {
			if c := groups[i].Key.compare(&groups[j].Key, k); c != 0 {
				return c < 0
			}
		}
		return false
	})
}
