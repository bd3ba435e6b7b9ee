// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package crime

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(ts string, code, district string, lat, lng float64) Record {
	t, err := time.Parse("2006-01-02 15:04", ts)
	if err != nil {
		panic(err)
	}
	typ, ok := Classify(code)
	if !ok {
		panic("not an index code: " + code)
	}
	return Record{Timestamp: t, FBICode: code, District: district, Latitude: lat, Longitude: lng, Type: typ}
}

func randomRecords(n int) []Record {
	r := rand.New(rand.NewSource(1))
	codes := []string{"01A", "02", "03", "04A", "04B", "05", "06", "07", "09"}
	districts := []string{"01", "02", "07", "11", "25", ""}
	start := time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]Record, n)
	for i := range out {
		ts := start.Add(time.Duration(r.Int63n(int64(365 * 24 * time.Hour))))
		code := codes[r.Intn(len(codes))]
		typ, _ := Classify(code)
		out[i] = Record{
			Timestamp: ts,
			FBICode:   code,
			District:  districts[r.Intn(len(districts))],
			Latitude:  41.7 + r.Float64()*0.3,
			Longitude: -87.8 + r.Float64()*0.25,
			Type:      typ,
		}
		if i%10 == 0 {
			out[i].Latitude = math.NaN()
		}
	}
	return out
}

func TestCount(t *testing.T) {
	records := []Record{
		rec("2015-01-02 10:00", "06", "01", 0, 0),
		rec("2015-01-01 09:00", "03", "01", 0, 0),
		rec("2015-01-01 11:00", "06", "02", 0, 0),
		rec("2015-01-01 12:00", "06", "02", 0, 0),
	}
	groups := Count(records, KeyType, KeyDate)
	d1 := DayOf(time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC))
	want := []Group{
		{GroupKey{Type: Violent, Date: d1}, 1},
		{GroupKey{Type: Property, Date: d1}, 2},
		{GroupKey{Type: Property, Date: d1 + 1}, 1},
	}
	assert.Equal(t, want, groups)
}

func TestCountNoKeys(t *testing.T) {
	groups := Count(randomRecords(50))
	require.Len(t, groups, 1)
	assert.Equal(t, 50, groups[0].Count)
	assert.Empty(t, Count(nil, KeyType))
}

func TestCountSums(t *testing.T) {
	records := randomRecords(2000)
	for _, keys := range [][]Key{
		{KeyType},
		{KeyType, KeyDate},
		{KeyType, KeyMonth},
		{KeyType, KeyMonth, KeyDistrict},
		{KeyType, KeyWeekday, KeyHour},
		{KeyHour, KeyType},
	} {
		total := 0
		for _, g := range Count(records, keys...) {
			total += g.Count
		}
		assert.Equal(t, len(records), total, "keys %v", keys)
	}
}

func TestCountSorted(t *testing.T) {
	keys := []Key{KeyType, KeyMonth, KeyDistrict}
	groups := Count(randomRecords(1000), keys...)
	for i := 1; i < len(groups); i++ {
		less := false
		for _, k := range keys {
			if c := groups[i-1].Key.compare(&groups[i].Key, k); c != 0 {
				less = c < 0
				break
			}
		}
		assert.True(t, less, "groups %d and %d out of order: %+v %+v", i-1, i, groups[i-1].Key, groups[i].Key)
	}
}

func TestSummarize(t *testing.T) {
	records := randomRecords(3000)
	s := Summarize(records, SummaryOptions{})

	assert.Equal(t, len(records), s.Records)
	assert.Equal(t, len(records), s.ByDate.Total())
	assert.Equal(t, len(records), s.ByMonth.Total())
	assert.Equal(t, len(records), s.ByWeekdayHour.Total())
	assert.Equal(t, len(records)-s.NoDistrict, s.ByMonthDistrict.Total())
	assert.NotZero(t, s.NoDistrict)

	assert.Equal(t, len(records), len(s.Locations)+s.Unlocated)
	assert.True(t, s.First <= s.Last)
	assert.Equal(t, []string{"01", "02", "07", "11", "25"}, s.Districts())
}

func TestSummarizeDenseHeatmap(t *testing.T) {
	records := []Record{
		rec("2015-01-05 03:00", "06", "01", 0, 0),
		rec("2015-01-05 03:10", "06", "01", 0, 0),
	}
	s := Summarize(records, SummaryOptions{})
	groups := s.ByWeekdayHour.Groups
	require.Len(t, groups, len(CrimeTypes)*7*24)
	assert.Equal(t, 2, s.ByWeekdayHour.Total())

	// Violent crime sorts first, so the property crime cells start
	// at 7*24.
	g := groups[7*24+int(time.Monday)*24+3]
	assert.Equal(t, GroupKey{Type: Property, Weekday: time.Monday, Hour: 3}, g.Key)
	assert.Equal(t, 2, g.Count)
}

func TestSummarizeRegionAndThinning(t *testing.T) {
	records := randomRecords(1000)
	north := func(lat, lng float64) bool { return lat >= 41.85 }
	s := Summarize(records, SummaryOptions{InRegion: north, MaxPoints: 100})

	assert.True(t, len(s.Locations) <= 100)
	for _, l := range s.Locations {
		assert.True(t, l.Lat >= 41.85)
	}
	assert.Equal(t, len(records), len(s.Locations)+s.Thinned+s.OutOfRegion+s.Unlocated)
}

func TestSummaryTable(t *testing.T) {
	records := []Record{
		rec("2015-03-01 10:00", "06", "07", 0, 0),
		rec("2015-03-02 10:00", "03", "07", 0, 0),
		rec("2015-04-01 10:00", "06", "11", 0, 0),
	}
	s := Summarize(records, SummaryOptions{})

	tab := s.ByMonthDistrict.Table()
	assert.Equal(t, []string{"crime type", "month", "district", "count"}, tab.Columns())
	assert.Equal(t, []string{"Violent Crime", "Property Crime", "Property Crime"}, tab.MustColumn("crime type"))
	assert.Equal(t, []time.Month{time.March, time.March, time.April}, tab.MustColumn("month"))
	assert.Equal(t, []string{"07", "07", "11"}, tab.MustColumn("district"))
	assert.Equal(t, []int{1, 1, 1}, tab.MustColumn("count"))

	dates := s.ByDate.Table().MustColumn("date").([]Day)
	assert.Equal(t, "2015-03-01", dates[1].String())

	rows := s.ByMonth.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, map[string]interface{}{"crime_type": Violent, "month": "March", "count": 1}, rows[0])
}

func TestSummaryLookup(t *testing.T) {
	s := Summarize(randomRecords(10), SummaryOptions{})
	for _, name := range SummaryNames {
		sum, err := s.Summary(name)
		require.NoError(t, err)
		assert.Equal(t, name, sum.Name)
	}
	_, err := s.Summary("year")
	assert.Error(t, err)
}
