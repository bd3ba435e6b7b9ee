// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/aclements/go-gg/table"

	"github.com/ggcrime/ggcrime/crime"
)

var cmdTableFlags = flag.NewFlagSet(os.Args[0]+" table", flag.ExitOnError)

var tableCmd struct {
	in      *inputFlags
	summary string
}

func init() {
	f := cmdTableFlags
	f.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s table [flags] [input.csv]\n", os.Args[0])
		f.PrintDefaults()
	}
	tableCmd.in = addInputFlags(f)
	f.StringVar(&tableCmd.summary, "summary", "month", "print `summary` "+strings.Join(crime.SummaryNames, ", ")+", or \"locations\"")
	registerSubcommand("table", "[flags] [input.csv] - print a summary table", cmdTable, f)
}

func cmdTable() {
	path := inputPath(cmdTableFlags)
	_, sums, err := tableCmd.in.load(path, nil)
	if err != nil {
		log.Fatal(err)
	}

	var tab *table.Table
	if tableCmd.summary == "locations" {
		tab = sums.LocationTable()
	} else {
		sum, err := sums.Summary(tableCmd.summary)
		if err != nil {
			log.Fatal(err)
		}
		tab = sum.Table()
	}
	table.Fprint(os.Stdout, tab)
}
