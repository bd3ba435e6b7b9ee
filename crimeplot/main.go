// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command crimeplot plots index crimes from a crime incident CSV.
//
// Usage:
//
//	crimeplot [flags] <command> [command flags] [input.csv]
//
// The input is a CSV export of the Chicago data portal's "Crimes -
// 2001 to present" dataset, or any CSV with the same Date, FBI Code,
// District, Latitude and Longitude columns. Spaces in column names
// are treated as dots. If no input is given, or the input is "-",
// crimeplot reads standard input.
//
// crimeplot keeps the FBI index crimes, classified as violent
// (homicide, criminal sexual assault, robbery and aggravated assault
// and battery) or property (burglary, theft, motor vehicle theft and
// arson), and summarizes them by date, month, district, day of week
// and hour.
//
// The commands are:
//
//	plot    write each chart as an SVG file
//	table   print a summary table
//	export  write the summary tables to a SQLite database
//	serve   serve the charts over HTTP
//
// Defaults for most flags come from CRIMEPLOT_* environment
// variables. See "crimeplot <command> -h" for each command's flags.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"sort"
)

type subcommand struct {
	name, usage string
	run         func()
	flags       *flag.FlagSet
}

var subcommands = make(map[string]*subcommand)

func registerSubcommand(name, usage string, run func(), flags *flag.FlagSet) {
	subcommands[name] = &subcommand{name, usage, run, flags}
}

func main() {
	log.SetPrefix("crimeplot: ")
	log.SetFlags(0)

	flagCPUProfile := flag.String("cpuprofile", "", "write CPU profile to `file`")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <command> [command flags] [input.csv]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Commands:\n")
		var names []string
		for name := range subcommands {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(os.Stderr, "  %s %s\n", name, subcommands[name].usage)
		}
		fmt.Fprintf(os.Stderr, "\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}
	cmd, ok := subcommands[flag.Arg(0)]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n", flag.Arg(0))
		flag.Usage()
		os.Exit(2)
	}

	if *flagCPUProfile != "" {
		f, err := os.Create(*flagCPUProfile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	cmd.flags.Parse(flag.Args()[1:])
	cmd.run()
}
