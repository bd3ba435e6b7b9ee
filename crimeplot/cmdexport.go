// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ggcrime/ggcrime/internal/store"
)

var cmdExportFlags = flag.NewFlagSet(os.Args[0]+" export", flag.ExitOnError)

var export struct {
	in *inputFlags
	db string
}

func init() {
	f := cmdExportFlags
	f.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s export [flags] [input.csv]\n", os.Args[0])
		f.PrintDefaults()
	}
	export.in = addInputFlags(f)
	f.StringVar(&export.db, "db", "crime.db", "write summaries to SQLite database `file`")
	registerSubcommand("export", "[flags] [input.csv] - write summary tables to SQLite", cmdExport, f)
}

func cmdExport() {
	path := inputPath(cmdExportFlags)
	ds, sums, err := export.in.load(path, nil)
	if err != nil {
		log.Fatal(err)
	}

	st, err := store.Open(export.db)
	if err != nil {
		log.Fatal(err)
	}
	defer st.Close()

	ctx := context.Background()
	id, err := st.WriteSummaries(ctx, displayName(path), ds, sums)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%s: run %d, %d index crimes from %s to %s\n", export.db, id, sums.Records, sums.First, sums.Last)
}
