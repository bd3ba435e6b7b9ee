// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/ggcrime/ggcrime/internal/gallery"
	"github.com/ggcrime/ggcrime/internal/metrics"
)

var cmdServeFlags = flag.NewFlagSet(os.Args[0]+" serve", flag.ExitOnError)

var serve struct {
	in    *inputFlags
	theme *themeFlags
	addr  string
}

func init() {
	f := cmdServeFlags
	f.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s serve [flags] [input.csv]\n", os.Args[0])
		f.PrintDefaults()
	}
	serve.in = addInputFlags(f)
	serve.theme = addThemeFlags(f)
	f.StringVar(&serve.addr, "addr", cfg.Addr, "listen on `address`")
	registerSubcommand("serve", "[flags] [input.csv] - serve charts over HTTP", cmdServe, f)
}

func cmdServe() {
	path := inputPath(cmdServeFlags)
	th, err := serve.theme.get()
	if err != nil {
		log.Fatal(err)
	}
	m := metrics.New()
	_, sums, err := serve.in.load(path, m)
	if err != nil {
		log.Fatal(err)
	}

	gin.SetMode(gin.ReleaseMode)
	g := gallery.New(sums, th, m, displayName(path))
	srv := &http.Server{Addr: serve.addr, Handler: g.Handler()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.Printf("serving %d index crimes on %s", sums.Records, serve.addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	case <-ctx.Done():
		log.Printf("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			log.Fatalf("shutdown: %v", err)
		}
	}
}
