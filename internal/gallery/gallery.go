// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gallery serves the crime charts over HTTP.
package gallery

import (
	"bytes"
	"errors"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ggcrime/ggcrime/crime"
	"github.com/ggcrime/ggcrime/internal/charts"
	"github.com/ggcrime/ggcrime/internal/metrics"
	"github.com/ggcrime/ggcrime/internal/theme"
)

// A Server renders charts of one set of summaries on request.
//
// The summaries are never modified, so requests are served
// concurrently without locking.
type Server struct {
	sums    *crime.Summaries
	theme   *theme.Theme
	metrics *metrics.Metrics
	source  string

	// Logf, if non-nil, logs each request.
	Logf func(format string, args ...interface{})
}

// New returns a server for sums drawn with theme t by default. source
// names the input in the index page.
func New(sums *crime.Summaries, t *theme.Theme, m *metrics.Metrics, source string) *Server {
	return &Server{sums: sums, theme: t, metrics: m, source: source, Logf: log.Printf}
}

// Handler returns the gin engine serving the gallery.
func (s *Server) Handler() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.observe)
	r.SetHTMLTemplate(indexTemplate)

	r.GET("/", s.index)
	r.GET("/charts/:file", s.chart)
	r.GET("/summaries/:name", s.summary)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "records": s.sums.Records})
	})
	r.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	r.NoRoute(func(c *gin.Context) {
		fail(c, http.StatusNotFound, "no such page")
	})
	return r
}

// observe counts and logs requests.
func (s *Server) observe(c *gin.Context) {
	start := time.Now()
	c.Next()

	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}
	code := c.Writer.Status()
	s.metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
	if s.Logf != nil {
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path += "?" + raw
		}
		s.Logf("[%s] %s %d %v", c.Request.Method, path, code, time.Since(start))
	}
}

func fail(c *gin.Context, code int, msg string) {
	c.AbortWithStatusJSON(code, gin.H{"error": msg})
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><title>Crime charts</title></head>
<body>
<h1>Crime charts</h1>
<p>{{.Source}}: {{.Records}} index crimes{{if .Records}}, {{.First}} to {{.Last}}{{end}}.
Themes: {{range .Themes}}<a href="?theme={{.}}">{{.}}</a> {{end}}</p>
{{range .Charts}}<h2>{{.Title}}</h2>
<p><img src="/charts/{{.Name}}.svg{{if $.Theme}}?theme={{$.Theme}}{{end}}" alt="{{.Name}}"></p>
{{end}}
<p>Summaries: {{range .Summaries}}<a href="/summaries/{{.}}">{{.}}</a> {{end}}</p>
</body>
</html>
`))

func (s *Server) index(c *gin.Context) {
	th := c.Query("theme")
	if th != "" {
		if _, err := theme.Lookup(th); err != nil {
			fail(c, http.StatusBadRequest, err.Error())
			return
		}
	}
	c.HTML(http.StatusOK, "index", gin.H{
		"Source":    s.source,
		"Records":   s.sums.Records,
		"First":     s.sums.First,
		"Last":      s.sums.Last,
		"Themes":    theme.Names(),
		"Theme":     th,
		"Charts":    charts.All,
		"Summaries": crime.SummaryNames,
	})
}

// chart serves /charts/NAME.svg?theme=T&scale=S.
func (s *Server) chart(c *gin.Context) {
	file := c.Param("file")
	name := strings.TrimSuffix(file, ".svg")
	if name == file {
		fail(c, http.StatusNotFound, "charts are served as NAME.svg")
		return
	}
	ch, err := charts.Lookup(name)
	if err != nil {
		fail(c, http.StatusNotFound, err.Error())
		return
	}

	th := s.theme
	if q := c.Query("theme"); q != "" {
		if th, err = theme.Lookup(q); err != nil {
			fail(c, http.StatusBadRequest, err.Error())
			return
		}
	}
	if q := c.Query("scale"); q != "" {
		if th, err = th.WithScale(q); err != nil {
			fail(c, http.StatusBadRequest, err.Error())
			return
		}
	}

	start := time.Now()
	var buf bytes.Buffer
	err = charts.Render(&buf, ch, s.sums, th)
	s.metrics.RenderDuration.WithLabelValues(ch.Name).Observe(time.Since(start).Seconds())
	switch {
	case errors.Is(err, charts.ErrNoData):
		fail(c, http.StatusNotFound, err.Error())
		return
	case err != nil:
		s.metrics.RenderErrors.Inc()
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	s.metrics.ChartsRendered.Inc()
	c.Data(http.StatusOK, "image/svg+xml", buf.Bytes())
}

func (s *Server) summary(c *gin.Context) {
	sum, err := s.sums.Summary(c.Param("name"))
	if err != nil {
		fail(c, http.StatusNotFound, err.Error())
		return
	}
	keys := make([]string, len(sum.Keys))
	for i, k := range sum.Keys {
		keys[i] = k.JSONName()
	}
	c.JSON(http.StatusOK, gin.H{
		"name":  sum.Name,
		"keys":  keys,
		"total": sum.Total(),
		"rows":  sum.Rows(),
	})
}
