// Copyright 2024 The go-cwsi Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package report renders analysis results as a markdown report.
package report

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"text/template"
	"time"

	"github.com/quagsire/go-cwsi/thermal"
)

var reportTmpl = template.Must(template.New("report").Parse(`# Canopy thermal report

Generated {{.Generated}}.
{{range .Entries}}
## {{.Path}}

- source: {{.Source}}
- size: {{.Width}}x{{.Height}}
- raw counts: {{.RawMin}}..{{.RawMax}}
- hottest: ({{.Hot.X}}, {{.Hot.Y}}) {{printf "%.2f" .Hot.TempC}} C, CWSI {{printf "%.3f" .Hot.CWSI}}
- coldest: ({{.Cold.X}}, {{.Cold.Y}}) {{printf "%.2f" .Cold.TempC}} C, CWSI {{printf "%.3f" .Cold.CWSI}}
{{end}}`))

type point struct {
	X, Y  int
	TempC float64
	CWSI  float64
}

type entry struct {
	Path   string
	Source string
	Width  int
	Height int
	RawMin uint16
	RawMax uint16
	Hot    point
	Cold   point
}

type view struct {
	Generated string
	Entries   []entry
}

// Render writes the markdown report for the analyses, in the order given.
func Render(w io.Writer, analyses ...*thermal.Analysis) error {
	v := view{Generated: time.Now().UTC().Format(time.RFC3339)}
	for _, a := range analyses {
		b := a.Frame.Bounds()
		path := a.Frame.Path
		if path == "" {
			path = "(unnamed frame)"
		}
		v.Entries = append(v.Entries, entry{
			Path:   path,
			Source: a.Frame.Source.String(),
			Width:  b.Dx(),
			Height: b.Dy(),
			RawMin: a.Coldest.Raw,
			RawMax: a.Hottest.Raw,
			Hot:    point{a.Hottest.X, a.Hottest.Y, a.Hottest.TempC(a.Cal), a.Hottest.CWSI(a.Cal)},
			Cold:   point{a.Coldest.X, a.Coldest.Y, a.Coldest.TempC(a.Cal), a.Coldest.CWSI(a.Cal)},
		})
	}
	return reportTmpl.Execute(w, v)
}

// Write renders the report to path, creating the parent directory if needed.
func Write(path string, analyses ...*thermal.Analysis) error {
	buf := bytes.Buffer{}
	if err := Render(&buf, analyses...); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
