// Copyright 2024 The go-cwsi Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// quag ingests radiometric canopy imagery and reports per-flight water
// stress extrema.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/quagsire/go-cwsi/annotate"
	"github.com/quagsire/go-cwsi/ingest"
	"github.com/quagsire/go-cwsi/report"
	"github.com/quagsire/go-cwsi/thermal"
)

func mainImpl() error {
	input := flag.String("input", "flights/flight.tif", "radiometric image, or a directory of them")
	output := flag.String("output", "reports/report.md", "markdown report destination")
	verbose := flag.Bool("v", false, "verbose mode")
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}
	log.SetFlags(log.Lmicroseconds)

	if flag.NArg() != 0 {
		return fmt.Errorf("unexpected argument: %s", flag.Args())
	}

	a, err := thermal.NewAnalyzer(thermal.Default())
	if err != nil {
		return err
	}

	paths := []string{*input}
	if fi, err := os.Stat(*input); err == nil && fi.IsDir() {
		if paths, err = flightPaths(*input); err != nil {
			return err
		}
	}

	// One goroutine per frame; every analysis owns its frame outright so
	// there is nothing to lock. The indexed slice keeps the report in
	// source order no matter which analysis finishes first.
	analyses := make([]*thermal.Analysis, len(paths))
	var wg sync.WaitGroup
	for i, p := range paths {
		wg.Add(1)
		go func(i int, p string) {
			defer wg.Done()
			f, err := ingest.ReadFile(p)
			if err != nil {
				log.Printf("%s: %s (analyzing fallback frame)", p, err)
			}
			analyses[i] = a.Analyze(f)
		}(i, p)
	}
	wg.Wait()

	if err := report.Write(*output, analyses...); err != nil {
		return err
	}
	for _, an := range analyses {
		if err := writeStill(*output, an); err != nil {
			// A read-only or headless environment must not abort the run;
			// the report is already on disk.
			log.Printf("annotated still: %s", err)
		}
	}
	fmt.Printf("%d frame(s) analyzed, report written to %s\n", len(analyses), *output)
	return nil
}

// writeStill saves the pseudocolor render with extrema marked next to the
// report.
func writeStill(reportPath string, a *thermal.Analysis) error {
	name := strings.TrimSuffix(filepath.Base(a.Frame.Path), filepath.Ext(a.Frame.Path)) + ".png"
	f, err := os.Create(filepath.Join(filepath.Dir(reportPath), name))
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, annotate.Extrema(a))
}

// flightPaths lists the radiometric images of a flight directory in name
// order.
func flightPaths(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".tif", ".tiff", ".png":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no radiometric imagery in %s", dir)
	}
	sort.Strings(paths)
	return paths, nil
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "\nquag: %s.\n", err)
		os.Exit(1)
	}
}
