// Copyright 2024 The go-cwsi Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// quag-serve watches a flight directory and serves the latest water stress
// analysis over HTTP.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"html/template"
	"image/png"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/maruel/interrupt"
	"github.com/maruel/serve-dir/loghttp"
	fsnotify "gopkg.in/fsnotify.v1"

	"github.com/quagsire/go-cwsi/annotate"
	"github.com/quagsire/go-cwsi/gray8"
	"github.com/quagsire/go-cwsi/ingest"
	"github.com/quagsire/go-cwsi/thermal"
	"github.com/quagsire/go-cwsi/thermaltest"
)

var rootTmpl = template.Must(template.New("root").Parse(`
	<html>
	<head>
		<title>quag-serve</title>
		<style>
			img.large {
				width: 480; /* Multiple of 160 */
				height: auto;
			}
		</style>
		<script>
		function reload() {
			var still = document.getElementById("color");
			still.src = "/color.png#" + new Date().getTime();
		}
		</script>
	</head>
	<body>
	Latest flight frame:<br>
	<a href="/color.png"><img class="large" id="color" src="/color.png" onload="reload()"></img></a>
	<br>
	{{.Stats}}
	<br>
	{{if .Analysis}}
	{{.Analysis.Frame.Path}} ({{.Analysis.Frame.Source}}):
	hottest ({{.Analysis.Hottest.X}}, {{.Analysis.Hottest.Y}}),
	coldest ({{.Analysis.Coldest.X}}, {{.Analysis.Coldest.Y}}),
	raw {{.Analysis.Coldest.Raw}}..{{.Analysis.Hottest.Raw}}
	{{end}}
	<br>
	<a href="/reports/">reports</a>
	</body>
	</html>`))

type stats struct {
	Analyzed  int
	Fallbacks int
	Events    int
}

// server holds the most recent analysis. Frames are immutable so handlers
// only need the lock long enough to grab the pointer.
type server struct {
	lock     sync.Mutex
	cond     *sync.Cond
	analysis *thermal.Analysis
	seq      int
	stats    stats
}

func newServer() *server {
	s := &server{}
	s.cond = sync.NewCond(&s.lock)
	return s
}

func (s *server) publish(a *thermal.Analysis) {
	s.lock.Lock()
	s.analysis = a
	s.seq++
	s.stats.Analyzed++
	if a.Frame.Source == thermal.SourceFallback {
		s.stats.Fallbacks++
	}
	s.lock.Unlock()
	s.cond.Broadcast()
}

func (s *server) latest() *thermal.Analysis {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.analysis
}

func (s *server) root(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html")
	s.lock.Lock()
	data := struct {
		Stats    stats
		Analysis *thermal.Analysis
	}{s.stats, s.analysis}
	s.lock.Unlock()
	if err := rootTmpl.Execute(w, data); err != nil {
		log.Printf("root: %s", err)
	}
}

func (s *server) still(w http.ResponseWriter, r *http.Request) {
	a := s.latest()
	if a == nil {
		http.Error(w, "no frame yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
	if err := png.Encode(w, gray8.Normalize(a.Frame.Gray16)); err != nil {
		log.Printf("still: %s", err)
	}
}

func (s *server) still16(w http.ResponseWriter, r *http.Request) {
	a := s.latest()
	if a == nil {
		http.Error(w, "no frame yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
	if err := png.Encode(w, a.Frame.Gray16); err != nil {
		log.Printf("still16: %s", err)
	}
}

func (s *server) color(w http.ResponseWriter, r *http.Request) {
	a := s.latest()
	if a == nil {
		http.Error(w, "no frame yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
	if err := png.Encode(w, annotate.Extrema(a)); err != nil {
		log.Printf("color: %s", err)
	}
}

type samplePoint struct {
	X     int     `json:"x"`
	Y     int     `json:"y"`
	Raw   uint16  `json:"raw"`
	TempC float64 `json:"temp_c"`
	CWSI  float64 `json:"cwsi"`
}

type summary struct {
	Path    string      `json:"path"`
	Source  string      `json:"source"`
	Width   int         `json:"width"`
	Height  int         `json:"height"`
	Hottest samplePoint `json:"hottest"`
	Coldest samplePoint `json:"coldest"`
}

func summarize(a *thermal.Analysis) summary {
	b := a.Frame.Bounds()
	return summary{
		Path:    a.Frame.Path,
		Source:  a.Frame.Source.String(),
		Width:   b.Dx(),
		Height:  b.Dy(),
		Hottest: samplePoint{a.Hottest.X, a.Hottest.Y, a.Hottest.Raw, a.Hottest.TempC(a.Cal), a.Hottest.CWSI(a.Cal)},
		Coldest: samplePoint{a.Coldest.X, a.Coldest.Y, a.Coldest.Raw, a.Coldest.TempC(a.Cal), a.Coldest.CWSI(a.Cal)},
	}
}

func (s *server) analysisJSON(w http.ResponseWriter, r *http.Request) {
	a := s.latest()
	if a == nil {
		http.Error(w, "no frame yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(summarize(a)); err != nil {
		log.Printf("analysis: %s", err)
	}
}

// watchFlights re-analyzes whenever new imagery lands in the flight
// directory.
func (s *server) watchFlights(dir string, a *thermal.Analyzer) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err = watcher.Add(dir); err != nil {
		return err
	}
	for {
		select {
		case <-interrupt.Channel:
			return nil
		case err = <-watcher.Errors:
			return err
		case ev := <-watcher.Events:
			if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !isImagery(ev.Name) {
				continue
			}
			s.lock.Lock()
			s.stats.Events++
			s.lock.Unlock()
			f, err := ingest.ReadFile(ev.Name)
			if err != nil {
				log.Printf("%s: %s (analyzing fallback frame)", ev.Name, err)
			}
			s.publish(a.Analyze(f))
		}
	}
}

func isImagery(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tif", ".tiff", ".png":
		return true
	}
	return false
}

// analyzeNewest seeds the server with the most recent file already present.
func (s *server) analyzeNewest(dir string, a *thermal.Analyzer) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Printf("%s: %s", dir, err)
		return
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && isImagery(e.Name()) {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return
	}
	sort.Strings(names)
	p := filepath.Join(dir, names[len(names)-1])
	f, err := ingest.ReadFile(p)
	if err != nil {
		log.Printf("%s: %s (analyzing fallback frame)", p, err)
	}
	s.publish(a.Analyze(f))
}

func mainImpl() error {
	port := flag.Int("port", 8010, "http port to listen on")
	flights := flag.String("flights", "flights", "directory watched for radiometric imagery")
	reports := flag.String("reports", "reports", "report directory served at /reports/")
	demo := flag.Bool("demo", false, "serve synthetic frames instead of watching for imagery")
	verbose := flag.Bool("v", false, "verbose mode")
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}
	log.SetFlags(log.Lmicroseconds)

	if flag.NArg() != 0 {
		return fmt.Errorf("unexpected argument: %s", flag.Args())
	}

	interrupt.HandleCtrlC()

	a, err := thermal.NewAnalyzer(thermal.Default())
	if err != nil {
		return err
	}

	s := newServer()
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.root)
	mux.HandleFunc("/favicon.ico", s.still)
	mux.HandleFunc("/still.png", s.still)
	mux.HandleFunc("/still16.png", s.still16)
	mux.HandleFunc("/color.png", s.color)
	mux.HandleFunc("/analysis.json", s.analysisJSON)
	mux.Handle("/stream", s.streamHandler())
	mux.Handle("/reports/", http.StripPrefix("/reports/", http.FileServer(http.Dir(*reports))))
	fmt.Printf("Listening on %d\n", *port)
	go http.ListenAndServe(fmt.Sprintf(":%d", *port), &loghttp.Handler{Handler: mux})

	if *demo {
		go func() {
			gen := thermaltest.New(thermal.DefaultWidth, thermal.DefaultHeight)
			for !interrupt.IsSet() {
				s.publish(a.Analyze(gen.Next()))
				time.Sleep(time.Second)
			}
		}()
	} else {
		s.analyzeNewest(*flights, a)
		go func() {
			if err := s.watchFlights(*flights, a); err != nil {
				log.Printf("watch: %s", err)
			}
		}()
	}

	go func() {
		// Wake up stream clients so they can notice the interrupt.
		<-interrupt.Channel
		s.cond.Broadcast()
	}()

	for !interrupt.IsSet() {
		s.lock.Lock()
		st := s.stats
		s.lock.Unlock()
		fmt.Printf("\r%d analyzed %d fallback %d events", st.Analyzed, st.Fallbacks, st.Events)
		time.Sleep(time.Second)
	}
	fmt.Print("\n")
	return nil
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "\nquag-serve: %s.\n", err)
		os.Exit(1)
	}
}
