// Copyright 2024 The go-cwsi Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image/png"
	"log"
	"net/http"

	"github.com/maruel/interrupt"
	"golang.org/x/net/websocket"

	"github.com/quagsire/go-cwsi/annotate"
)

func (s *server) streamHandler() http.Handler {
	return websocket.Handler(s.stream)
}

// stream pushes each new analysis as two WebSocket frames: "I" followed by
// the base64 pseudocolor PNG, then "M" followed by the JSON summary.
func (s *server) stream(w *websocket.Conn) {
	log.Printf("websocket from %s", w.Request().RemoteAddr)
	defer w.Close()
	buf := &bytes.Buffer{}
	s.lock.Lock()
	defer s.lock.Unlock()
	seen := s.seq
	if s.analysis != nil {
		// Push the current analysis right away.
		seen--
	}
	for !interrupt.IsSet() {
		for s.seq == seen && !interrupt.IsSet() {
			s.cond.Wait()
		}
		if interrupt.IsSet() {
			return
		}
		seen = s.seq
		a := s.analysis
		s.lock.Unlock()
		// The actual I/O happens without the lock.
		buf.WriteByte('I')
		encoder := base64.NewEncoder(base64.StdEncoding, buf)
		err := png.Encode(encoder, annotate.Extrema(a))
		if err == nil {
			encoder.Close()
			_, err = w.Write(buf.Bytes())
		}
		buf.Reset()
		if err == nil {
			buf.WriteByte('M')
			if err = json.NewEncoder(buf).Encode(summarize(a)); err == nil {
				_, err = w.Write(buf.Bytes())
			}
			buf.Reset()
		}
		s.lock.Lock()
		if err != nil {
			log.Printf("websocket err: %s", err)
			return
		}
	}
}
