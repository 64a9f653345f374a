// Copyright 2026 The Planstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package props

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// A SyntaxError reports a malformed entry in a properties file.
type SyntaxError struct {
	FileName string
	RunID    string // "" if the error is not specific to a run
	Msg      string
}

func (e *SyntaxError) Error() string {
	if e.RunID == "" {
		return fmt.Sprintf("%s: %s", e.FileName, e.Msg)
	}
	return fmt.Sprintf("%s: run %q: %s", e.FileName, e.RunID, e.Msg)
}

// Read decodes a properties file from r. fileName is used in error
// messages; it is purely diagnostic.
func Read(r io.Reader, fileName string) (Store, error) {
	if fileName == "" {
		fileName = "<unknown>"
	}
	var raw map[string]json.RawMessage
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, &SyntaxError{fileName, "", err.Error()}
	}
	s := make(Store, len(raw))
	for id, msg := range raw {
		var run Run
		if err := json.Unmarshal(msg, &run); err != nil || run == nil {
			return nil, &SyntaxError{fileName, id, "run is not a JSON object"}
		}
		s[id] = run
	}
	return s, nil
}

// Files reads runs from a sequence of properties files and merges them
// into a single Store.
type Files struct {
	// Paths is the list of file names to read in. The path "-"
	// reads standard input.
	Paths []string
}

// Load reads every file in f.Paths. A run identifier that appears in
// more than one file is an error.
func (f *Files) Load() (Store, error) {
	all := make(Store)
	origin := make(map[string]string)
	for _, path := range f.Paths {
		s, err := f.read(path)
		if err != nil {
			return nil, err
		}
		for id, run := range s {
			if prev, ok := origin[id]; ok {
				return nil, fmt.Errorf("run %q appears in both %s and %s", id, prev, path)
			}
			origin[id] = path
			all[id] = run
		}
	}
	return all, nil
}

func (f *Files) read(path string) (Store, error) {
	if path == "-" {
		return Read(os.Stdin, "<stdin>")
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Read(file, path)
}
