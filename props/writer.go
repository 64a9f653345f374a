// Copyright 2026 The Planstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package props

import (
	"encoding/json"
	"io"
)

// Write writes s to w as an indented properties file. Run identifiers
// and field names are emitted in sorted order.
func Write(w io.Writer, s Store) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
