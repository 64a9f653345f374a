// Copyright 2026 The Planstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"io"

	"github.com/google/safehtml/template"

	"github.com/planlab/planstat/planreport"
)

var htmlTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
table.planstat { border-collapse: collapse; margin-bottom: 2em; }
table.planstat td, table.planstat th { padding: 0 0.5em; text-align: right; }
table.planstat td:first-child, table.planstat th:first-child { text-align: left; }
table.planstat td.best { font-weight: bold; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{- range .Tables}}
<h2>{{.Heading}}</h2>
<table class="planstat">
<tr><th>{{.RowHeader}}{{range .Columns}}<th>{{.}}{{end}}
{{- range .Rows}}
<tr><td>{{.Name}}{{range .Cells}}<td{{if .Best}} class="best"{{end}}>{{.Text}}{{end}}
{{- end}}
</table>
{{- end}}
</body>
</html>
`))

type htmlTable struct {
	*planreport.Table
	Heading string
}

// HTML writes tables as a standalone HTML page. The best value of
// each row is set in bold.
func HTML(w io.Writer, title string, tables []*planreport.Table) error {
	data := struct {
		Title  string
		Tables []htmlTable
	}{Title: title}
	for _, t := range tables {
		data.Tables = append(data.Tables, htmlTable{t, heading(t)})
	}
	return htmlTemplate.Execute(w, data)
}
