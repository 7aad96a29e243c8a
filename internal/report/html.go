// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"io"

	"github.com/google/safehtml/template"
)

var htmlTemplate = template.Must(template.New("").Funcs(htmlFuncs).Parse(`
{{- if .Lines -}}
<table class='triplebench'>
<tr><th>dataset<th>triplestore<th>QpS<th>QMpH<th>succeeded<th>failed<th>timeouts<th>wrong
{{range .Lines -}}
<tr><td>{{.Dataset}}<td>{{.Triplestore}}<td>{{rate .MeanQPS}}<td>{{rate .QMpH}}<td>{{.Succeeded}}<td>{{.Failed}}<td>{{.Timeouts}}<td>{{.Wrong}}
{{end -}}
</table>
{{end -}}
{{- if .Index}}
<table class='triplebench index'>
<tr><th>dataset<th>triplestore<th>bytes/statement<th>1k statements/s
{{range .Index -}}
<tr><td>{{.Dataset}}<td>{{.Triplestore}}<td>{{.BytesPerStatement}}<td>{{.KStatementsPerSecond}}
{{end -}}
</table>
{{end -}}
`))

var htmlFuncs = template.FuncMap{
	"rate": formatRate,
}

// WriteHTML writes lines and the index size table as HTML tables.
// Either may be empty.
func WriteHTML(w io.Writer, lines []Line, index []IndexLine) error {
	return htmlTemplate.Execute(w, struct {
		Lines []Line
		Index []IndexLine
	}{lines, index})
}
