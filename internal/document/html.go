// Package document renders formatted transcript text into a standalone,
// print-friendly HTML page. The layout mirrors the page the recorder UI
// produces: brand header, title, timestamp, then the transcript body.
package document

import (
	"fmt"
	"html/template"
	"regexp"
	"strings"
	"time"
)

// headingRx marks short paragraphs ending with a colon as section headings.
var headingRx = regexp.MustCompile(`^.{1,70}:\s*$`)

var paraSplitRx = regexp.MustCompile(`\n\s*\n`)

type block struct {
	Heading bool
	Lead    bool
	Text    string
}

type docData struct {
	Title     string
	Brand     string
	Timestamp string
	Blocks    []block
}

var pageTmpl = template.Must(template.New("document").Parse(`<!doctype html>
<html lang="it">
<head>
<meta charset="utf-8"/>
<meta name="viewport" content="width=device-width,initial-scale=1"/>
<title>{{.Brand}} · {{.Title}}</title>
<style>
:root{ --ink:#111528; --muted:#51607f; --paper:#fff; --pri:#2b59ff; }
*{ box-sizing:border-box }
html,body{ height:100% }
body{
  margin:0; background: #f4f6fb; color:var(--ink);
  font-family: "Newsreader", Georgia, "Times New Roman", serif;
}
.wrapper{ max-width: 900px; margin: 28px auto; padding: 0 18px; }
.header{ display:flex; align-items:center; gap:10px; margin-bottom:14px; }
.logo{ width:18px; height:18px; border-radius:6px; background:linear-gradient(135deg,#6ea8ff,#b16eff); }
.brand{ font: 600 14px/1.2 system-ui, -apple-system, Segoe UI, Roboto, Arial; color:#33415c; letter-spacing:.2px }
.paper{
  background: var(--paper);
  border-radius: 14px;
  border: 1px solid #e5e9f5;
  box-shadow: 0 14px 45px rgba(22,30,51,.06);
  padding: 34px 40px;
}
h1{ margin:0 0 .6rem 0; font-weight:700; font-size: 22px; letter-spacing:.2px }
.meta{ margin:0 0 1.2rem 0; color:#6b7aa6; font: 500 13px/1.5 system-ui, -apple-system, Segoe UI, Roboto, Arial; }
.doc{ font-size: 20px; line-height: 1.9; letter-spacing:.15px; color:#1b243a; }
.doc p{ margin: 0 0 1.05em 0; text-indent: 1.25em; }
.doc p.lead{ text-indent: 0; font-size: 1.06em; }
.doc p.lead::first-letter{ float:left; font-size:3.1em; line-height:.86; padding-right:.08em; font-weight:600; color:#2b59ff; }
.doc h3{
  font-size: .95em; font-weight:700; letter-spacing:.3px; margin: 1.2em 0 .4em;
  text-transform: uppercase; color:#394a76; border-left:3px solid #2b59ff; padding-left:.5em;
}
@media print {
  body{ background:#fff }
  .paper{ box-shadow:none; border:none; padding: 0 }
  .header, .brand, .logo{ display:none }
}
</style>
</head>
<body>
  <div class="wrapper">
    <div class="header"><div class="logo"></div><div class="brand">{{.Brand}} · Transcription WOW</div></div>
    <div class="paper">
      <h1>{{.Title}}</h1>
      <p class="meta">{{.Timestamp}}</p>
      <div class="doc">
{{- range .Blocks}}
{{- if .Heading}}
        <h3>{{.Text}}</h3>
{{- else if .Lead}}
        <p class="lead">{{.Text}}</p>
{{- else}}
        <p>{{.Text}}</p>
{{- end}}
{{- end}}
      </div>
    </div>
  </div>
</body>
</html>
`))

// Build renders a transcript (paragraphs separated by blank lines) into a
// complete HTML document. A short paragraph ending with a colon becomes a
// section heading; the first regular paragraph is styled as the lead.
func Build(title, brand, formatted string) (string, error) {
	var blocks []block
	first := true
	for _, p := range paraSplitRx.Split(strings.TrimSpace(formatted), -1) {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if headingRx.MatchString(p) {
			blocks = append(blocks, block{Heading: true, Text: strings.TrimSuffix(p, ":")})
			continue
		}
		blocks = append(blocks, block{Lead: first, Text: p})
		first = false
	}

	data := docData{
		Title:     title,
		Brand:     brand,
		Timestamp: time.Now().Format("02 Jan 2006 · 15:04:05"),
		Blocks:    blocks,
	}

	var sb strings.Builder
	if err := pageTmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render document: %w", err)
	}
	return sb.String(), nil
}
