package preview

import "html/template"

var pageTemplate = template.Must(template.New("resume").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Name}} - Resume</title>
<style>
  body { font-family: Georgia, serif; max-width: 48rem; margin: 2rem auto; color: #222; line-height: 1.4; }
  header { text-align: center; border-bottom: 2px solid #333; padding-bottom: .5rem; }
  h1 { margin: 0; font-size: 2rem; }
  .contact { color: #555; font-size: .9rem; }
  h2 { border-bottom: 1px solid #999; font-size: 1.15rem; text-transform: uppercase; letter-spacing: .05em; margin-top: 1.5rem; }
  h3 { margin: .8rem 0 0; font-size: 1rem; }
  .meta { color: #666; font-style: italic; font-size: .9rem; }
  .empty { color: #999; font-style: italic; }
  ul { margin: .3rem 0; padding-left: 1.2rem; }
  .toolbar { text-align: right; }
  @media print { .toolbar { display: none; } body { margin: 0; } }
</style>
</head>
<body>
<div class="toolbar"><button onclick="window.print()">Print</button></div>
<header>
  <h1>{{.Name}}</h1>
  {{if .Contact}}<div class="contact">{{range $i, $c := .Contact}}{{if $i}} · {{end}}{{$c}}{{end}}</div>{{end}}
  {{if .Links}}<div class="contact">{{range $i, $l := .Links}}{{if $i}} · {{end}}{{$l}}{{end}}</div>{{end}}
</header>
{{range .Sections}}
<section id="{{.Kind}}">
  <h2>{{.Heading}}</h2>
  {{if not .Items}}<p class="empty">{{.EmptyText}}</p>
  {{else if .Compact}}<ul>{{range .Items}}
    <li><strong>{{.Title}}</strong>{{with .MetaLine}} ({{.}}){{end}}{{with .Summary}}: {{.}}{{end}}</li>{{end}}
  </ul>
  {{else}}{{range .Items}}
  <article>
    <h3>{{.Title}}</h3>
    {{with .MetaLine}}<div class="meta">{{.}}</div>{{end}}
    {{if not .Description.IsZero}}{{if .Description.IsList}}<ul>{{range .Description.Lines}}{{if .}}<li>{{.}}</li>{{end}}{{end}}</ul>
    {{else}}<p>{{.Description.Text}}</p>{{end}}{{end}}
    {{if .Extra}}<ul>{{range .Extra}}<li>{{.}}</li>{{end}}</ul>{{end}}
  </article>{{end}}
  {{end}}
</section>
{{end}}
</body>
</html>
`))
