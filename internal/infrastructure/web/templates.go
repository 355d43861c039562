package web

const pageTemplates = `
{{define "head"}}
<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Food &amp; Bev Legal Guru</title>
<style>
  body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif;
         max-width: 960px; margin: 0 auto; padding: 1rem 2rem; color: #222; }
  table { width: 100%; border-collapse: collapse; margin-top: 0.5rem; }
  th, td { text-align: left; padding: 0.5rem 0.6rem; border-bottom: 1px solid #e0d8cc; }
  .badge { display: inline-block; padding: 0.15rem 0.5rem; border-radius: 3px;
           font-size: 0.8rem; color: #fff; background: #555; }
  .badge-federal { background: #2b4a7c; }
  .badge-state { background: #4a6741; }
  .badge-local { background: #8b4513; }
  .msg { padding: 0.5rem 1rem; background: #e8f0e0; border: 1px solid #b7c9a8; }
  pre { background: #f0ebe0; padding: 0.75rem; overflow: auto; max-height: 400px; }
  nav a { margin-right: 1.2rem; }
</style>
</head>
<body>
<h1>Food &amp; Bev Legal Guru</h1>
<nav><a href="/">Home</a><a href="/fetch">Fetch Updates</a></nav>
{{end}}

{{define "foot"}}
</body>
</html>
{{end}}

{{define "index"}}
{{template "head"}}
{{if .Message}}<div class="msg">{{.Message}}</div>{{end}}
<form class="search-bar" method="get" action="/">
  {{if .Level}}<input type="hidden" name="level" value="{{.Level}}">{{end}}
  <input type="text" name="q" value="{{.Query}}" placeholder="Search title or description">
  <button type="submit">Search</button>
</form>
<div class="filters">
  <a href="/?q={{.Query}}">All</a>
  {{$q := .Query}}
  {{range .Levels}}<a href="/?level={{.}}&amp;q={{$q}}">{{.}}</a> {{end}}
</div>
<table>
<tr><th>Date</th><th>Level</th><th>Title</th></tr>
{{range .Records}}
<tr>
  <td>{{if .PublishedDate}}{{.PublishedDate}}{{else}}&mdash;{{end}}</td>
  <td><span class="badge badge-{{.Level}}">{{.Level}}</span></td>
  <td><a href="/record/{{.ID}}">{{if .Title}}{{.Title}}{{else}}{{.ID}}{{end}}</a></td>
</tr>
{{else}}
<tr><td colspan="3">No records found.</td></tr>
{{end}}
</table>
<div class="pagination">
  {{if gt .Page 1}}<a href="/?page={{.PrevPage}}&amp;level={{.Level}}&amp;q={{.Query}}">&laquo; Previous</a>{{end}}
  <span>Page {{.Page}}</span>
  {{if .HasNext}}<a href="/?page={{.NextPage}}&amp;level={{.Level}}&amp;q={{.Query}}">Next &raquo;</a>{{end}}
</div>
{{template "foot"}}
{{end}}

{{define "detail"}}
{{template "head"}}
<p><a href="/">&laquo; Back to list</a></p>
<h2>{{if .Title}}{{.Title}}{{else}}{{.ID}}{{end}}</h2>
<table class="detail-table">
<tr><td>ID</td><td>{{.ID}}</td></tr>
<tr><td>Level</td><td><span class="badge badge-{{.Level}}">{{.Level}}</span></td></tr>
<tr><td>Published</td><td>{{.PublishedDate}}</td></tr>
<tr><td>Description</td><td>{{.Description}}</td></tr>
<tr><td>Source URL</td><td>{{if .SourceURL}}<a href="{{.SourceURL}}">{{.SourceURL}}</a>{{else}}&mdash;{{end}}</td></tr>
<tr><td>Source Modified</td><td>{{.SourceLastModified}}</td></tr>
<tr><td>Last Updated</td><td>{{.LastUpdated}}</td></tr>
</table>
<h3>Full Text</h3>
<pre>{{if .FullText}}{{.FullText}}{{else}}(none){{end}}</pre>
{{template "foot"}}
{{end}}

{{define "fetch"}}
{{template "head"}}
<h2>Fetch Updates</h2>
<p>Trigger a fresh data fetch from all configured API sources.</p>
<form method="post" action="/fetch">
  <button class="btn" type="submit">Fetch Updates Now</button>
</form>
{{template "foot"}}
{{end}}
`
