package server

import (
	_ "embed"
	"net/http"
	"strings"
)

//go:embed api-docs.md
var apiDocs string

// The docs page ships the markdown to the browser and renders it there,
// keeping the binary free of a markdown engine.
const docsPage = `<!DOCTYPE html>
<html>
  <head>
    <title>regcat Course Listings API Documentation</title>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
  </head>
  <body id="content">
    <script src="https://cdn.jsdelivr.net/npm/marked/marked.min.js"></script>
    <script>
      document.getElementById('content').innerHTML = marked.parse(` + "`%s`" + `);
    </script>
  </body>
</html>`

func (s *Server) handleDocs(w http.ResponseWriter, r *http.Request) {
	escaped := strings.ReplaceAll(apiDocs, "`", "\\`")
	w.Header().Set("Content-Type", "text/html")
	w.Write([]byte(strings.Replace(docsPage, "%s", escaped, 1)))
}
