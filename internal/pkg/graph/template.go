package graph

import _ "embed"

// pageTemplate is the self-contained graph page. Commit and branch data are
// injected as JSON before serving; no other assets are fetched.
//
//go:embed graph.html
var pageTemplate string
