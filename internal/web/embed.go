package web

import "embed"

// Templates and static assets ship inside the binary so the server has no
// runtime file dependencies.

//go:embed templates/*.tmpl
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS
