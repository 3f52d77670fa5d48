package web

import _ "embed"

// IndexHTML is the upload page served at "/".
//
//go:embed index.html
var IndexHTML []byte
