package exiftool

import _ "embed"

//go:embed demo.json
var demoJSON []byte
