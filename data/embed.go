package data

import _ "embed"

// Bodies holds the default planet table (bodies.yaml). Angles are in degrees.
//
//go:embed bodies.yaml
var Bodies []byte
