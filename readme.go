// Package legalmoves carries the service documentation served on GET /.
package legalmoves

import _ "embed"

//go:embed README.md
var README string
