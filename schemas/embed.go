// Package schemas ships the packaged OIML schema definitions. The
// registry searches these last, after any workspace-local copies.
package schemas

import "embed"

//go:embed oiml.intent oiml.project oiml.plan
var FS embed.FS
