// Package schemas embeds the JSON Schemas for the records the system emits.
package schemas

import "embed"

// Profile and GapReport schema file names.
const (
	ProfileSchema   = "profile.schema.json"
	GapReportSchema = "gap_report.schema.json"
)

// FS holds every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS
