// Package ansi removes terminal styling from rendered text, for saving logs
// to files and for comparing output in tests.
package ansi

import "regexp"

var escapeCodes = regexp.MustCompile("\x1b\\[[0-9;?]*[ -/]*[@-~]")

func Strip(s string) string {
	return escapeCodes.ReplaceAllString(s, "")
}
