package version

import (
	"strings"

	"github.com/fatih/color"
)

// Version information for the rfmt CLI.
// These variables can be overridden at build time via -ldflags.

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)

	// Version is the semantic version of the CLI.
	Version = "0.3.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Colored renders Version with each numeric component in its own color.
// Anything after the patch number (a pre-release tag) stays plain.
func Colored() string {
	core, rest, _ := strings.Cut(Version, "-")
	parts := strings.SplitN(core, ".", 3)
	if len(parts) != 3 {
		return Version
	}
	out := versionMajorColor.Sprint(parts[0]) + "." + versionMinorColor.Sprint(parts[1]) + "." + versionPatchColor.Sprint(parts[2])
	if rest != "" {
		out += "-" + rest
	}
	return out
}

// String returns Version followed by the commit and build date when known.
func String() string {
	var sb strings.Builder
	sb.WriteString(Version)
	if GitCommit != "" {
		sb.WriteString(" (" + GitCommit)
		if BuildDate != "" {
			sb.WriteString(" " + BuildDate)
		}
		sb.WriteString(")")
	}
	return sb.String()
}
