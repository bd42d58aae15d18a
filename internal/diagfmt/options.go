package diagfmt

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto chooses relative or absolute path automatically.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color    bool
	PathMode PathMode
	// BaseDir: база для относительных путей; пусто: FileSet.BaseDir().
	BaseDir   string
	ShowNotes bool
}

// DiffOpts configures the Diff write mode output.
type DiffOpts struct {
	Color   bool
	Context int
}
