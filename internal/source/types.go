package source

// FileID indexes a File inside its FileSet.
type FileID uint32

// FileFlags records where the content came from and what Normalize changed.
type FileFlags uint8

const (
	FileVirtual FileFlags = 1 << iota // из памяти: stdin, тесты
	FileHadBOM
	FileNormalizedCRLF
)

func (f FileFlags) Has(flag FileFlags) bool {
	return f&flag != 0
}

// File is one loaded source. Content never starts with a BOM and uses \n
// line endings; LineIdx holds the offset of every '\n'.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Flags   FileFlags
}

// LineCol is a 1-based position.
type LineCol struct {
	Line uint32
	Col  uint32
}
