package config

import "strings"

type NewlineStyle uint8

const (
	NewlineUnix NewlineStyle = iota
	NewlineWindows
	NewlineNative
)

func (s NewlineStyle) String() string { return newlineStyles[s] }

type BraceStyle uint8

const (
	BraceAlwaysNextLine BraceStyle = iota
	BracePreferSameLine
	// BraceSameLineWhere: на той же строке, если where-клауза не вынудила перенос.
	BraceSameLineWhere
)

func (s BraceStyle) String() string { return braceStyles[s] }

type ControlBraceStyle uint8

const (
	ControlAlwaysSameLine ControlBraceStyle = iota
	ControlAlwaysNextLine
)

func (s ControlBraceStyle) String() string { return controlBraceStyles[s] }

type ElseIfBraceStyle uint8

const (
	// ElseIfAlwaysSameLine: } else {
	ElseIfAlwaysSameLine ElseIfBraceStyle = iota
	// ElseIfClosingNextLine: }\nelse {
	ElseIfClosingNextLine
	// ElseIfAlwaysNextLine: }\nelse\n{
	ElseIfAlwaysNextLine
)

func (s ElseIfBraceStyle) String() string { return elseIfBraceStyles[s] }

type IndentStyle uint8

const (
	IndentBlock IndentStyle = iota
	IndentVisual
)

func (s IndentStyle) String() string { return indentStyles[s] }

// Density: насколько плотно раскладывать список.
type Density uint8

const (
	DensityCompressed Density = iota
	DensityTall
	DensityCompressedIfEmpty
	DensityVertical
)

func (d Density) String() string { return densities[d] }

// ToListTactic maps a density onto a list tactic for a list of n items.
func (d Density) ToListTactic(n int) ListTactic {
	switch d {
	case DensityCompressed:
		return TacticMixed
	case DensityCompressedIfEmpty:
		if n == 0 {
			return TacticHorizontal
		}
		return TacticHorizontalVertical
	case DensityVertical:
		return TacticVertical
	default:
		return TacticHorizontalVertical
	}
}

type ReturnIndent uint8

const (
	ReturnWithArgs ReturnIndent = iota
	ReturnWithWhereClause
)

func (r ReturnIndent) String() string { return returnIndents[r] }

type GenericsSpace uint8

const (
	SpaceNone GenericsSpace = iota
	SpaceOnlyBefore
	SpaceOnlyAfter
	SpaceBeforeAndAfter
)

func (s GenericsSpace) String() string { return genericsSpaces[s] }

// Before reports whether a space goes between the fn name and '<'.
func (s GenericsSpace) Before() bool { return s == SpaceOnlyBefore || s == SpaceBeforeAndAfter }

// After reports whether a space goes between '>' and '('.
func (s GenericsSpace) After() bool { return s == SpaceOnlyAfter || s == SpaceBeforeAndAfter }

type TypeDensity uint8

const (
	TypeDensityCompressed TypeDensity = iota
	TypeDensityWide
)

func (d TypeDensity) String() string { return typeDensities[d] }

// SeparatorPlace: где стоит оператор при переносе бинарного выражения.
type SeparatorPlace uint8

const (
	SeparatorFront SeparatorPlace = iota
	SeparatorBack
)

func (s SeparatorPlace) String() string { return separatorPlaces[s] }

// SeparatorTactic: политика завершающего разделителя списка.
type SeparatorTactic uint8

const (
	SeparatorAlways SeparatorTactic = iota
	SeparatorNever
	SeparatorVertical
)

func (s SeparatorTactic) String() string { return separatorTactics[s] }

type MultilineStyle uint8

const (
	MultilinePreferSingle MultilineStyle = iota
	MultilineForceMulti
)

func (s MultilineStyle) String() string { return multilineStyles[s] }

// ToListTactic: PreferSingle ложится в строку, если влезает.
func (s MultilineStyle) ToListTactic() ListTactic {
	if s == MultilineForceMulti {
		return TacticVertical
	}
	return TacticHorizontalVertical
}

// ListTactic: раскладка списка.
type ListTactic uint8

const (
	TacticHorizontal ListTactic = iota
	TacticVertical
	// TacticHorizontalVertical: горизонтально, если влезает, иначе вертикально.
	TacticHorizontalVertical
	TacticMixed
)

func (t ListTactic) String() string { return listTactics[t] }

type ReportTactic uint8

const (
	ReportAlways ReportTactic = iota
	ReportUnnumbered
	ReportNever
)

func (r ReportTactic) String() string { return reportTactics[r] }

type ColorMode uint8

const (
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

func (c ColorMode) String() string { return colorModes[c] }

type WriteMode uint8

const (
	WriteReplace WriteMode = iota
	WriteOverwrite
	WriteDisplay
	WriteDiff
	WriteCoverage
	WritePlain
	WriteCheckstyle
)

func (m WriteMode) String() string { return writeModes[m] }

// ParseWriteMode is used by the command line --write-mode flag.
func ParseWriteMode(s string) (WriteMode, bool) {
	i := variantIndex(writeModes, s)
	if i < 0 {
		return 0, false
	}
	return WriteMode(i), true
}

func variantIndex(variants []string, s string) int {
	for i, v := range variants {
		if v == s {
			return i
		}
	}
	return -1
}

func joinVariants(variants []string) string {
	return strings.Join(variants, "|")
}
