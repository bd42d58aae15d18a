package config

import (
	"strconv"
	"strings"
)

// value: хранимое значение опции; enum лежит в n как индекс варианта.
type value struct {
	b    bool
	n    int
	s    string
	list []string
}

// Config: набор значений всех опций. После Fill/Override только читается.
type Config struct {
	values [numOptions]value
	// BaseDir: каталог конфиг-файла; от него считаются шаблоны ignore.
	BaseDir string
}

// Default returns the fully populated default configuration.
func Default() *Config {
	c := &Config{}
	for id, opt := range schema {
		v, err := parseValue(opt, opt.Default)
		if err != nil {
			panic("config: bad default for " + opt.Name + ": " + err.Error())
		}
		c.values[id] = v
	}
	return c
}

// Value renders the current value the way OverrideValue accepts it.
func (c *Config) Value(id OptionID) string {
	opt := schema[id]
	v := c.values[id]
	switch opt.Kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindUint:
		return strconv.Itoa(v.n)
	case KindString:
		return v.s
	case KindList:
		return strings.Join(v.list, ",")
	default:
		return opt.Variants[v.n]
	}
}

func (c *Config) flag(id OptionID) bool { return c.values[id].b }
func (c *Config) num(id OptionID) int   { return c.values[id].n }

func (c *Config) Verbose() bool                { return c.flag(OptVerbose) }
func (c *Config) SkipChildren() bool           { return c.flag(OptSkipChildren) }
func (c *Config) MaxWidth() int                { return c.num(OptMaxWidth) }
func (c *Config) IdealWidth() int              { return c.num(OptIdealWidth) }
func (c *Config) TabSpaces() int               { return c.num(OptTabSpaces) }
func (c *Config) FnCallWidth() int             { return c.num(OptFnCallWidth) }
func (c *Config) StructLitWidth() int          { return c.num(OptStructLitWidth) }
func (c *Config) NewlineStyle() NewlineStyle   { return NewlineStyle(c.num(OptNewlineStyle)) }
func (c *Config) BraceStyle() BraceStyle       { return BraceStyle(c.num(OptBraceStyle)) }
func (c *Config) IndentStyle() IndentStyle     { return IndentStyle(c.num(OptIndentStyle)) }
func (c *Config) FnArgsLayout() Density        { return Density(c.num(OptFnArgsLayout)) }
func (c *Config) FnReturnIndent() ReturnIndent { return ReturnIndent(c.num(OptFnReturnIndent)) }
func (c *Config) FnGenericsSpace() GenericsSpace {
	return GenericsSpace(c.num(OptFnGenericsSpace))
}
func (c *Config) ControlBraceStyle() ControlBraceStyle {
	return ControlBraceStyle(c.num(OptControlBraceStyle))
}
func (c *Config) ElseIfBraceStyle() ElseIfBraceStyle {
	return ElseIfBraceStyle(c.num(OptElseIfBraceStyle))
}
func (c *Config) FnSingleLine() bool        { return c.flag(OptFnSingleLine) }
func (c *Config) FnEmptySingleLine() bool   { return c.flag(OptFnEmptySingleLine) }
func (c *Config) ImplEmptySingleLine() bool { return c.flag(OptImplEmptySingleLine) }
func (c *Config) WhereSingleLine() bool     { return c.flag(OptWhereSingleLine) }
func (c *Config) TypePunctuationDensity() TypeDensity {
	return TypeDensity(c.num(OptTypePunctuationDensity))
}
func (c *Config) SpaceBeforeColon() bool   { return c.flag(OptSpaceBeforeColon) }
func (c *Config) SpaceAfterColon() bool    { return c.flag(OptSpaceAfterColon) }
func (c *Config) SpacesAroundRanges() bool { return c.flag(OptSpacesAroundRanges) }
func (c *Config) BinopSeparator() SeparatorPlace {
	return SeparatorPlace(c.num(OptBinopSeparator))
}
func (c *Config) TrailingComma() SeparatorTactic {
	return SeparatorTactic(c.num(OptTrailingComma))
}
func (c *Config) StructLitMultilineStyle() MultilineStyle {
	return MultilineStyle(c.num(OptStructLitMultilineStyle))
}
func (c *Config) ImportsLayout() ListTactic       { return ListTactic(c.num(OptImportsLayout)) }
func (c *Config) ReorderImports() bool            { return c.flag(OptReorderImports) }
func (c *Config) ReorderImportedNames() bool      { return c.flag(OptReorderImportedNames) }
func (c *Config) ReorderImportsOpinionated() bool { return c.flag(OptReorderImportsOpinionated) }
func (c *Config) MergeImports() bool              { return c.flag(OptMergeImports) }
func (c *Config) UnnestImports() bool             { return c.flag(OptUnnestImports) }
func (c *Config) ForceExplicitAbi() bool          { return c.flag(OptForceExplicitAbi) }
func (c *Config) ChainsOverflowLast() bool        { return c.flag(OptChainsOverflowLast) }
func (c *Config) SingleLineIfElse() bool          { return c.flag(OptSingleLineIfElse) }
func (c *Config) MatchBlockTrailingComma() bool   { return c.flag(OptMatchBlockTrailingComma) }
func (c *Config) MatchWildcardTrailingComma() bool {
	return c.flag(OptMatchWildcardTrailingComma)
}
func (c *Config) WrapMatchArms() bool       { return c.flag(OptWrapMatchArms) }
func (c *Config) FormatStrings() bool       { return c.flag(OptFormatStrings) }
func (c *Config) ForceFormatStrings() bool  { return c.flag(OptForceFormatStrings) }
func (c *Config) TakeSourceHints() bool     { return c.flag(OptTakeSourceHints) }
func (c *Config) HardTabs() bool            { return c.flag(OptHardTabs) }
func (c *Config) WrapComments() bool        { return c.flag(OptWrapComments) }
func (c *Config) NormalizeComments() bool   { return c.flag(OptNormalizeComments) }
func (c *Config) BlankLinesUpperBound() int { return c.num(OptBlankLinesUpperBound) }
func (c *Config) ReportTodo() ReportTactic  { return ReportTactic(c.num(OptReportTodo)) }
func (c *Config) ReportFixme() ReportTactic { return ReportTactic(c.num(OptReportFixme)) }
func (c *Config) ErrorOnUnformatted() bool  { return c.flag(OptErrorOnUnformatted) }
func (c *Config) HideParseErrors() bool     { return c.flag(OptHideParseErrors) }
func (c *Config) Color() ColorMode          { return ColorMode(c.num(OptColor)) }
func (c *Config) WriteMode() WriteMode      { return WriteMode(c.num(OptWriteMode)) }

// Ignore returns a copy of the ignore patterns.
func (c *Config) Ignore() []string {
	return append([]string(nil), c.values[OptIgnore].list...)
}
