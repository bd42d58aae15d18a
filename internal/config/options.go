package config

// Kind: тип значения опции.
type Kind uint8

const (
	KindBool Kind = iota
	KindUint
	KindString
	KindList
	KindEnum
)

// Hint returns the value placeholder shown by PrintDocs.
func (k Kind) Hint(variants []string) string {
	switch k {
	case KindBool:
		return "<boolean>"
	case KindUint:
		return "<unsigned integer>"
	case KindString:
		return "<string>"
	case KindList:
		return "<list>"
	default:
		return joinVariants(variants)
	}
}

// OptionID индексирует schema; порядок совпадает с порядком объявления.
type OptionID int

const (
	OptVerbose OptionID = iota
	OptSkipChildren
	OptMaxWidth
	OptIdealWidth
	OptTabSpaces
	OptFnCallWidth
	OptStructLitWidth
	OptNewlineStyle
	OptBraceStyle
	OptControlBraceStyle
	OptElseIfBraceStyle
	OptIndentStyle
	OptFnArgsLayout
	OptFnReturnIndent
	OptFnGenericsSpace
	OptFnSingleLine
	OptFnEmptySingleLine
	OptImplEmptySingleLine
	OptWhereSingleLine
	OptTypePunctuationDensity
	OptSpaceBeforeColon
	OptSpaceAfterColon
	OptSpacesAroundRanges
	OptBinopSeparator
	OptTrailingComma
	OptStructLitMultilineStyle
	OptImportsLayout
	OptReorderImports
	OptReorderImportedNames
	OptReorderImportsOpinionated
	OptMergeImports
	OptUnnestImports
	OptForceExplicitAbi
	OptChainsOverflowLast
	OptSingleLineIfElse
	OptMatchBlockTrailingComma
	OptMatchWildcardTrailingComma
	OptWrapMatchArms
	OptFormatStrings
	OptForceFormatStrings
	OptTakeSourceHints
	OptHardTabs
	OptWrapComments
	OptNormalizeComments
	OptBlankLinesUpperBound
	OptReportTodo
	OptReportFixme
	OptErrorOnUnformatted
	OptHideParseErrors
	OptColor
	OptWriteMode
	OptIgnore

	numOptions
)

// Option: одна строка декларативной схемы.
type Option struct {
	Name     string
	Kind     Kind
	Variants []string // только для KindEnum
	Default  string   // в том же виде, что и значение для OverrideValue
	Doc      string
}

var (
	newlineStyles      = []string{"Unix", "Windows", "Native"}
	braceStyles        = []string{"AlwaysNextLine", "PreferSameLine", "SameLineWhere"}
	controlBraceStyles = []string{"AlwaysSameLine", "AlwaysNextLine"}
	elseIfBraceStyles  = []string{"AlwaysSameLine", "ClosingNextLine", "AlwaysNextLine"}
	indentStyles       = []string{"Block", "Visual"}
	densities          = []string{"Compressed", "Tall", "CompressedIfEmpty", "Vertical"}
	returnIndents      = []string{"WithArgs", "WithWhereClause"}
	genericsSpaces     = []string{"None", "OnlyBefore", "OnlyAfter", "BeforeAndAfter"}
	typeDensities      = []string{"Compressed", "Wide"}
	separatorPlaces    = []string{"Front", "Back"}
	separatorTactics   = []string{"Always", "Never", "Vertical"}
	multilineStyles    = []string{"PreferSingle", "ForceMulti"}
	listTactics        = []string{"Horizontal", "Vertical", "HorizontalVertical", "Mixed"}
	reportTactics      = []string{"Always", "Unnumbered", "Never"}
	colorModes         = []string{"Auto", "Always", "Never"}
	writeModes         = []string{"Replace", "Overwrite", "Display", "Diff", "Coverage", "Plain", "Checkstyle"}
)

var schema = [numOptions]Option{
	OptVerbose:                    {"verbose", KindBool, nil, "false", "Use verbose output"},
	OptSkipChildren:               {"skip_children", KindBool, nil, "false", "Don't reformat out of line modules"},
	OptMaxWidth:                   {"max_width", KindUint, nil, "100", "Maximum width of each line"},
	OptIdealWidth:                 {"ideal_width", KindUint, nil, "80", "Ideal width of each line (only used for comments)"},
	OptTabSpaces:                  {"tab_spaces", KindUint, nil, "4", "Number of spaces per tab"},
	OptFnCallWidth:                {"fn_call_width", KindUint, nil, "60", "Maximum width of the args of a function call before falling back to vertical formatting"},
	OptStructLitWidth:             {"struct_lit_width", KindUint, nil, "18", "Maximum width in the body of a struct lit before falling back to vertical formatting"},
	OptNewlineStyle:               {"newline_style", KindEnum, newlineStyles, "Unix", "Unix or Windows line endings"},
	OptBraceStyle:                 {"brace_style", KindEnum, braceStyles, "SameLineWhere", "Brace style for functions and items"},
	OptControlBraceStyle:          {"control_brace_style", KindEnum, controlBraceStyles, "AlwaysSameLine", "Brace style for control flow constructs"},
	OptElseIfBraceStyle:           {"else_if_brace_style", KindEnum, elseIfBraceStyles, "AlwaysSameLine", "Brace style for if, else if, and else constructs"},
	OptIndentStyle:                {"indent_style", KindEnum, indentStyles, "Block", "Indent of continuation lines: Block or Visual"},
	OptFnArgsLayout:               {"fn_args_layout", KindEnum, densities, "Tall", "Layout of function arguments and tuple structs"},
	OptFnReturnIndent:             {"fn_return_indent", KindEnum, returnIndents, "WithArgs", "Location of return type"},
	OptFnGenericsSpace:            {"fn_generics_space", KindEnum, genericsSpaces, "None", "Spaces around the generic parameter list of a function"},
	OptFnSingleLine:               {"fn_single_line", KindBool, nil, "false", "Put single-expression functions on a single line"},
	OptFnEmptySingleLine:          {"fn_empty_single_line", KindBool, nil, "true", "Don't break empty functions"},
	OptImplEmptySingleLine:        {"impl_empty_single_line", KindBool, nil, "true", "Put empty-body implementations on a single line"},
	OptWhereSingleLine:            {"where_single_line", KindBool, nil, "false", "Put a where clause with a single predicate on a single line"},
	OptTypePunctuationDensity:     {"type_punctuation_density", KindEnum, typeDensities, "Wide", "Determines if '+' or '=' are wrapped in spaces in the punctuation of types"},
	OptSpaceBeforeColon:           {"space_before_colon", KindBool, nil, "false", "Put a space before the colon in type annotations"},
	OptSpaceAfterColon:            {"space_after_colon", KindBool, nil, "true", "Put a space after the colon in type annotations"},
	OptSpacesAroundRanges:         {"spaces_around_ranges", KindBool, nil, "false", "Put spaces around the .. and ..= range operators"},
	OptBinopSeparator:             {"binop_separator", KindEnum, separatorPlaces, "Front", "Where to put a binary operator when a binary expression goes multiline"},
	OptTrailingComma:              {"trailing_comma", KindEnum, separatorTactics, "Vertical", "If there is a trailing comma on literal structs, arrays and lists"},
	OptStructLitMultilineStyle:    {"struct_lit_multiline_style", KindEnum, multilineStyles, "PreferSingle", "Multiline style on literal structs"},
	OptImportsLayout:              {"imports_layout", KindEnum, listTactics, "Mixed", "Layout of the names inside use braces"},
	OptReorderImports:             {"reorder_imports", KindBool, nil, "false", "Reorder consecutive use items alphabetically"},
	OptReorderImportedNames:       {"reorder_imported_names", KindBool, nil, "false", "Reorder lists of names in use items alphabetically"},
	OptReorderImportsOpinionated:  {"reorder_imports_opinionated", KindBool, nil, "false", "Group use items into std, external and local blocks"},
	OptMergeImports:               {"merge_imports", KindBool, nil, "false", "Merge sibling use items that share a path prefix"},
	OptUnnestImports:              {"unnest_imports", KindBool, nil, "false", "Flatten nested use groups into a single list"},
	OptForceExplicitAbi:           {"force_explicit_abi", KindBool, nil, "true", "Always print the abi for extern items"},
	OptChainsOverflowLast:         {"chains_overflow_last", KindBool, nil, "true", "Allow the last call in a method chain to break the line"},
	OptSingleLineIfElse:           {"single_line_if_else", KindBool, nil, "false", "Put else on the same line as the closing brace of if when both branches are simple"},
	OptMatchBlockTrailingComma:    {"match_block_trailing_comma", KindBool, nil, "false", "Put a trailing comma after a block based match arm (non-block arms are not affected)"},
	OptMatchWildcardTrailingComma: {"match_wildcard_trailing_comma", KindBool, nil, "true", "Put a trailing comma after a wildcard arm"},
	OptWrapMatchArms:              {"wrap_match_arms", KindBool, nil, "true", "Wrap multiline match arms in blocks"},
	OptFormatStrings:              {"format_strings", KindBool, nil, "false", "Format string literals where necessary"},
	OptForceFormatStrings:         {"force_format_strings", KindBool, nil, "false", "Always format string literals"},
	OptTakeSourceHints:            {"take_source_hints", KindBool, nil, "true", "Retain some formatting characteristics from the source code"},
	OptHardTabs:                   {"hard_tabs", KindBool, nil, "false", "Use tab characters for indentation, spaces for alignment"},
	OptWrapComments:               {"wrap_comments", KindBool, nil, "false", "Break comments to fit on the line"},
	OptNormalizeComments:          {"normalize_comments", KindBool, nil, "true", "Convert /* */ comments to // comments where possible"},
	OptBlankLinesUpperBound:       {"blank_lines_upper_bound", KindUint, nil, "1", "Maximum number of blank lines which can be put between items"},
	OptReportTodo:                 {"report_todo", KindEnum, reportTactics, "Never", "Report all, none or unnumbered occurrences of TODO in source file comments"},
	OptReportFixme:                {"report_fixme", KindEnum, reportTactics, "Never", "Report all, none or unnumbered occurrences of FIXME in source file comments"},
	OptErrorOnUnformatted:         {"error_on_unformatted", KindBool, nil, "false", "Error if unable to get all comment lines within max_width or if a construct is left verbatim"},
	OptHideParseErrors:            {"hide_parse_errors", KindBool, nil, "false", "Hide errors from the parser"},
	OptColor:                      {"color", KindEnum, colorModes, "Auto", "What Color option to use when none is supplied: Always, Never, Auto"},
	OptWriteMode:                  {"write_mode", KindEnum, writeModes, "Replace", "What Write Mode to use when none is supplied: Replace, Overwrite, Display, Diff, Coverage, Plain, Checkstyle"},
	OptIgnore:                     {"ignore", KindList, nil, "", "Skip formatting files matching the given glob patterns (relative to the config file)"},
}

var byName = func() map[string]OptionID {
	m := make(map[string]OptionID, numOptions)
	for id, opt := range schema {
		m[opt.Name] = OptionID(id)
	}
	return m
}()

// Options returns the schema in declaration order.
func Options() []Option {
	return schema[:]
}

// Lookup ищет опцию по имени.
func Lookup(name string) (OptionID, bool) {
	id, ok := byName[name]
	return id, ok
}

func (id OptionID) Option() Option {
	return schema[id]
}

func (id OptionID) String() string {
	return schema[id].Name
}
