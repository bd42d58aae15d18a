package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultMatchesSchema(t *testing.T) {
	cfg := Default()
	for id, opt := range Options() {
		got := cfg.Value(OptionID(id))
		if opt.Kind == KindList {
			require.Empty(t, got, opt.Name)
			continue
		}
		require.Equal(t, opt.Default, got, opt.Name)
	}
	require.Equal(t, 100, cfg.MaxWidth())
	require.Equal(t, DensityTall, cfg.FnArgsLayout())
	require.Equal(t, BraceSameLineWhere, cfg.BraceStyle())
	require.Equal(t, SeparatorVertical, cfg.TrailingComma())
	require.Equal(t, WriteReplace, cfg.WriteMode())
	require.True(t, cfg.TakeSourceHints())
}

func TestSchemaIsConsistent(t *testing.T) {
	seen := map[string]bool{}
	for _, opt := range Options() {
		require.NotEmpty(t, opt.Name)
		require.False(t, seen[opt.Name], "duplicate option %s", opt.Name)
		seen[opt.Name] = true
		require.NotEmpty(t, opt.Doc, opt.Name)
		if opt.Kind == KindEnum {
			require.NotEmpty(t, opt.Variants, opt.Name)
		} else {
			require.Nil(t, opt.Variants, opt.Name)
		}
	}
	require.Len(t, seen, int(numOptions))
}

func TestFromDocumentAndFill(t *testing.T) {
	doc := `
max_width = 80
brace_style = "AlwaysNextLine"
reorder_imports = true
ignore = ["target/**", "gen/*.rs"]
`
	partial, err := FromDocument(doc)
	require.NoError(t, err)
	require.Equal(t, []string{"max_width", "brace_style", "reorder_imports", "ignore"}, partial.Keys())

	cfg := Default()
	require.NoError(t, cfg.FillFromParsed(partial))
	require.Equal(t, 80, cfg.MaxWidth())
	require.Equal(t, BraceAlwaysNextLine, cfg.BraceStyle())
	require.True(t, cfg.ReorderImports())
	require.Equal(t, []string{"target/**", "gen/*.rs"}, cfg.Ignore())
	// остальные опции не тронуты
	require.Equal(t, 4, cfg.TabSpaces())
	require.Equal(t, ControlAlwaysSameLine, cfg.ControlBraceStyle())
}

func TestFromDocumentMalformed(t *testing.T) {
	_, err := FromDocument("max_width = = 3")
	require.ErrorIs(t, err, ErrConfigParse)
}

func TestFillRejects(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		unknown bool
	}{
		{"unknown key", `no_such_option = true`, true},
		{"table", "[fmt]\nmax_width = 3", true},
		{"bool as string", `verbose = "yes"`, false},
		{"negative uint", `max_width = -1`, false},
		{"float uint", `tab_spaces = 2.5`, false},
		{"case sensitive enum", `brace_style = "alwaysnextline"`, false},
		{"list of ints", `ignore = [1, 2]`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			partial, err := FromDocument(tt.doc)
			require.NoError(t, err)
			cfg := Default()
			err = cfg.FillFromParsed(partial)
			require.ErrorIs(t, err, ErrConfigParse)
			if tt.unknown {
				require.ErrorIs(t, err, ErrUnknownOption)
			}
			require.Equal(t, Default().Fingerprint(), cfg.Fingerprint(), "config must stay untouched")
		})
	}
}

func TestOverrideValue(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.OverrideValue("hard_tabs", "true"))
	require.NoError(t, cfg.OverrideValue("max_width", "120"))
	require.NoError(t, cfg.OverrideValue("fn_args_layout", "Vertical"))
	require.NoError(t, cfg.OverrideValue("ignore", "a/*, b/**"))
	require.True(t, cfg.HardTabs())
	require.Equal(t, 120, cfg.MaxWidth())
	require.Equal(t, DensityVertical, cfg.FnArgsLayout())
	require.Equal(t, []string{"a/*", "b/**"}, cfg.Ignore())
}

func TestOverrideValueErrors(t *testing.T) {
	tests := []struct {
		key, value string
		unknown    bool
	}{
		{"nope", "1", true},
		{"hard_tabs", "True", false},
		{"hard_tabs", "1", false},
		{"max_width", "-5", false},
		{"max_width", "+5", false},
		{"max_width", "0x10", false},
		{"max_width", "", false},
		{"max_width", "99999999999", false},
		{"brace_style", "alwaysnextline", false},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			cfg := Default()
			err := cfg.OverrideValue(tt.key, tt.value)
			require.ErrorIs(t, err, ErrInvalidOverride)
			if tt.unknown {
				require.ErrorIs(t, err, ErrUnknownOption)
			}
		})
	}
}

func TestApplyOverrides(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.ApplyOverrides("ignore=a,b,max_width=80,max_width=90"))
	require.Equal(t, []string{"a", "b"}, cfg.Ignore())
	require.Equal(t, 90, cfg.MaxWidth(), "later overrides win")

	require.ErrorIs(t, Default().ApplyOverrides("novalue"), ErrInvalidOverride)
	require.NoError(t, Default().ApplyOverrides(""))
}

func TestPrintDocs(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintDocs(&buf))
	out := buf.String()

	require.Contains(t, out, "  max_width <unsigned integer>\n      Default: 100\n")
	require.Contains(t, out, "  brace_style AlwaysNextLine|PreferSameLine|SameLineWhere\n      Default: SameLineWhere\n")
	require.Contains(t, out, "  verbose <boolean>\n")
	require.Contains(t, out, "  ignore <list>\n      Default: []\n")

	// порядок объявления
	last := -1
	for _, opt := range Options() {
		i := strings.Index(out, "  "+opt.Name+" ")
		require.Greater(t, i, last, opt.Name)
		last = i
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.OverrideValue("max_width", "77"))
	require.NoError(t, cfg.OverrideValue("ignore", "x/**"))
	require.NoError(t, cfg.OverrideValue("write_mode", "Diff"))

	var buf bytes.Buffer
	require.NoError(t, cfg.Encode(&buf))
	require.Contains(t, buf.String(), "max_width = 77")

	partial, err := FromDocument(buf.String())
	require.NoError(t, err)
	back := Default()
	require.NoError(t, back.FillFromParsed(partial))
	require.Equal(t, cfg.Fingerprint(), back.Fingerprint())
	require.Equal(t, WriteDiff, back.WriteMode())
}

func TestDiscoverAndResolve(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	cfg, path, err := Resolve(nested)
	require.NoError(t, err)
	require.Empty(t, path)
	absNested, _ := filepath.Abs(nested)
	require.Equal(t, absNested, cfg.BaseDir)

	cfgPath := filepath.Join(root, ".rfmt.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("tab_spaces = 2\n"), 0o600))

	found, ok, err := Discover(nested)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, filepath.Base(cfgPath), filepath.Base(found))

	cfg, path, err = Resolve(nested)
	require.NoError(t, err)
	require.Equal(t, found, path)
	require.Equal(t, 2, cfg.TabSpaces())
	require.Equal(t, filepath.Dir(found), cfg.BaseDir)
}

func TestLoadReportsPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rfmt.toml")
	require.NoError(t, os.WriteFile(path, []byte("bogus = 1\n"), 0o600))
	_, err := Load(path)
	require.ErrorIs(t, err, ErrUnknownOption)
	require.Contains(t, err.Error(), path)
}

func TestDensityToListTactic(t *testing.T) {
	cases := []struct {
		d    Density
		n    int
		want ListTactic
	}{
		{DensityCompressed, 3, TacticMixed},
		{DensityTall, 3, TacticHorizontalVertical},
		{DensityTall, 0, TacticHorizontalVertical},
		{DensityCompressedIfEmpty, 0, TacticHorizontal},
		{DensityCompressedIfEmpty, 2, TacticHorizontalVertical},
		{DensityVertical, 1, TacticVertical},
	}
	for _, tc := range cases {
		if got := tc.d.ToListTactic(tc.n); got != tc.want {
			t.Errorf("%s.ToListTactic(%d) = %s, want %s", tc.d, tc.n, got, tc.want)
		}
	}
	if MultilineForceMulti.ToListTactic() != TacticVertical || MultilinePreferSingle.ToListTactic() != TacticHorizontalVertical {
		t.Fatal("unexpected multiline style mapping")
	}
}
