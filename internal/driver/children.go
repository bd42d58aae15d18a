package driver

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"rfmt/internal/ast"
	"rfmt/internal/source"
)

// childModules returns the existing files of the `mod x;` declarations in
// the parsed file, inline modules included, in source order.
//
// `mod x;` in a crate root or in a/mod.rs is a/x.rs or a/x/mod.rs; in any
// other a/foo.rs it is looked up under a/foo/. #[path = ".."] wins.
func childModules(sf *source.File, b *ast.Builder, fid ast.FileID, root bool) []string {
	f := b.Files.Get(fid)
	if f == nil {
		return nil
	}
	dir := moduleDir(sf.Path, root)
	var out []string
	var walk func(items []ast.ItemID, dir string)
	walk = func(items []ast.ItemID, dir string) {
		for _, id := range items {
			it := b.Items.Get(id)
			if it == nil {
				continue
			}
			m, ok := b.Items.Mod(id)
			if !ok {
				continue
			}
			explicit := pathAttr(it.Attrs)
			if m.Inline {
				sub := filepath.Join(dir, m.Name.Name)
				if explicit != "" {
					sub = filepath.Join(dir, explicit)
				}
				walk(m.Items, sub)
				continue
			}
			if p := resolveModule(dir, m.Name.Name, explicit); p != "" {
				out = append(out, p)
			}
		}
	}
	walk(f.Items, dir)
	return out
}

func moduleDir(path string, root bool) string {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	if root || base == "mod.rs" {
		return dir
	}
	return filepath.Join(dir, strings.TrimSuffix(base, filepath.Ext(base)))
}

func resolveModule(dir, name, explicit string) string {
	var candidates []string
	if explicit != "" {
		candidates = []string{filepath.Join(dir, explicit)}
	} else {
		candidates = []string{
			filepath.Join(dir, name+".rs"),
			filepath.Join(dir, name, "mod.rs"),
		}
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return filepath.Clean(c)
		}
	}
	return ""
}

// pathAttr returns the value of #[path = "..."], or "".
func pathAttr(attrs []ast.Attr) string {
	for _, a := range attrs {
		key, val, ok := strings.Cut(a.Body, "=")
		if !ok || strings.TrimSpace(key) != "path" {
			continue
		}
		if s, err := strconv.Unquote(strings.TrimSpace(val)); err == nil {
			return s
		}
	}
	return ""
}
