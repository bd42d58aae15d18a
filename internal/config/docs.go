package config

import (
	"bytes"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/lipgloss"
)

// PrintDocs пишет справку по всем опциям в порядке объявления.
// Стили применяются, только если w указывает на терминал.
func PrintDocs(w io.Writer) error {
	r := lipgloss.NewRenderer(w)
	nameStyle := r.NewStyle().Bold(true)
	hintStyle := r.NewStyle().Faint(true)
	defStyle := r.NewStyle().Foreground(lipgloss.Color("6"))

	if _, err := fmt.Fprintln(w, "Configuration Options:"); err != nil {
		return err
	}
	for _, opt := range schema {
		def := opt.Default
		if opt.Kind == KindList {
			def = "[]"
		}
		_, err := fmt.Fprintf(w, "  %s %s\n      Default: %s\n      %s\n",
			nameStyle.Render(opt.Name),
			hintStyle.Render(opt.Kind.Hint(opt.Variants)),
			defStyle.Render(def),
			opt.Doc,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// Encode пишет текущие значения как TOML, по одной опции в строке.
// Вывод детерминирован и годится как отпечаток конфигурации для кеша.
func (c *Config) Encode(w io.Writer) error {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	for id, opt := range schema {
		v := c.values[id]
		var raw any
		switch opt.Kind {
		case KindBool:
			raw = v.b
		case KindUint:
			raw = v.n
		case KindString:
			raw = v.s
		case KindList:
			list := v.list
			if list == nil {
				list = []string{}
			}
			raw = list
		default:
			raw = opt.Variants[v.n]
		}
		if err := enc.Encode(map[string]any{opt.Name: raw}); err != nil {
			return fmt.Errorf("encode %s: %w", opt.Name, err)
		}
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// Fingerprint: стабильное текстовое представление конфигурации.
func (c *Config) Fingerprint() string {
	var buf bytes.Buffer
	_ = c.Encode(&buf)
	return buf.String()
}
