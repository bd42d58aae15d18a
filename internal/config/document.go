package config

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

var (
	// ErrConfigParse: испорченный документ или значение не того типа.
	ErrConfigParse = errors.New("config parse error")
	// ErrUnknownOption: ключа нет в схеме.
	ErrUnknownOption = errors.New("unknown option")
	// ErrInvalidOverride: ошибка в --config key=value.
	ErrInvalidOverride = errors.New("invalid override")
)

// Partial: частичный набор опций из документа, в порядке появления.
// Ключи не проверяются до FillFromParsed.
type Partial struct {
	entries []partialEntry
}

type partialEntry struct {
	key string
	raw any
}

// Keys returns the top-level keys in document order.
func (p Partial) Keys() []string {
	keys := make([]string, len(p.entries))
	for i, e := range p.entries {
		keys[i] = e.key
	}
	return keys
}

// FromDocument parses a TOML document into a partial override table.
func FromDocument(text string) (Partial, error) {
	var doc map[string]any
	md, err := toml.Decode(text, &doc)
	if err != nil {
		return Partial{}, fmt.Errorf("%w: %w", ErrConfigParse, err)
	}
	var p Partial
	for _, key := range md.Keys() {
		// вложенные ключи таблиц отвергнутся вместе с самой таблицей
		if len(key) != 1 {
			continue
		}
		p.entries = append(p.entries, partialEntry{key: key[0], raw: doc[key[0]]})
	}
	return p, nil
}

// FillFromParsed overrides the options present in p. The config is left
// unchanged if any key is unknown or any value has the wrong type.
func (c *Config) FillFromParsed(p Partial) error {
	next := c.values
	for _, e := range p.entries {
		id, ok := Lookup(e.key)
		if !ok {
			return fmt.Errorf("%w: %w %q", ErrConfigParse, ErrUnknownOption, e.key)
		}
		v, err := coerce(schema[id], e.raw)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrConfigParse, e.key, err)
		}
		next[id] = v
	}
	c.values = next
	return nil
}

// OverrideValue parses value according to the declared kind of key.
func (c *Config) OverrideValue(key, value string) error {
	id, ok := Lookup(key)
	if !ok {
		return fmt.Errorf("%w: %w %q", ErrInvalidOverride, ErrUnknownOption, key)
	}
	v, err := parseValue(schema[id], value)
	if err != nil {
		return fmt.Errorf("%w: %s=%q: %w", ErrInvalidOverride, key, value, err)
	}
	c.values[id] = v
	return nil
}

// ApplyOverrides применяет строку вида "k=v,k2=v2" по порядку.
// Кусок без '=' продолжает значение предыдущего ключа: ignore=a,b,max_width=80.
func (c *Config) ApplyOverrides(raw string) error {
	pairs, err := SplitOverrides(raw)
	if err != nil {
		return err
	}
	for _, kv := range pairs {
		if err := c.OverrideValue(kv[0], kv[1]); err != nil {
			return err
		}
	}
	return nil
}

// SplitOverrides разбирает "k=v,k2=v2" на пары, сохраняя порядок.
func SplitOverrides(raw string) ([][2]string, error) {
	var pairs [][2]string
	for _, piece := range strings.Split(raw, ",") {
		key, val, found := strings.Cut(piece, "=")
		if !found {
			if len(pairs) == 0 {
				if strings.TrimSpace(piece) == "" {
					continue
				}
				return nil, fmt.Errorf("%w: %q is not key=value", ErrInvalidOverride, piece)
			}
			pairs[len(pairs)-1][1] += "," + piece
			continue
		}
		pairs = append(pairs, [2]string{strings.TrimSpace(key), val})
	}
	return pairs, nil
}

func parseValue(opt Option, s string) (value, error) {
	switch opt.Kind {
	case KindBool:
		switch s {
		case "true":
			return value{b: true}, nil
		case "false":
			return value{b: false}, nil
		}
		return value{}, errors.New("expected true or false")
	case KindUint:
		if s == "" || strings.TrimLeft(s, "0123456789") != "" {
			return value{}, errors.New("expected decimal digits")
		}
		n, err := strconv.ParseUint(s, 10, 31)
		if err != nil {
			return value{}, errors.New("value out of range")
		}
		return value{n: int(n)}, nil
	case KindString:
		return value{s: s}, nil
	case KindList:
		var list []string
		for _, item := range strings.Split(s, ",") {
			if item = strings.TrimSpace(item); item != "" {
				list = append(list, item)
			}
		}
		return value{list: list}, nil
	default:
		i := variantIndex(opt.Variants, s)
		if i < 0 {
			return value{}, fmt.Errorf("expected one of %s", joinVariants(opt.Variants))
		}
		return value{n: i}, nil
	}
}

// coerce приводит значение из TOML к типу опции.
func coerce(opt Option, raw any) (value, error) {
	mismatch := fmt.Errorf("expected %s, found %T", opt.Kind.Hint(opt.Variants), raw)
	switch opt.Kind {
	case KindBool:
		b, ok := raw.(bool)
		if !ok {
			return value{}, mismatch
		}
		return value{b: b}, nil
	case KindUint:
		n, ok := raw.(int64)
		if !ok {
			return value{}, mismatch
		}
		if n < 0 || n > math.MaxInt32 {
			return value{}, fmt.Errorf("value %d out of range", n)
		}
		return value{n: int(n)}, nil
	case KindString:
		s, ok := raw.(string)
		if !ok {
			return value{}, mismatch
		}
		return value{s: s}, nil
	case KindList:
		items, ok := raw.([]any)
		if !ok {
			return value{}, mismatch
		}
		list := make([]string, 0, len(items))
		for _, item := range items {
			s, ok := item.(string)
			if !ok {
				return value{}, fmt.Errorf("expected a list of strings, found %T element", item)
			}
			list = append(list, s)
		}
		return value{list: list}, nil
	default:
		s, ok := raw.(string)
		if !ok {
			return value{}, mismatch
		}
		return parseValue(opt, s)
	}
}
