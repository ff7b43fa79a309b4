// Package locale serves the zh and en string tables embedded in assets.
package locale

import (
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/synora-ui/assets"
	"github.com/doeshing/synora-ui/internal/domain"
	"github.com/doeshing/synora-ui/internal/ports"
)

var placeholder = regexp.MustCompile(`\{(\w+)\}`)

// Provider resolves dotted keys against the active language table.
type Provider struct {
	mu     sync.RWMutex
	lang   string
	tables map[string]map[string]string
}

// New loads the embedded tables and selects lang.
func New(lang string) (*Provider, error) {
	return Load(assets.Locales, "locales", lang)
}

// Load reads every <lang>.yaml file in dir of fsys.
func Load(fsys fs.FS, dir, lang string) (*Provider, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read locales: %w", err)
	}
	tables := map[string]map[string]string{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || path.Ext(name) != ".yaml" {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return nil, err
		}
		var raw map[string]interface{}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		table := map[string]string{}
		flatten("", raw, table)
		tables[strings.TrimSuffix(name, ".yaml")] = table
	}
	if len(tables) == 0 {
		return nil, fmt.Errorf("no locale tables in %s", dir)
	}
	return &Provider{lang: domain.NormalizeLanguage(lang), tables: tables}, nil
}

func flatten(prefix string, node map[string]interface{}, out map[string]string) {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]interface{}:
			flatten(key, val, out)
		case nil:
			out[key] = ""
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}

// Language returns the active language.
func (p *Provider) Language() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lang
}

// Use switches the active language; anything but "en" selects zh.
func (p *Provider) Use(lang string) {
	p.mu.Lock()
	p.lang = domain.NormalizeLanguage(lang)
	p.mu.Unlock()
}

// Languages lists the loaded tables.
func (p *Provider) Languages() []string {
	langs := make([]string, 0, len(p.tables))
	for l := range p.tables {
		langs = append(langs, l)
	}
	sort.Strings(langs)
	return langs
}

// Resolve looks key up in the active table, then the other tables, and
// finally returns the key itself.
func (p *Provider) Resolve(key string) string {
	lang := p.Language()
	if v, ok := p.tables[lang][key]; ok {
		return v
	}
	for _, other := range p.Languages() {
		if v, ok := p.tables[other][key]; ok {
			return v
		}
	}
	return key
}

// Format resolves key and fills {name} placeholders from vars. Names not in
// vars become empty.
func (p *Provider) Format(key string, vars map[string]any) string {
	return Fill(p.Resolve(key), vars)
}

// Fill substitutes {name} placeholders in template.
func Fill(template string, vars map[string]any) string {
	return placeholder.ReplaceAllStringFunc(template, func(m string) string {
		v, ok := vars[m[1:len(m)-1]]
		if !ok {
			return ""
		}
		return fmt.Sprint(v)
	})
}

var _ ports.LocaleProvider = (*Provider)(nil)
