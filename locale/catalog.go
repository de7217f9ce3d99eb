// Package locale loads translation groups and resolves the locale of a request.
package locale

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed translations
var embedded embed.FS

// Group holds the flattened keys of one translation file, e.g. "layout".
type Group map[string]string

// Catalog maps locale -> group name -> group.
type Catalog struct {
	groups map[string]map[string]Group
}

// Embedded loads the translations shipped with the binary.
func Embedded() (*Catalog, error) {
	sub, err := fs.Sub(embedded, "translations")
	if err != nil {
		return nil, err
	}
	return LoadFS(sub)
}

// LoadFS reads every {locale}/{group}.yaml (or .yml) file of fsys. Nested maps are flattened
// with dots, so {auth: {failed: x}} becomes "auth.failed".
func LoadFS(fsys fs.FS) (*Catalog, error) {
	c := &Catalog{groups: map[string]map[string]Group{}}

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(path.Ext(p))
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		dir := path.Dir(p)
		if dir == "." {
			return fmt.Errorf("translation file %q must be inside a locale directory", p)
		}
		loc := path.Base(dir)
		group := strings.TrimSuffix(path.Base(p), path.Ext(p))

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("reading %q: %w", p, err)
		}
		var raw map[string]interface{}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("parsing %q: %w", p, err)
		}

		if c.groups[loc] == nil {
			c.groups[loc] = map[string]Group{}
		}
		flat := Group{}
		flatten(flat, "", raw)
		c.groups[loc][group] = flat
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func flatten(dst Group, prefix string, src map[string]interface{}) {
	for k, v := range src {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]interface{}:
			flatten(dst, key, val)
		case nil:
			dst[key] = ""
		default:
			dst[key] = fmt.Sprint(val)
		}
	}
}

// Locales lists the loaded locales in sorted order.
func (c *Catalog) Locales() []string {
	out := make([]string, 0, len(c.groups))
	for loc := range c.groups {
		out = append(out, loc)
	}
	sort.Strings(out)
	return out
}

// Export returns the requested groups for locale. Unknown groups map to an empty group so
// clients can always index the result.
func (c *Catalog) Export(locale string, groups []string) map[string]Group {
	out := make(map[string]Group, len(groups))
	for _, g := range groups {
		if src, ok := c.groups[locale][g]; ok {
			cp := make(Group, len(src))
			for k, v := range src {
				cp[k] = v
			}
			out[g] = cp
		} else {
			out[g] = Group{}
		}
	}
	return out
}

// All returns every key of locale as "group.key".
func (c *Catalog) All(locale string) map[string]string {
	out := map[string]string{}
	for g, keys := range c.groups[locale] {
		for k, v := range keys {
			out[g+"."+k] = v
		}
	}
	return out
}

// T looks up "group.key" in locale, then in fallback, and returns the key itself when
// neither has it.
func (c *Catalog) T(locale, fallback, key string) string {
	group, name, ok := strings.Cut(key, ".")
	if !ok {
		return key
	}
	for _, loc := range []string{locale, fallback} {
		if v, ok := c.groups[loc][group][name]; ok {
			return v
		}
	}
	return key
}
