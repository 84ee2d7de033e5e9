package models

import (
	"fmt"
	"strings"
)

// Category is a named bucket that files are routed into by extension.
type Category struct {
	Name       string   `json:"name"`
	Extensions []string `json:"extensions"`
}

// Has reports whether ext (lowercase, with leading dot) belongs to the category.
func (c Category) Has(ext string) bool {
	for _, e := range c.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Table is an ordered classification table.
//
// Order matters: when an extension is listed by more than one category, the
// earliest category wins.
type Table []Category

// Lookup returns the first category whose extensions contain ext.
//
// ext is compared case-insensitively. The empty extension never matches.
func (t Table) Lookup(ext string) (string, bool) {
	if ext == "" {
		return "", false
	}
	ext = strings.ToLower(ext)
	for _, c := range t {
		if c.Has(ext) {
			return c.Name, true
		}
	}
	return "", false
}

// Duplicates maps every extension claimed by more than one category to the
// claiming category names, in table order.
func (t Table) Duplicates() map[string][]string {
	owners := make(map[string][]string)
	for _, c := range t {
		seen := make(map[string]bool, len(c.Extensions))
		for _, e := range c.Extensions {
			if seen[e] {
				continue
			}
			seen[e] = true
			owners[e] = append(owners[e], c.Name)
		}
	}

	dups := make(map[string][]string)
	for ext, names := range owners {
		if len(names) > 1 {
			dups[ext] = names
		}
	}
	return dups
}

// Validate checks that the table can be used for a run.
func (t Table) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("classification table has no categories")
	}

	names := make(map[string]bool, len(t))
	for i, c := range t {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return fmt.Errorf("category %d has no name", i)
		}
		if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
			return fmt.Errorf("category %q is not a valid directory name", name)
		}
		if names[name] {
			return fmt.Errorf("category %q is listed twice", name)
		}
		names[name] = true

		for _, e := range c.Extensions {
			if len(e) < 2 || !strings.HasPrefix(e, ".") {
				return fmt.Errorf("category %q: extension %q must start with a dot", name, e)
			}
		}
	}
	return nil
}

// Normalize returns a copy with lowercase, dot-prefixed, trimmed extensions.
func (t Table) Normalize() Table {
	out := make(Table, 0, len(t))
	for _, c := range t {
		exts := make([]string, 0, len(c.Extensions))
		for _, e := range c.Extensions {
			e = strings.ToLower(strings.TrimSpace(e))
			if e == "" {
				continue
			}
			if !strings.HasPrefix(e, ".") {
				e = "." + e
			}
			exts = append(exts, e)
		}
		out = append(out, Category{Name: c.Name, Extensions: exts})
	}
	return out
}

// Names returns the category names in table order.
func (t Table) Names() []string {
	names := make([]string, len(t))
	for i, c := range t {
		names[i] = c.Name
	}
	return names
}
