package store

import (
	"prom9/internal/fault"
	"prom9/internal/template"
)

// profileListKeys are the profile fields normalized to string lists on load.
var profileListKeys = []string{"herramientas", "prioridades", "especializacion_agricola"}

// contextListKeys are the context fields normalized to string lists on load.
var contextListKeys = []string{"enfoque", "no_hacer"}

// LoadProfiles returns all persisted profiles. Each profile is a free-form
// map with a mandatory nombre key; entries without one are dropped.
// List-valued fields are normalized to trimmed non-empty string slices,
// whether persisted as native lists or as comma/newline-delimited strings.
func (s *Store) LoadProfiles() []map[string]any {
	return s.loadCollection(s.paths.Profiles, profileListKeys)
}

// LoadContexts returns all persisted contexts, same rules as LoadProfiles.
func (s *Store) LoadContexts() []map[string]any {
	return s.loadCollection(s.paths.Contexts, contextListKeys)
}

// SaveProfiles overwrites the profile collection.
func (s *Store) SaveProfiles(profiles []map[string]any) error {
	return s.writeJSON(s.paths.Profiles, profiles)
}

// SaveContexts overwrites the context collection.
func (s *Store) SaveContexts(contexts []map[string]any) error {
	return s.writeJSON(s.paths.Contexts, contexts)
}

// UpsertProfile inserts the profile or replaces the one with the same
// nombre. List-valued fields are normalized before writing, so the on-disk
// file always holds native lists.
func (s *Store) UpsertProfile(p map[string]any) error {
	return s.upsert(s.LoadProfiles(), p, profileListKeys, s.SaveProfiles)
}

// UpsertContext inserts or replaces a context, same rules as UpsertProfile.
func (s *Store) UpsertContext(c map[string]any) error {
	return s.upsert(s.LoadContexts(), c, contextListKeys, s.SaveContexts)
}

// DeleteProfile removes the profile with the given nombre, reporting
// NotFound when no profile matches.
func (s *Store) DeleteProfile(nombre string) error {
	return s.deleteByName(s.LoadProfiles(), nombre, "perfil", s.SaveProfiles)
}

// DeleteContext removes the context with the given nombre or NotFound.
func (s *Store) DeleteContext(nombre string) error {
	return s.deleteByName(s.LoadContexts(), nombre, "contexto", s.SaveContexts)
}

func (s *Store) upsert(items []map[string]any, item map[string]any, listKeys []string, save func([]map[string]any) error) error {
	name, ok := item["nombre"].(string)
	if !ok || name == "" {
		return fault.InvalidArgument("la entrada necesita un nombre")
	}
	for _, key := range listKeys {
		normalizeListField(item, key)
	}

	replaced := false
	for i := range items {
		if n, ok := items[i]["nombre"].(string); ok && n == name {
			items[i] = item
			replaced = true
			break
		}
	}
	if !replaced {
		items = append(items, item)
	}
	return save(items)
}

func (s *Store) deleteByName(items []map[string]any, nombre, kind string, save func([]map[string]any) error) error {
	kept := items[:0]
	found := false
	for _, item := range items {
		if n, ok := item["nombre"].(string); ok && n == nombre {
			found = true
			continue
		}
		kept = append(kept, item)
	}
	if !found {
		return fault.NotFound(kind + " " + nombre)
	}
	return save(kept)
}

// FindByName returns the first entry whose nombre matches, or nil. Records
// reference profiles and contexts by name string only, so a lookup may
// legitimately come back empty after a rename or delete.
func FindByName(items []map[string]any, nombre string) map[string]any {
	for _, item := range items {
		if name, ok := item["nombre"].(string); ok && name == nombre {
			return item
		}
	}
	return nil
}

func (s *Store) loadCollection(path string, listKeys []string) []map[string]any {
	var items []map[string]any
	s.readJSON(path, &items)

	kept := items[:0]
	for _, item := range items {
		name, ok := item["nombre"].(string)
		if !ok || name == "" {
			continue
		}
		for _, key := range listKeys {
			normalizeListField(item, key)
		}
		kept = append(kept, item)
	}
	return kept
}

// normalizeListField coerces item[key] to []string. JSON arrays arrive as
// []any; hand-edited files may hold a single delimited string instead.
func normalizeListField(item map[string]any, key string) {
	v, ok := item[key]
	if !ok {
		return
	}
	switch val := v.(type) {
	case string:
		item[key] = template.SplitItems(val)
	case []any:
		var out []string
		for _, entry := range val {
			if s, ok := entry.(string); ok {
				out = append(out, s)
			}
		}
		item[key] = normalizeEntries(out)
	case []string:
		item[key] = normalizeEntries(val)
	}
}

// normalizeEntries trims list entries, splitting any that themselves carry
// comma/newline separators, and drops empties.
func normalizeEntries(values []string) []string {
	var out []string
	for _, v := range values {
		out = append(out, template.SplitItems(v)...)
	}
	return out
}
