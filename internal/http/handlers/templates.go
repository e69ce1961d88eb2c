package handlers

import (
	"net/http"
	"sort"

	"avatarstudio/internal/studio"
)

type scriptTemplate struct {
	Name   string `json:"name"`
	Script string `json:"script"`
}

// Templates lists the canned starter scripts in a stable order.
func (a *App) Templates(w http.ResponseWriter, r *http.Request) {
	all := studio.Templates()
	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)

	items := make([]scriptTemplate, 0, len(names))
	for _, name := range names {
		items = append(items, scriptTemplate{Name: name, Script: all[name]})
	}
	a.json(w, http.StatusOK, map[string]any{"templates": items})
}
