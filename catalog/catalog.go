// Package catalog holds the static configuration tables: session types,
// category lists and demographic filter dimensions. The tables are embedded
// in the binary and read-only at runtime.
package catalog

import (
	"embed"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"

	"github.com/CreativVentures-hub/focus-group-ai/model"
)

//go:embed data
var dataFS embed.FS

type Catalog struct {
	SessionTypes      []model.Option    `json:"session_types"`
	BuyingBehaviors   []model.Option    `json:"buying_behaviors"`
	ProductCategories []model.Option    `json:"product_categories"`
	Dimensions        []model.Dimension `json:"dimensions"`
}

func Load() (*Catalog, error) {
	raw, err := dataFS.ReadFile("data/catalog.json")
	if err != nil {
		return nil, errors.Wrap(err, "catalog.read")
	}

	cat := Catalog{}
	err = json.Unmarshal(raw, &cat)
	if err != nil {
		return nil, errors.Wrap(err, "catalog.parse")
	}

	if len(cat.SessionTypes) == 0 {
		return nil, errors.New("catalog: no session types configured")
	}
	if _, ok := cat.DefaultSessionType(); !ok {
		return nil, errors.New("catalog: all session types are disabled")
	}
	return &cat, nil
}

// SessionType looks up a session type by wire value.
func (cat *Catalog) SessionType(value string) (model.Option, bool) {
	for _, t := range cat.SessionTypes {
		if t.Value == value {
			return t, true
		}
	}
	return model.Option{}, false
}

// DefaultSessionType is the first enabled entry, preselected on a fresh draft.
func (cat *Catalog) DefaultSessionType() (model.Option, bool) {
	for _, t := range cat.SessionTypes {
		if !t.Disabled {
			return t, true
		}
	}
	return model.Option{}, false
}

// Dimension looks up a demographic filter axis by name.
func (cat *Catalog) Dimension(name string) (model.Dimension, bool) {
	for _, d := range cat.Dimensions {
		if d.Name == name {
			return d, true
		}
	}
	return model.Dimension{}, false
}

// DimensionNames preserves the catalog order, which is also the payload order.
func (cat *Catalog) DimensionNames() []string {
	names := make([]string, len(cat.Dimensions))
	for i, d := range cat.Dimensions {
		names[i] = d.Name
	}
	return names
}

// SearchOptions filters an option list by case-insensitive substring match
// over labels. An empty query returns the full list.
func SearchOptions(options []model.Option, query string) []model.Option {
	if query == "" {
		return options
	}

	query = strings.ToLower(query)
	matched := []model.Option{}
	for _, opt := range options {
		if strings.Contains(strings.ToLower(opt.Label), query) {
			matched = append(matched, opt)
		}
	}
	return matched
}
