// Package resolve maps incoming feed request paths to a feed definition and
// wire format. Resolution is pure: it consults only the configuration store,
// never the content repository.
package resolve

import (
	"strings"

	"feedgate/internal/domain/entity"
	"feedgate/internal/settings"
)

// Resolved is the outcome of a successful resolution.
type Resolved struct {
	Definition entity.FeedDefinition
	Format     entity.FeedFormat

	// Builtin is true when the request named a wire format directly rather
	// than a custom definition slug.
	Builtin bool
}

// Resolver resolves request path segments against the configuration store.
type Resolver struct {
	Settings settings.Store
}

// NewResolver creates a resolver over the given configuration store.
func NewResolver(store settings.Store) *Resolver {
	return &Resolver{Settings: store}
}

// Resolve maps a /feed/{name}/ path segment to a definition and format.
//
// Built-in format names (rss2, atom, json) resolve to the sitewide default
// definition when their capability flag is enabled. Anything else is matched
// exactly against enabled custom definition slugs; disabled or unknown slugs
// yield ErrFeedNotFound.
func (r *Resolver) Resolve(name string) (Resolved, error) {
	name = strings.Trim(name, "/")
	if name == "" {
		return Resolved{}, ErrFeedNotFound
	}

	if entity.IsBuiltinFormat(name) {
		format := entity.FeedFormat(name)
		if !r.formatEnabled(format) {
			return Resolved{}, ErrFeedNotFound
		}
		return Resolved{
			Definition: r.builtinDefinition(format),
			Format:     format,
			Builtin:    true,
		}, nil
	}

	defs, err := r.Settings.Definitions()
	if err != nil {
		return Resolved{}, err
	}
	for _, def := range defs {
		if def.Slug != name {
			continue
		}
		if !def.Enabled {
			return Resolved{}, ErrFeedNotFound
		}
		return Resolved{Definition: def, Format: entity.FormatRSS2}, nil
	}
	return Resolved{}, ErrFeedNotFound
}

func (r *Resolver) formatEnabled(format entity.FeedFormat) bool {
	switch format {
	case entity.FormatAtom:
		return r.Settings.GetBool(settings.KeyAtomEnabled, true)
	case entity.FormatJSONFeed:
		return r.Settings.GetBool(settings.KeyJSONEnabled, true)
	default:
		return r.Settings.GetBool(settings.KeyRSS2Enabled, true)
	}
}

// builtinDefinition synthesizes the sitewide feed definition served at
// /feed/{format}/: every publishable content type, newest first.
func (r *Resolver) builtinDefinition(format entity.FeedFormat) entity.FeedDefinition {
	return entity.FeedDefinition{
		Slug:           string(format),
		Title:          r.Settings.GetString(settings.KeySiteTitle, ""),
		Description:    r.Settings.GetString(settings.KeySiteDescription, ""),
		Limit:          r.Settings.GetInt("feeds.builtin_limit", 20),
		OrderBy:        entity.OrderByDate,
		OrderDirection: entity.OrderDesc,
		Enabled:        true,
	}
}
