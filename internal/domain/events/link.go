package events

type LinkKind string

const (
	LinkExternal LinkKind = "external"
	LinkInternal LinkKind = "internal"
)

// LinkTarget says whether a rendered link leaves the site (plain anchor to
// the ticketing provider) or stays on it (router navigation). Resolved once
// where the link is built instead of by inspecting URLs at render time.
type LinkTarget struct {
	Kind  LinkKind `json:"kind"`
	URL   string   `json:"url,omitempty"`
	Route string   `json:"route,omitempty"`
}

// TicketLink picks the purchase link for an event: the provider's ticket
// URL when one exists, otherwise the internal detail route.
func TicketLink(e Event) LinkTarget {
	if e.TicketURL != "" {
		return LinkTarget{Kind: LinkExternal, URL: e.TicketURL}
	}
	slug := e.Slug
	if slug == "" {
		slug = e.IDString()
	}
	return LinkTarget{Kind: LinkInternal, Route: "/event/" + slug}
}
