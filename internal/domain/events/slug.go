package events

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Short slugs are compact date-based identifiers used in shareable URLs:
//
//	DD-MM-YY           25-12-24
//	DD-MM-YY-HHMM      25-12-24-1930  (several events on that date)
//	DD-MM-YY-fragment  25-12-24-61960 (no derivable time; provider id tail)
//
// They are distinct from the canonical "event-{id}" slug. All calendar math
// is done in Moscow local time so a slug means the same date no matter
// where it is generated or resolved.

const slugBaseYear = 2000

var moscow = func() *time.Location {
	loc, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		panic(fmt.Sprintf("loading Europe/Moscow tz data: %v", err))
	}
	return loc
}()

var slugTimeRe = regexp.MustCompile(`^\d{4}$`)

// DateKey returns the event's Moscow-local calendar date as YYYY-MM-DD.
// It is the grouping key for same-date collision counting. Empty when the
// event has no derivable date.
func DateKey(e Event) string {
	d := e.Date()
	if d == nil {
		return ""
	}
	local := d.In(moscow)
	return fmt.Sprintf("%04d-%02d-%02d", local.Year(), int(local.Month()), local.Day())
}

// TimeOfDay returns the Moscow-local clock time of the primary show as
// HHMM. Exact local midnight is the provider's "time unknown" sentinel and
// yields the empty string.
func TimeOfDay(e Event) string {
	d := e.Date()
	if d == nil {
		return ""
	}
	local := d.In(moscow)
	if local.Hour() == 0 && local.Minute() == 0 {
		return ""
	}
	return fmt.Sprintf("%02d%02d", local.Hour(), local.Minute())
}

// BuildSlug encodes the event's Moscow-local date as DD-MM-YY. When
// sameDateCount indicates other events share the date, a disambiguator is
// appended: the local time when one is derivable, otherwise the last six
// characters of the provider id. Empty when the event has no date.
//
// sameDateCount must come from a histogram over the full known event set
// (see CountByDate); counting over a subset produces collision-prone slugs.
func BuildSlug(e Event, sameDateCount int) string {
	d := e.Date()
	if d == nil {
		return ""
	}
	local := d.In(moscow)
	slug := fmt.Sprintf("%02d-%02d-%02d", local.Day(), int(local.Month()), local.Year()-slugBaseYear)

	if sameDateCount > 1 {
		if t := TimeOfDay(e); t != "" {
			slug += "-" + t
		} else {
			slug += "-" + idFragment(e)
		}
	}
	return slug
}

func idFragment(e Event) string {
	id := e.IDString()
	if len(id) > 6 {
		id = id[len(id)-6:]
	}
	return id
}

// ParsedSlug is the decoded form of a short slug.
type ParsedSlug struct {
	Day   int
	Month int
	Year  int

	// Time holds the HHMM disambiguator, IDFragment the id tail; at most
	// one of them is set.
	Time       string
	IDFragment string
}

// DateKey returns the YYYY-MM-DD key the slug points at.
func (p ParsedSlug) DateKey() string {
	return fmt.Sprintf("%04d-%02d-%02d", p.Year, p.Month, p.Day)
}

// ParseSlug decodes a short slug. Day and month are range-checked but no
// calendar validation happens beyond that: "31-02-24" parses fine and
// simply matches no event. Returns false for anything that is not at least
// DD-MM-YY with numeric tokens.
func ParseSlug(slug string) (ParsedSlug, bool) {
	if slug == "" {
		return ParsedSlug{}, false
	}

	parts := strings.Split(slug, "-")
	if len(parts) < 3 {
		return ParsedSlug{}, false
	}

	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return ParsedSlug{}, false
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return ParsedSlug{}, false
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return ParsedSlug{}, false
	}
	if day < 1 || day > 31 || month < 1 || month > 12 {
		return ParsedSlug{}, false
	}

	parsed := ParsedSlug{
		Day:   day,
		Month: month,
		Year:  year + slugBaseYear,
	}

	if len(parts) >= 4 {
		extra := strings.Join(parts[3:], "-")
		if slugTimeRe.MatchString(extra) {
			parsed.Time = extra
		} else {
			parsed.IDFragment = extra
		}
	}
	return parsed, true
}

// CountByDate builds the date-key histogram used for collision counting.
// It must cover every known event, not a filtered view.
func CountByDate(events []Event) map[string]int {
	counts := make(map[string]int, len(events))
	for _, e := range events {
		if key := DateKey(e); key != "" {
			counts[key]++
		}
	}
	return counts
}

// SameDateCount looks up how many events share this event's date key.
func SameDateCount(e Event, counts map[string]int) int {
	key := DateKey(e)
	if key == "" {
		return 1
	}
	if n := counts[key]; n > 0 {
		return n
	}
	return 1
}

// FindBySlug resolves a parsed slug against the known event set. Events on
// the slug's date form the candidate set; a sole candidate wins outright
// even when the slug carries a disambiguator (a collision that has since
// resolved still works). With several candidates the time token is matched
// exactly, then the id fragment by suffix or containment, and as a last
// resort the first candidate in filter order is returned. Nil when nothing
// matches.
func FindBySlug(slug string, knownEvents []Event) *Event {
	if slug == "" || len(knownEvents) == 0 {
		return nil
	}

	parsed, ok := ParseSlug(slug)
	if !ok {
		return nil
	}

	target := parsed.DateKey()
	var candidates []*Event
	for i := range knownEvents {
		if DateKey(knownEvents[i]) == target {
			candidates = append(candidates, &knownEvents[i])
		}
	}

	if len(candidates) == 0 {
		return nil
	}
	if len(candidates) == 1 {
		return candidates[0]
	}

	if parsed.Time != "" {
		for _, c := range candidates {
			if TimeOfDay(*c) == parsed.Time {
				return c
			}
		}
	}
	if parsed.IDFragment != "" {
		for _, c := range candidates {
			id := c.IDString()
			if strings.HasSuffix(id, parsed.IDFragment) || strings.Contains(id, parsed.IDFragment) {
				return c
			}
		}
	}

	// Best effort, not guaranteed correct.
	return candidates[0]
}

// Resolve maps an inbound slug back to an event. Canonical "event-{id}"
// slugs match first, so canonical links work through the short-URL route
// too. Then, before the parse-based lookup, every event's own short slug
// is re-derived against the current histogram and compared for exact
// string equality; slugs double as outbound links, so self-generated ones
// must always round-trip even when the parse heuristics would pick
// differently.
func Resolve(slug string, knownEvents []Event) *Event {
	if slug == "" || len(knownEvents) == 0 {
		return nil
	}

	for i := range knownEvents {
		if knownEvents[i].Slug != "" && knownEvents[i].Slug == slug {
			return &knownEvents[i]
		}
	}

	counts := CountByDate(knownEvents)
	for i := range knownEvents {
		own := BuildSlug(knownEvents[i], SameDateCount(knownEvents[i], counts))
		if own != "" && own == slug {
			return &knownEvents[i]
		}
	}

	return FindBySlug(slug, knownEvents)
}

// ShareableURL renders the public short URL for an event, falling back to
// the canonical detail URL when no date-based slug can be built.
func ShareableURL(e Event, sameDateCount int, baseURL string) string {
	if slug := BuildSlug(e, sameDateCount); slug != "" {
		return baseURL + "/e/" + slug
	}
	if e.Slug != "" {
		return baseURL + "/event/" + e.Slug
	}
	return baseURL + "/event/" + e.IDString()
}
