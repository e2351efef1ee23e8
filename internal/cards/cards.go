package cards

import (
	"fmt"
	"net/url"

	"github.com/five82/thwip/internal/catalog"
)

// Action is the single primary interaction a card offers.
type Action struct {
	Label string
	// Target is an in-app path. Empty when Resolved is false.
	Target string
	// Resolved is false for placeholder actions whose destination the
	// catalogue does not define yet.
	Resolved bool
}

// Card is the surface-neutral description of one list entry.
type Card struct {
	Key      string
	Title    string
	ImageURL string
	Metric   string
	Action   Action
}

// Strategy turns a loaded collection into cards, one per record, in order.
type Strategy[R catalog.Record] func(records []R) []Card

const (
	publisherPrefix = "publisher:"
	seriesPrefix    = "series:"
	issuePrefix     = "issue:"
)

// PublisherCards links each publisher to its series list.
func PublisherCards(records []catalog.PublisherRecord) []Card {
	out := make([]Card, 0, len(records))
	for i, rec := range records {
		card := base(publisherPrefix, i, rec)
		card.Action = Action{Label: "Open Publisher"}
		if slug := rec.NaturalKey(); slug != "" {
			card.Action.Target = "/publisher/" + url.PathEscape(slug)
			card.Action.Resolved = true
		}
		out = append(out, card)
	}
	return out
}

// SeriesCards renders series with an unresolved "Open Series" action.
func SeriesCards(records []catalog.SeriesRecord) []Card {
	out := make([]Card, 0, len(records))
	for i, rec := range records {
		card := base(seriesPrefix, i, rec)
		card.Action = Action{Label: "Open Series"}
		out = append(out, card)
	}
	return out
}

// IssueCards renders issues with an unresolved "Read" action.
func IssueCards(records []catalog.IssueRecord) []Card {
	out := make([]Card, 0, len(records))
	for i, rec := range records {
		card := base(issuePrefix, i, rec)
		card.Action = Action{Label: "Read"}
		out = append(out, card)
	}
	return out
}

func base(prefix string, index int, rec catalog.Record) Card {
	count, unit := rec.SecondaryMetric()
	return Card{
		Key:      cardKey(prefix, index, rec.NaturalKey()),
		Title:    rec.DisplayTitle(),
		ImageURL: rec.ImageURL(),
		Metric:   Metric(count, unit),
	}
}

// cardKey falls back to the position when a record carries no identity.
// Positional keys are still deterministic for an unchanged collection.
func cardKey(prefix string, index int, natural string) string {
	if natural == "" {
		return fmt.Sprintf("%s#%d", prefix, index)
	}
	return prefix + natural
}

// Metric formats a count with its unit, pluralised for anything but one.
func Metric(count int, unit string) string {
	if count == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", count, unit)
}
