package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Record is the capability set every list entry exposes to renderers.
type Record interface {
	DisplayTitle() string
	ImageURL() string
	// SecondaryMetric returns a count and the singular unit it counts.
	SecondaryMetric() (int, string)
	// NaturalKey identifies the record across fetches. It is empty only
	// when the payload carries nothing stable.
	NaturalKey() string
}

var (
	_ Record = PublisherRecord{}
	_ Record = SeriesRecord{}
	_ Record = IssueRecord{}
)

// ImageRef accepts either a bare URL string or an object with an "image"
// field, which is how the series serializer nests the first issue cover.
type ImageRef string

// UnmarshalJSON implements json.Unmarshaler.
func (r *ImageRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = ""
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = ImageRef(s)
		return nil
	case '{':
		var nested struct {
			Image *ImageRef `json:"image"`
		}
		if err := json.Unmarshal(data, &nested); err != nil {
			return err
		}
		if nested.Image != nil {
			*r = *nested.Image
		} else {
			*r = ""
		}
		return nil
	default:
		return fmt.Errorf("image: unexpected JSON %s", string(data))
	}
}

// FlexString accepts a JSON string or number and keeps its text. Ids and
// issue numbers arrive as either depending on the backend.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", string(data))
	}
	*f = FlexString(n.String())
	return nil
}

// PublisherRecord mirrors an element of /api/publisher/.
type PublisherRecord struct {
	Slug       string   `json:"slug"`
	Name       string   `json:"name"`
	Image      ImageRef `json:"image"`
	IssueCount int      `json:"issue_count"`
}

func (p PublisherRecord) DisplayTitle() string           { return p.Name }
func (p PublisherRecord) ImageURL() string               { return string(p.Image) }
func (p PublisherRecord) SecondaryMetric() (int, string) { return p.IssueCount, "Book" }
func (p PublisherRecord) NaturalKey() string             { return strings.TrimSpace(p.Slug) }

// SeriesRecord mirrors an element of /api/series/ and of a publisher's
// series_list.
type SeriesRecord struct {
	ID         FlexString `json:"id"`
	Slug       string     `json:"slug"`
	Name       string     `json:"name"`
	Image      ImageRef   `json:"image"`
	IssueCount int        `json:"issue_count"`
}

func (s SeriesRecord) DisplayTitle() string           { return s.Name }
func (s SeriesRecord) ImageURL() string               { return string(s.Image) }
func (s SeriesRecord) SecondaryMetric() (int, string) { return s.IssueCount, "Book" }

// NaturalKey prefers the numeric id and falls back to the slug.
func (s SeriesRecord) NaturalKey() string {
	if id := strings.TrimSpace(string(s.ID)); id != "" {
		return id
	}
	return strings.TrimSpace(s.Slug)
}

// IssueRecord mirrors an element of a series' issue_list.
type IssueRecord struct {
	DisplayName string     `json:"__str__"`
	Slug        string     `json:"slug"`
	Name        string     `json:"name"`
	Number      FlexString `json:"number"`
	Image       ImageRef   `json:"image"`
	PageCount   int        `json:"page_count"`
}

// DisplayTitle uses the server rendered name, else "name #number".
func (i IssueRecord) DisplayTitle() string {
	if title := strings.TrimSpace(i.DisplayName); title != "" {
		return title
	}
	name := strings.TrimSpace(i.Name)
	number := strings.TrimSpace(string(i.Number))
	switch {
	case name != "" && number != "":
		return name + " #" + number
	case number != "":
		return "#" + number
	default:
		return name
	}
}

func (i IssueRecord) ImageURL() string               { return string(i.Image) }
func (i IssueRecord) SecondaryMetric() (int, string) { return i.PageCount, "Page" }

// NaturalKey is the slug when present, otherwise a composite of the
// title and cover which are stable for an unchanged record.
func (i IssueRecord) NaturalKey() string {
	if slug := strings.TrimSpace(i.Slug); slug != "" {
		return slug
	}
	title := i.DisplayTitle()
	if title == "" && i.Image == "" {
		return ""
	}
	return title + "|" + string(i.Image)
}
