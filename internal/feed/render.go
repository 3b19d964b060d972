package feed

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/bft-labs/dirfeed/internal/domain"
)

// Generator is written to the channel's generator element.
const Generator = "dirfeed"

type rssDocument struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Generator   string    `xml:"generator"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string  `xml:"title"`
	Link        string  `xml:"link"`
	Description string  `xml:"description"`
	GUID        rssGUID `xml:"guid"`
	PubDate     string  `xml:"pubDate"`
}

type rssGUID struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

// Render serializes f as an RSS 2.0 document. Items are written in the order
// they appear in f.
func Render(f domain.Feed) ([]byte, error) {
	doc := rssDocument{
		Version: "2.0",
		Channel: rssChannel{
			Title:       f.Title,
			Link:        f.Link,
			Description: f.Description,
			Generator:   Generator,
			Items:       make([]rssItem, 0, len(f.Items)),
		},
	}
	for _, e := range f.Items {
		doc.Channel.Items = append(doc.Channel.Items, rssItem{
			Title:       e.Title,
			Link:        e.Link,
			Description: e.Description,
			GUID:        rssGUID{Value: e.GUID},
			PubDate:     e.PublishedAt.UTC().Format(time.RFC1123Z),
		})
	}
	if err := validate(doc.Channel); err != nil {
		return nil, fmt.Errorf("render feed: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("render feed: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("render feed: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// validate rejects text that encoding/xml would escape into a document that
// XML 1.0 parsers refuse.
func validate(ch rssChannel) error {
	check := func(field, s string) error {
		if !utf8.ValidString(s) {
			return fmt.Errorf("%s: invalid UTF-8", field)
		}
		for _, r := range s {
			if !isXMLChar(r) {
				return fmt.Errorf("%s: character %U not allowed in XML", field, r)
			}
		}
		return nil
	}
	for field, s := range map[string]string{
		"title":       ch.Title,
		"link":        ch.Link,
		"description": ch.Description,
	} {
		if err := check("channel "+field, s); err != nil {
			return err
		}
	}
	for i, it := range ch.Items {
		for field, s := range map[string]string{
			"title":       it.Title,
			"link":        it.Link,
			"description": it.Description,
		} {
			if err := check(fmt.Sprintf("item %d %s", i, field), s); err != nil {
				return err
			}
		}
	}
	return nil
}

// isXMLChar reports whether r is in the XML 1.0 Char production.
func isXMLChar(r rune) bool {
	return r == 0x09 || r == 0x0A || r == 0x0D ||
		r >= 0x20 && r <= 0xD7FF ||
		r >= 0xE000 && r <= 0xFFFD ||
		r >= 0x10000 && r <= 0x10FFFF
}
