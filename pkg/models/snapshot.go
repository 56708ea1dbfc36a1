package models

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"

	"notion-cms/pkg/notion"
)

// PageSnapshot is a page exported by the fetch layer: its property bag and
// fully hydrated block tree. On disk it is either {"page": ..., "blocks": [...]}
// or a bare block array.
type PageSnapshot struct {
	Page   notion.Page    `json:"page"`
	Blocks []notion.Block `json:"blocks"`
}

func (s *PageSnapshot) UnmarshalJSON(data []byte) error {
	*s = PageSnapshot{}
	if isArray(data) {
		if err := json.Unmarshal(data, &s.Blocks); err != nil {
			return fmt.Errorf("page snapshot blocks: %w", err)
		}
		return nil
	}

	type alias PageSnapshot
	if err := json.Unmarshal(data, (*alias)(s)); err != nil {
		return fmt.Errorf("page snapshot: %w", err)
	}
	return nil
}

// DatabaseSnapshot is a database query result: {"pages": [...]}, the raw
// {"results": [...]} form, or a bare page array.
type DatabaseSnapshot struct {
	Pages []notion.Page `json:"pages"`
}

func (s *DatabaseSnapshot) UnmarshalJSON(data []byte) error {
	*s = DatabaseSnapshot{}
	if isArray(data) {
		if err := json.Unmarshal(data, &s.Pages); err != nil {
			return fmt.Errorf("database snapshot pages: %w", err)
		}
		return nil
	}

	var raw struct {
		Pages   []notion.Page `json:"pages"`
		Results []notion.Page `json:"results"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("database snapshot: %w", err)
	}
	s.Pages = raw.Pages
	if s.Pages == nil {
		s.Pages = raw.Results
	}
	return nil
}

func isArray(data []byte) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '['
}
