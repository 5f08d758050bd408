package common

import (
	"encoding/json"
	"fmt"
)

// Page is the envelope of the paginated list endpoints
type Page struct {
	Content       json.RawMessage `json:"content"`
	Pageable      Pageable        `json:"pageable"`
	TotalPages    int             `json:"totalPages"`
	TotalElements int             `json:"totalElements"`
	Last          bool            `json:"last"`
}

type Pageable struct {
	PageNumber int `json:"pageNumber"`
	PageSize   int `json:"pageSize"`
}

// HasNext returns true if page is not the last one
func (p Page) HasNext(page int) bool {
	if p.Last {
		return false
	}
	return page+1 < p.TotalPages
}

// Decode unmarshals the content of the page into v (a pointer to a slice)
func (p Page) Decode(v interface{}) error {
	if len(p.Content) == 0 {
		return nil
	}
	if err := json.Unmarshal(p.Content, v); err != nil {
		return fmt.Errorf("Page.Decode: %w", err)
	}
	return nil
}

// DataEnvelope is the envelope of the single-object endpoints of the v1 API
type DataEnvelope struct {
	Data json.RawMessage `json:"data"`
}
