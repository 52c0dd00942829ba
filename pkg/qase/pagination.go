package qase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// pageLimit is the page size requested from list endpoints.
const pageLimit = 100

// pageThrottle is the pause between page fetches, keeping long listings under
// the API's rate limits.
const pageThrottle = 50 * time.Millisecond

// listPage is a page of a list endpoint. Different endpoints name the entity
// list differently, so every known key is tried.
type listPage struct {
	Entities []json.RawMessage `json:"entities"`
	Items    []json.RawMessage `json:"items"`
	Results  []json.RawMessage `json:"results"`
	Cases    []json.RawMessage `json:"cases"`
}

func (p listPage) entries() []json.RawMessage {
	for _, list := range [][]json.RawMessage{p.Entities, p.Items, p.Results, p.Cases} {
		if len(list) > 0 {
			return list
		}
	}
	return nil
}

// listAll fetches every page of a list endpoint and decodes the entries as T.
// Pagination stops at the first short or empty page.
func listAll[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	var all []T

	for page := 1; ; page++ {
		if page > 1 {
			if err := sleepCtx(ctx, pageThrottle); err != nil {
				return nil, err
			}
		}

		params := url.Values{
			"page":  {strconv.Itoa(page)},
			"limit": {strconv.Itoa(pageLimit)},
		}

		var result listPage
		if err := c.get(ctx, path, params, &result); err != nil {
			return nil, fmt.Errorf("list page %d: %w", page, err)
		}

		entries := result.entries()
		if len(entries) == 0 {
			break
		}

		for _, raw := range entries {
			var item T
			if err := json.Unmarshal(raw, &item); err != nil {
				return nil, fmt.Errorf("decode entry on page %d: %w", page, err)
			}
			all = append(all, item)
		}

		if len(entries) < pageLimit {
			break
		}
	}

	return all, nil
}
