package splunk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

type SavedSearch struct {
	Name         string
	Search       string
	CronSchedule string
	IsScheduled  bool
	Description  string
}

// flexBool accepts true/false as JSON booleans or the "1"/"0" strings
// older splunkd versions return.
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case bool:
		*b = flexBool(t)
	case string:
		p, err := strconv.ParseBool(t)
		if err != nil {
			return fmt.Errorf("invalid boolean %q", t)
		}
		*b = flexBool(p)
	case float64:
		*b = t != 0
	case nil:
		*b = false
	default:
		return fmt.Errorf("invalid boolean %s", string(data))
	}
	return nil
}

type savedSearchEntry struct {
	Name    string `json:"name"`
	Content struct {
		Search       string   `json:"search"`
		CronSchedule string   `json:"cron_schedule"`
		IsScheduled  flexBool `json:"is_scheduled"`
		Description  string   `json:"description"`
	} `json:"content"`
}

func (e savedSearchEntry) toSavedSearch() SavedSearch {
	return SavedSearch{
		Name:         e.Name,
		Search:       e.Content.Search,
		CronSchedule: e.Content.CronSchedule,
		IsScheduled:  bool(e.Content.IsScheduled),
		Description:  e.Content.Description,
	}
}

type feed struct {
	Entry []savedSearchEntry `json:"entry"`
}

func (c *Client) savedSearchesPath() string { return c.ns() + "/saved/searches" }

func (c *Client) savedSearchPath(name string) string {
	return c.savedSearchesPath() + "/" + url.PathEscape(name)
}

// GetSavedSearch returns ErrNotFound when no saved search has that name.
func (c *Client) GetSavedSearch(ctx context.Context, name string) (SavedSearch, error) {
	var f feed
	if err := c.do(ctx, http.MethodGet, c.savedSearchPath(name), nil, &f); err != nil {
		return SavedSearch{}, fmt.Errorf("get saved search %q: %w", name, err)
	}
	for _, e := range f.Entry {
		if e.Name == name {
			return e.toSavedSearch(), nil
		}
	}
	return SavedSearch{}, fmt.Errorf("get saved search %q: %w", name, ErrNotFound)
}

func (c *Client) ListSavedSearches(ctx context.Context) ([]SavedSearch, error) {
	form := url.Values{}
	form.Set("count", "0")
	var f feed
	if err := c.do(ctx, http.MethodGet, c.savedSearchesPath(), form, &f); err != nil {
		return nil, fmt.Errorf("list saved searches: %w", err)
	}
	out := make([]SavedSearch, 0, len(f.Entry))
	for _, e := range f.Entry {
		out = append(out, e.toSavedSearch())
	}
	return out, nil
}

func scheduleForm(s SavedSearch) url.Values {
	form := url.Values{}
	form.Set("search", SearchString(s.Search))
	if s.CronSchedule != "" {
		form.Set("cron_schedule", s.CronSchedule)
	}
	form.Set("is_scheduled", boolParam(s.IsScheduled))
	if s.Description != "" {
		form.Set("description", s.Description)
	}
	return form
}

// CreateSavedSearch returns ErrConflict when the name is taken.
func (c *Client) CreateSavedSearch(ctx context.Context, s SavedSearch) error {
	form := scheduleForm(s)
	form.Set("name", s.Name)
	if err := c.do(ctx, http.MethodPost, c.savedSearchesPath(), form, nil); err != nil {
		return fmt.Errorf("create saved search %q: %w", s.Name, err)
	}
	return nil
}

// UpdateSavedSearch rewrites query, schedule and description in place.
func (c *Client) UpdateSavedSearch(ctx context.Context, s SavedSearch) error {
	if err := c.do(ctx, http.MethodPost, c.savedSearchPath(s.Name), scheduleForm(s), nil); err != nil {
		return fmt.Errorf("update saved search %q: %w", s.Name, err)
	}
	return nil
}

// DeleteSavedSearch returns ErrNotFound when no saved search has that name.
func (c *Client) DeleteSavedSearch(ctx context.Context, name string) error {
	if err := c.do(ctx, http.MethodDelete, c.savedSearchPath(name), nil, nil); err != nil {
		return fmt.Errorf("delete saved search %q: %w", name, err)
	}
	return nil
}

// SearchString prefixes a bare query with the search command, which the
// jobs endpoint requires and saved searches tolerate.
func SearchString(q string) string {
	t := strings.TrimSpace(q)
	if strings.HasPrefix(t, "|") || t == "search" || strings.HasPrefix(t, "search ") {
		return t
	}
	return "search " + t
}

func boolParam(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
