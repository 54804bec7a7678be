package apiclient

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/oauth2"
)

// Request describes one backend call. It holds no readers so it can be
// sent again after a token refresh.
type Request struct {
	Method string
	Path   string // relative to the API base URL, or absolute
	Query  url.Values

	// Body is sent as JSON, or as multipart/form-data when Multipart is set.
	Body      any
	Multipart bool

	// RawBody with ContentType takes precedence over Body.
	RawBody     []byte
	ContentType string

	Header http.Header

	// Token is attached with SetAuthHeader when it carries an access token.
	Token *oauth2.Token
}

// Clone copies the request with its own Header and Query maps.
func (r Request) Clone() Request {
	c := r
	if r.Header != nil {
		c.Header = r.Header.Clone()
	}
	if r.Query != nil {
		c.Query = make(url.Values, len(r.Query))
		for k, v := range r.Query {
			c.Query[k] = append([]string(nil), v...)
		}
	}
	return c
}

// Page is the DRF pagination envelope.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// UnmarshalJSON also accepts a bare array, which some list endpoints return
// when pagination is disabled.
func (p *Page[T]) UnmarshalJSON(data []byte) error {
	var list []T
	if err := json.Unmarshal(data, &list); err == nil {
		*p = Page[T]{Count: len(list), Results: list}
		return nil
	}
	var e struct {
		Count    int     `json:"count"`
		Next     *string `json:"next"`
		Previous *string `json:"previous"`
		Results  []T     `json:"results"`
	}
	if err := json.Unmarshal(data, &e); err != nil {
		return err
	}
	*p = Page[T]{Count: e.Count, Next: e.Next, Previous: e.Previous, Results: e.Results}
	return nil
}

// HasNext reports whether another page is available.
func (p *Page[T]) HasNext() bool {
	return p.Next != nil && *p.Next != ""
}

// ListParams are the filters shared by the list endpoints. Zero values are
// left out of the query.
type ListParams struct {
	Page     int
	PageSize int
	Search   string
	Ordering string
	Status   string

	// Filters carries endpoint specific keys such as client_id.
	Filters map[string]string
}

func (p ListParams) Values() url.Values {
	v := url.Values{}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		v.Set("pageSize", strconv.Itoa(p.PageSize))
	}
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	if p.Ordering != "" {
		v.Set("ordering", p.Ordering)
	}
	if p.Status != "" {
		v.Set("status", p.Status)
	}
	for k, val := range p.Filters {
		if val != "" {
			v.Set(k, val)
		}
	}
	return v
}

// With returns a copy with one more filter set.
func (p ListParams) With(key, value string) ListParams {
	filters := make(map[string]string, len(p.Filters)+1)
	for k, v := range p.Filters {
		filters[k] = v
	}
	filters[key] = value
	p.Filters = filters
	return p
}
