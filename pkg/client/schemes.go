package client

import (
	"context"
	"net/url"
)

// SchemesClient browses and administers the catalog.
type SchemesClient struct {
	client *Client
}

type schemeList struct {
	Items []Scheme `json:"items"`
	Total int      `json:"total"`
}

// List returns the schemes matching f in catalog order.
func (s *SchemesClient) List(ctx context.Context, f SchemeFilter) ([]Scheme, error) {
	q := url.Values{}
	if f.Query != "" {
		q.Set("q", f.Query)
	}
	if f.Type != "" {
		q.Set("type", f.Type)
	}
	if f.Level != "" {
		q.Set("level", f.Level)
	}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	path := "/api/v1/schemes"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out schemeList
	if err := s.client.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// Get fetches one scheme.
func (s *SchemesClient) Get(ctx context.Context, id string) (*Scheme, error) {
	var out Scheme
	if err := s.client.get(ctx, "/api/v1/schemes/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create adds a scheme.  Requires an admin session.
func (s *SchemesClient) Create(ctx context.Context, d SchemeDraft) (*Scheme, error) {
	var out Scheme
	if err := s.client.post(ctx, "/api/v1/admin/schemes", d, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update applies p to the scheme with id.  Requires an admin session.
func (s *SchemesClient) Update(ctx context.Context, id string, p SchemePatch) (*Scheme, error) {
	var out Scheme
	if err := s.client.patch(ctx, "/api/v1/admin/schemes/"+url.PathEscape(id), p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes the scheme with id.  Unknown ids succeed.
func (s *SchemesClient) Delete(ctx context.Context, id string) error {
	return s.client.delete(ctx, "/api/v1/admin/schemes/"+url.PathEscape(id))
}

//Personal.AI order the ending
