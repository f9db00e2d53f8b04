package supabase

import (
	"context"
	"net/http"
	"net/url"
)

// Insert posts row into table and decodes the stored representation into out.
func (c *Client) Insert(ctx context.Context, accessToken, table string, row, out any) error {
	headers := map[string]string{"Prefer": "return=representation"}
	return c.do(ctx, restEndpoint, http.MethodPost, "/rest/v1/"+url.PathEscape(table), accessToken, headers, row, out)
}

// Select reads rows from table. query holds PostgREST parameters such as
// select=*, user_id=eq.<id> and order=created_at.desc.
func (c *Client) Select(ctx context.Context, accessToken, table string, query url.Values, out any) error {
	path := "/rest/v1/" + url.PathEscape(table)
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	return c.do(ctx, restEndpoint, http.MethodGet, path, accessToken, nil, nil, out)
}
