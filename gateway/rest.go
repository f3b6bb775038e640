// ABOUTME: REST implementation of the Gateway contract
// ABOUTME: Speaks the PostgREST dialect used by the hosted portal backend
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"github.com/tessaly/vendordesk/models"
)

const restPathPrefix = "/rest/v1/"

// REST talks to a PostgREST-style endpoint. Every request carries the
// project API key; when a token source is present its bearer token is
// attached as well, so row-level policies see the signed-in user.
type REST struct {
	baseURL string
	apiKey  string
	tokens  oauth2.TokenSource
	client  *http.Client
	log     zerolog.Logger
}

func NewREST(baseURL, apiKey string, tokens oauth2.TokenSource, log zerolog.Logger) *REST {
	return &REST{
		baseURL: baseURL,
		apiKey:  apiKey,
		tokens:  tokens,
		client:  &http.Client{Timeout: 30 * time.Second},
		log:     log,
	}
}

func (g *REST) FetchAll(ctx context.Context, table string) ([]models.Row, error) {
	query := url.Values{}
	if table == models.TableRepresentatives {
		// Pull the joined vendor display name in one round trip.
		query.Set("select", "*,vendors(name)")
	} else {
		query.Set("select", "*")
	}

	var rows []models.Row
	if err := g.do(ctx, http.MethodGet, table, query, nil, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (g *REST) FetchFiltered(ctx context.Context, table, field, term string) ([]models.Row, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set(field, "ilike.*"+term+"*")

	var rows []models.Row
	if err := g.do(ctx, http.MethodGet, table, query, nil, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (g *REST) FetchMatching(ctx context.Context, table, field, value string) ([]models.Row, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set(field, "eq."+value)

	var rows []models.Row
	if err := g.do(ctx, http.MethodGet, table, query, nil, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (g *REST) FetchJoined(ctx context.Context, joinTable, filterField, id string) ([]models.Row, error) {
	query := url.Values{}
	switch filterField {
	case "product_id":
		query.Set("select", "vendors(*),products(name)")
	case "vendor_id":
		query.Set("select", "products(*)")
	default:
		return nil, &Error{Op: "fetchJoined", Table: joinTable, Message: "unsupported join filter " + filterField}
	}
	query.Set(filterField, "eq."+id)

	var raw []models.Row
	if err := g.do(ctx, http.MethodGet, joinTable, query, nil, nil, &raw); err != nil {
		return nil, err
	}

	rows := make([]models.Row, 0, len(raw))
	for _, item := range raw {
		switch filterField {
		case "product_id":
			vendor, _ := item["vendors"].(map[string]any)
			if vendor == nil {
				continue
			}
			row := models.Row{}
			for k, v := range vendor {
				row[k] = v
			}
			if product, ok := item["products"].(map[string]any); ok {
				row["product_name"], _ = product["name"].(string)
			}
			rows = append(rows, row)
		case "vendor_id":
			if product, ok := item["products"].(map[string]any); ok {
				rows = append(rows, product)
			}
		}
	}
	return rows, nil
}

func (g *REST) Insert(ctx context.Context, table string, record models.Row) (models.Row, error) {
	headers := map[string]string{"Prefer": "return=representation"}

	var rows []models.Row
	if err := g.do(ctx, http.MethodPost, table, nil, []models.Row{record}, headers, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &Error{Op: "insert", Table: table, Message: "no row returned"}
	}
	return rows[0], nil
}

func (g *REST) Update(ctx context.Context, table, id string, patch models.Row) (models.Row, error) {
	query := url.Values{}
	query.Set("id", "eq."+id)
	headers := map[string]string{"Prefer": "return=representation"}

	var rows []models.Row
	if err := g.do(ctx, http.MethodPatch, table, query, patch, headers, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &Error{Op: "update", Table: table, Message: "no row matched id " + id}
	}
	return rows[0], nil
}

func (g *REST) Delete(ctx context.Context, table, id string) error {
	query := url.Values{}
	query.Set("id", "eq."+id)
	return g.do(ctx, http.MethodDelete, table, query, nil, nil, nil)
}

// LinkVendorProduct records that a vendor offers a product. Duplicate
// links are ignored, matching the local store.
func (g *REST) LinkVendorProduct(ctx context.Context, vendorID, productID string) error {
	headers := map[string]string{"Prefer": "resolution=ignore-duplicates"}
	row := models.Row{"vendor_id": vendorID, "product_id": productID}
	return g.do(ctx, http.MethodPost, models.TableVendorProducts, nil, []models.Row{row}, headers, nil)
}

func (g *REST) do(ctx context.Context, method, table string, query url.Values, body any, headers map[string]string, out any) error {
	reqID := ulid.Make().String()
	op := method + " " + table

	endpoint := g.baseURL + restPathPrefix + table
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return &Error{Op: op, Table: table, Err: err}
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return &Error{Op: op, Table: table, Err: err}
	}

	req.Header.Set("apikey", g.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if g.tokens != nil {
		token, err := g.tokens.Token()
		if err != nil {
			return &Error{Op: op, Table: table, Message: "no usable session token", Err: err}
		}
		token.SetAuthHeader(req)
	}

	start := time.Now()
	resp, err := g.client.Do(req)
	if err != nil {
		g.log.Error().Str("req", reqID).Str("op", op).Err(err).Msg("gateway request failed")
		return &Error{Op: op, Table: table, Err: err}
	}
	defer resp.Body.Close()

	g.log.Debug().
		Str("req", reqID).
		Str("op", op).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("gateway request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Op: op, Table: table, Status: resp.StatusCode, Message: readAPIMessage(resp.Body)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &Error{Op: op, Table: table, Err: fmt.Errorf("decode response: %w", err)}
		}
	}
	return nil
}

// readAPIMessage pulls the human-readable message out of a PostgREST error
// body, falling back to the raw body.
func readAPIMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(raw) == 0 {
		return "request failed"
	}
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return string(raw)
}
