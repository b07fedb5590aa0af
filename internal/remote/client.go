// Package remote talks to the hosted backend-as-a-service: the rest/v1
// collections (products, categories, users) and the auth/v1 OAuth endpoints.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"maktaba/internal/domain"
)

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body any, bearer string, prefer string) ([]byte, error) {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", c.apiKey)
	if bearer == "" {
		bearer = c.apiKey
	}
	req.Header.Set("Authorization", "Bearer "+bearer)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("remote store: %s %s: status %d: %s", method, path, resp.StatusCode, truncate(b))
	}
	return b, nil
}

func truncate(b []byte) string {
	if len(b) > 200 {
		b = b[:200]
	}
	return string(b)
}

// Products lists the products collection ordered by recency.
func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	b, err := c.do(ctx, http.MethodGet, "/rest/v1/products?select=*&order=dateAdded.desc", nil, "", "")
	if err != nil {
		return nil, err
	}
	var out []domain.Product
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("remote store: decode products: %w", err)
	}
	return out, nil
}

// Categories lists the categories collection ordered by name.
func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	b, err := c.do(ctx, http.MethodGet, "/rest/v1/categories?select=*&order=name.asc", nil, "", "")
	if err != nil {
		return nil, err
	}
	var out []domain.Category
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("remote store: decode categories: %w", err)
	}
	return out, nil
}

// InsertProduct writes a new row (caller strips the provisional id) and
// returns the row with its server-assigned id.
func (c *Client) InsertProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	payload := map[string]any{
		"name": p.Name, "author": p.Author, "price": p.Price,
		"discountPrice": p.DiscountPrice, "stock": p.Stock, "imageUrl": p.ImageURL,
		"category": p.Category, "subcategory": p.Subcategory,
		"description": p.Description, "status": p.Status, "dateAdded": p.DateAdded,
	}
	b, err := c.do(ctx, http.MethodPost, "/rest/v1/products", payload, "", "return=representation")
	if err != nil {
		return domain.Product{}, err
	}
	return firstRow[domain.Product](b)
}

func (c *Client) UpdateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	b, err := c.do(ctx, http.MethodPatch, "/rest/v1/products?id=eq."+url.QueryEscape(p.ID), p, "", "return=representation")
	if err != nil {
		return domain.Product{}, err
	}
	return firstRow[domain.Product](b)
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/rest/v1/products?id=eq."+url.QueryEscape(id), nil, "", "")
	return err
}

func (c *Client) InsertCategory(ctx context.Context, cat domain.Category) (domain.Category, error) {
	payload := map[string]any{
		"name": cat.Name, "icon": cat.Icon, "description": cat.Description,
		"imageUrl": cat.ImageURL, "subcategories": cat.Subcategories,
	}
	b, err := c.do(ctx, http.MethodPost, "/rest/v1/categories", payload, "", "return=representation")
	if err != nil {
		return domain.Category{}, err
	}
	return firstRow[domain.Category](b)
}

func (c *Client) UpdateCategory(ctx context.Context, cat domain.Category) (domain.Category, error) {
	b, err := c.do(ctx, http.MethodPatch, "/rest/v1/categories?id=eq."+url.QueryEscape(cat.ID), cat, "", "return=representation")
	if err != nil {
		return domain.Category{}, err
	}
	return firstRow[domain.Category](b)
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/rest/v1/categories?id=eq."+url.QueryEscape(id), nil, "", "")
	return err
}

// UpsertProfile mirrors a signed-in identity into the users collection.
func (c *Client) UpsertProfile(ctx context.Context, u domain.User, googleID string) error {
	payload := map[string]any{
		"id":           u.ID,
		"email":        u.Email,
		"name":         u.Name,
		"avatar_url":   u.AvatarURL,
		"google_id":    googleID,
		"last_sign_in": time.Now().UTC().Format(time.RFC3339),
	}
	_, err := c.do(ctx, http.MethodPost, "/rest/v1/users?on_conflict=id", payload, "", "resolution=merge-duplicates")
	return err
}

// AuthorizeURL builds the provider sign-in redirect with an account picker hint.
func (c *Client) AuthorizeURL(redirectTo string) string {
	q := url.Values{}
	q.Set("provider", "google")
	q.Set("redirect_to", redirectTo)
	q.Set("prompt", "select_account")
	return c.baseURL + "/auth/v1/authorize?" + q.Encode()
}

// authUser is the provider's user shape; metadata carries profile fields.
type authUser struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Metadata struct {
		FullName  string `json:"full_name"`
		Name      string `json:"name"`
		AvatarURL string `json:"avatar_url"`
		Picture   string `json:"picture"`
		Sub       string `json:"sub"`
	} `json:"user_metadata"`
}

// User resolves an access token into the identity it belongs to. The second
// return value is the provider-side google id, used for the profile upsert.
func (c *Client) User(ctx context.Context, accessToken string) (domain.User, string, error) {
	b, err := c.do(ctx, http.MethodGet, "/auth/v1/user", nil, accessToken, "")
	if err != nil {
		return domain.User{}, "", err
	}
	var au authUser
	if err := json.Unmarshal(b, &au); err != nil {
		return domain.User{}, "", fmt.Errorf("remote store: decode user: %w", err)
	}
	u := domain.User{ID: au.ID, Email: au.Email}
	u.Name = au.Metadata.FullName
	if u.Name == "" {
		u.Name = au.Metadata.Name
	}
	if u.Name == "" {
		u.Name = au.Email
	}
	u.AvatarURL = au.Metadata.AvatarURL
	if u.AvatarURL == "" {
		u.AvatarURL = au.Metadata.Picture
	}
	return u, au.Metadata.Sub, nil
}

func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/v1/logout", nil, accessToken, "")
	return err
}

func firstRow[T any](b []byte) (T, error) {
	var rows []T
	var zero T
	if err := json.Unmarshal(b, &rows); err != nil {
		return zero, fmt.Errorf("remote store: decode row: %w", err)
	}
	if len(rows) == 0 {
		return zero, fmt.Errorf("remote store: empty response")
	}
	return rows[0], nil
}
