package api

import (
	"context"
	"net/url"
	"strconv"

	"bitbucket.org/mmdatafocus/pos_frontend/models"
)

// GetProducts fetches the current catalog, optionally filtered by category.
// The response replaces any previously fetched snapshot wholesale; there is
// no client-side caching beyond "last response wins".
func (c *Client) GetProducts(ctx context.Context, sess Session, categoryID int) ([]models.Product, error) {
	if !sess.Authenticated() {
		c.skipUnauthenticated("GetProducts")
		return []models.Product{}, nil
	}

	query := url.Values{}
	if categoryID > 0 {
		query.Set("categoryId", strconv.Itoa(categoryID))
	}

	body, err := c.get(ctx, sess, "/Product", query)
	if err != nil {
		return nil, err
	}
	return models.DecodeProducts(body)
}

func (c *Client) GetCategories(ctx context.Context, sess Session) ([]models.Category, error) {
	if !sess.Authenticated() {
		c.skipUnauthenticated("GetCategories")
		return []models.Category{}, nil
	}

	body, err := c.get(ctx, sess, "/Category", nil)
	if err != nil {
		return nil, err
	}
	return models.DecodeCategories(body)
}
