package api

import (
	"context"

	"bitbucket.org/mmdatafocus/pos_frontend/models"
)

func (c *Client) GetDashboardStats(ctx context.Context, sess Session) (*models.DashboardStats, error) {
	if !sess.Authenticated() {
		c.skipUnauthenticated("GetDashboardStats")
		return &models.DashboardStats{}, nil
	}

	body, err := c.get(ctx, sess, "/Dashboard/stats", nil)
	if err != nil {
		return nil, err
	}
	return models.DecodeDashboardStats(body)
}

func (c *Client) GetTopSelling(ctx context.Context, sess Session) ([]models.TopSellingProduct, error) {
	if !sess.Authenticated() {
		c.skipUnauthenticated("GetTopSelling")
		return []models.TopSellingProduct{}, nil
	}

	body, err := c.get(ctx, sess, "/Dashboard/top-selling", nil)
	if err != nil {
		return nil, err
	}
	return models.DecodeTopSelling(body)
}

func (c *Client) GetReorderAlerts(ctx context.Context, sess Session) ([]models.ReorderAlert, error) {
	if !sess.Authenticated() {
		c.skipUnauthenticated("GetReorderAlerts")
		return []models.ReorderAlert{}, nil
	}

	body, err := c.get(ctx, sess, "/Dashboard/reorder-alerts", nil)
	if err != nil {
		return nil, err
	}
	return models.DecodeReorderAlerts(body)
}
