package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"bitbucket.org/mmdatafocus/pos_frontend/models"
	"bitbucket.org/mmdatafocus/pos_frontend/utils"
)

// GetSales lists recorded sales, newest first.
func (c *Client) GetSales(ctx context.Context, sess Session) ([]models.Sale, error) {
	if !sess.Authenticated() {
		c.skipUnauthenticated("GetSales")
		return []models.Sale{}, nil
	}

	body, err := c.get(ctx, sess, "/Sale", nil)
	if err != nil {
		return nil, err
	}
	return models.DecodeSales(body)
}

func (c *Client) GetSaleByID(ctx context.Context, sess Session, saleID int) (*models.DetailedSale, error) {
	if !sess.Authenticated() {
		return nil, ErrMissingCredential
	}

	body, err := c.get(ctx, sess, fmt.Sprintf("/Sale/%d", saleID), nil)
	if err != nil {
		var rejected *ServerRejectedError
		if errors.As(err, &rejected) && rejected.StatusCode == http.StatusNotFound {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	return models.DecodeDetailedSale(body)
}

// SubmitSale posts a finished draft sale. Unit prices are not part of the
// payload; the server reprices authoritatively from its own catalog state.
// Failures are never retried here: the caller keeps the draft unchanged so
// the user can resubmit.
func (c *Client) SubmitSale(ctx context.Context, sess Session, sale models.NewSale) (*models.SaleConfirmation, error) {
	if !sess.Authenticated() {
		// A write must not silently no-op.
		return nil, ErrMissingCredential
	}
	if err := models.Validate(&sale); err != nil {
		return nil, fmt.Errorf("invalid sale payload: %w", err)
	}

	body, err := c.postJSON(ctx, sess, "/Sale", sale)
	if err != nil {
		return nil, err
	}

	var confirmation models.SaleConfirmation
	if err := decodeConfirmation(body, &confirmation); err != nil {
		return nil, err
	}
	return &confirmation, nil
}

func decodeConfirmation(body []byte, confirmation *models.SaleConfirmation) error {
	if err := json.Unmarshal(body, confirmation); err != nil {
		return fmt.Errorf("decode sale confirmation: %w", err)
	}
	if err := models.Validate(confirmation); err != nil {
		return fmt.Errorf("invalid sale confirmation: %w", err)
	}
	return nil
}
