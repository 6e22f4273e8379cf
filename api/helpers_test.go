package api_test

import (
	"github.com/shopspring/decimal"

	"bitbucket.org/mmdatafocus/pos_frontend/models"
)

func validSale() models.NewSale {
	return models.NewSale{
		Items: []models.NewSaleItem{
			{ProductId: 1, Quantity: 2},
		},
		Discount:      decimal.Zero,
		Tax:           decimal.Zero,
		PaymentMethod: models.PaymentMethodCash,
	}
}
