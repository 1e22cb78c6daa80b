package handler

import (
	"net/http"

	"github.com/uniqverse/marketplace-api/internal/domain"
	"github.com/uniqverse/marketplace-api/internal/usecases/converting"
)

type CurrenciesResponse struct {
	Base      domain.Currency   `json:"base"`
	Supported []domain.Currency `json:"supported"`
}

func ListCurrencies(converter converting.Converter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeSuccess(w, r, http.StatusOK, CurrenciesResponse{
			Base:      converter.Base(),
			Supported: converter.Supported(),
		})
	}
}
