package ratesclient

import (
	"context"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	ratesdomain "github.com/uniqverse/marketplace-api/infrastructure/integrator/rates/domain"
	"github.com/uniqverse/marketplace-api/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Client interface {
	GetLatest(ctx context.Context, base string) (*ratesdomain.LatestRates, error)
}

type RatesClient struct {
	httpClient *http.Client
	config     config.Rates
}

func NewClient(cfg config.Rates) Client {
	return &RatesClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		config: cfg,
	}
}
