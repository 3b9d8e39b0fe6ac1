package service

import (
	"context"

	"github.com/kikoi/portfolio-backend/internal/apperr"
	"github.com/kikoi/portfolio-backend/pkg/rates"
)

// RatesService returns the current currency rate table.
type RatesService interface {
	Latest(ctx context.Context) (rates.Table, error)
}

type ratesServiceImpl struct {
	client rates.Client
}

// NewRatesService wraps client. Every call is answered by client.
func NewRatesService(client rates.Client) RatesService {
	return &ratesServiceImpl{client: client}
}

func (s *ratesServiceImpl) Latest(ctx context.Context) (rates.Table, error) {
	t, err := s.client.Latest(ctx)
	if err != nil {
		return rates.Table{}, apperr.Upstream("rates", "latest", err)
	}
	return t, nil
}
