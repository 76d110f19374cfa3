package service

import (
	"github.com/marketfold/fund-analyzer/internal/analytics"
	"github.com/marketfold/fund-analyzer/internal/model"
	"github.com/marketfold/fund-analyzer/internal/repository"
	"github.com/marketfold/fund-analyzer/internal/snapshot"
)

// FundService serves fund analytics from the persisted snapshot and the
// daily price cache. The snapshot is regenerated by the ingest job; this
// service never writes it.
type FundService struct {
	store     *snapshot.Store
	priceRepo *repository.PriceRepository
}

// NewFundService creates a FundService over a snapshot store and price repository.
func NewFundService(store *snapshot.Store, priceRepo *repository.PriceRepository) *FundService {
	return &FundService{
		store:     store,
		priceRepo: priceRepo,
	}
}

// GetAllStats returns the stats list for every fund in the snapshot.
func (s *FundService) GetAllStats() ([]model.FundStats, error) {
	return s.store.LoadStats()
}

// GetFund returns the full detail record for one ticker.
func (s *FundService) GetFund(ticker string) (*model.FundDetail, error) {
	return s.store.LoadFund(ticker)
}

// GetReturnsMatrix returns the cross-sectional returns matrix.
func (s *FundService) GetReturnsMatrix() (*analytics.ReturnsMatrix, error) {
	return s.store.LoadMatrix()
}

// GetPriceHistory returns the cached daily NAV history for a ticker.
func (s *FundService) GetPriceHistory(ticker string) ([]model.FundPrice, error) {
	return s.priceRepo.GetPrices(ticker)
}
