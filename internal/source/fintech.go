package source

import "github.com/vietdv201/EzFinance-Interest-tracker/internal/model"

// FintechSource serves the fintech/bond product table. The dataset is
// embedded and decoded once per process; it has no failure modes and never
// expires.
type FintechSource struct{}

func NewFintechSource() *FintechSource {
	return &FintechSource{}
}

// Load returns the product rows. Constant for the process lifetime.
func (s *FintechSource) Load() []model.FintechProduct {
	return FintechProducts()
}
