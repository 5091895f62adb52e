package services

import (
	"strings"
)

const (
	BaseAmount          = 50
	WeightStepGrams     = 100
	AmountPerWeightStep = 10
	WordsPerStep        = 5
	AmountPerWordStep   = 20

	// BulkAmount is charged for every bulk imported shipment regardless of its contents.
	BulkAmount = BaseAmount
)

// PricingCalculator derives the shipping charge in INR:
//
//	50 + floor(weightGrams/100)*10 + floor(words(description)/5)*20
//
// Words are runs of non-space characters. The result depends on its inputs only.
type PricingCalculator struct {
	policy ValidationPolicy
}

func NewPricingCalculator(policy ValidationPolicy) PricingCalculator {
	return PricingCalculator{policy: policy}
}

func (c PricingCalculator) Price(weightGrams int, description string) (int, error) {
	if err := c.policy.ValidateWeightGrams(weightGrams); err != nil {
		return 0, err
	}
	words := len(strings.Fields(description))
	return BaseAmount +
		(weightGrams/WeightStepGrams)*AmountPerWeightStep +
		(words/WordsPerStep)*AmountPerWordStep, nil
}

// BulkPrice is the flat amount of a bulk imported row.
func (c PricingCalculator) BulkPrice() int {
	return BulkAmount
}
