package constant

type DiscountType string

const (
	DiscountTypePercentage   DiscountType = "percentage"
	DiscountTypeFixedAmount  DiscountType = "fixed_amount"
	DiscountTypeFreeShipping DiscountType = "free_shipping"
	DiscountTypeBuyOneGetOne DiscountType = "buy_one_get_one"
)

// IsValid reports whether t is one of the supported discount kinds.
func (t DiscountType) IsValid() bool {
	switch t {
	case DiscountTypePercentage, DiscountTypeFixedAmount, DiscountTypeFreeShipping, DiscountTypeBuyOneGetOne:
		return true
	}
	return false
}

type RuleType string

const (
	RuleTypeMinimumPurchase  RuleType = "minimum_purchase"
	RuleTypeSpecificProducts RuleType = "specific_products"
	RuleTypeMinimumQuantity  RuleType = "minimum_quantity"
	RuleTypeExcludeProducts  RuleType = "exclude_products"
)

// IsValid reports whether t is one of the supported rule kinds.
func (t RuleType) IsValid() bool {
	switch t {
	case RuleTypeMinimumPurchase, RuleTypeSpecificProducts, RuleTypeMinimumQuantity, RuleTypeExcludeProducts:
		return true
	}
	return false
}

type DiscountStrategy string

const (
	StrategyNone    DiscountStrategy = "none"
	StrategySingle  DiscountStrategy = "single"
	StrategyStacked DiscountStrategy = "stacked"
)
