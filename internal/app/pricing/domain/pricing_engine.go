package domain

// PricingEngine is the domain service that turns a quote and a rule set into an
// automatic discount. It holds no state: every call is independent, so one engine
// may serve any number of goroutines.
//
// The pipeline is ExtractFacts -> MatchEligible -> Resolve.
type PricingEngine struct{}

// NewPricingEngine creates a new PricingEngine instance.
func NewPricingEngine() *PricingEngine {
	return &PricingEngine{}
}

var defaultPricingEngine = NewPricingEngine()

// Evaluate computes the automatic discount for quote under rules.
// Neither argument is modified.
func (pe *PricingEngine) Evaluate(quote *Quote, rules []*CustomerPricingRule) *EvaluationResult {
	facts := ExtractFacts(quote)
	return Resolve(MatchEligible(facts, rules), facts)
}

// CalculateAutomaticDiscount evaluates quote against rules with the package engine.
func CalculateAutomaticDiscount(quote *Quote, rules []*CustomerPricingRule) *EvaluationResult {
	return defaultPricingEngine.Evaluate(quote, rules)
}
