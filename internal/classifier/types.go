package classifier

import "ecommerce-support-agent/internal/model"

// Result is the outcome of one classification.
// Confidence is normalized to [0,1]. AltIntent carries the runner-up label
// when the backend produces one (zero-shot backends do); the router uses it
// to break near-ties between faq and an order-scoped intent.
type Result struct {
	Intent        model.Intent
	Confidence    float64
	AltIntent     model.Intent
	AltConfidence float64
}
