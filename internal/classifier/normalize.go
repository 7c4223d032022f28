package classifier

import (
	"strings"

	"ecommerce-support-agent/internal/model"
)

// normalizeIntent maps a backend label that is not in the closed intent set
// to the best keyword match, or unknown when nothing matches.
func normalizeIntent(raw string, utterance string) (model.Intent, bool) {
	candidate := model.Intent(strings.ToLower(strings.TrimSpace(raw)))
	if candidate != model.IntentUnknown && candidate.Valid() {
		return candidate, true
	}

	lower := strings.ToLower(utterance)
	switch {
	case strings.Contains(lower, "refund"):
		return model.IntentRefundCheck, false
	case strings.Contains(lower, "review"):
		return model.IntentReviewLookup, false
	case strings.Contains(lower, "detail") || strings.Contains(lower, "item"):
		return model.IntentOrderDetails, false
	case strings.Contains(lower, "payment") || strings.Contains(lower, "paid"):
		return model.IntentPaymentInfo, false
	case strings.Contains(lower, "seller"):
		return model.IntentSellerInfo, false
	case strings.Contains(lower, "order"):
		return model.IntentOrderStatus, false
	}
	return model.IntentUnknown, false
}

// candidateLabels returns the closed intent set as plain strings.
func candidateLabels() []string {
	labels := make([]string, 0, len(model.Intents))
	for _, i := range model.Intents {
		labels = append(labels, string(i))
	}
	return labels
}
