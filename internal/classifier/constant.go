package classifier

import "time"

// Log prefixes
const (
	LogPrefixClassify = "internal.classifier.Classify"
)

// Prompts for the LLM-backed backend.
const (
	PromptClassifySystem = `You are an intent classifier for an e-commerce customer support agent.
Classify the user's message into exactly one of these intents:
order_status, order_details, refund_check, review_lookup, item_breakdown, seller_info, payment_info, customer_location, faq.

Use faq for general policy or how-to questions that are not about one specific order.

Return JSON with this format and nothing else:
{
  "intent": "<one of the intents>",
  "confidence": <integer 0-100>
}

Message: "%s"`

	PromptHistoryPrefix = "Recent conversation:\n"
)

// Classification settings.
const (
	ClassifyTemperature = 0.1
	DefaultTimeout      = 10 * time.Second

	// Confidence assigned when the backend output had to be normalized by
	// keyword matching rather than taken verbatim.
	KeywordFallbackConfidence = 0.5
)
