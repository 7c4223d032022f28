package classifier

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ecommerce-support-agent/internal/model"
	"ecommerce-support-agent/pkg/huggingface"
	pkgLog "ecommerce-support-agent/pkg/log"
)

// HuggingFaceClassifier classifies intent with a zero-shot model on the
// HF Inference API.
type HuggingFaceClassifier struct {
	client  huggingface.IHuggingFace
	timeout time.Duration
	l       pkgLog.Logger
}

var _ Classifier = (*HuggingFaceClassifier)(nil)

// NewHuggingFace creates a zero-shot backed classifier.
func NewHuggingFace(client huggingface.IHuggingFace, timeout time.Duration, l pkgLog.Logger) *HuggingFaceClassifier {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HuggingFaceClassifier{
		client:  client,
		timeout: timeout,
		l:       l,
	}
}

// Classify runs zero-shot classification over the candidate intent labels.
// The top two labels fill Result so the router can break near-ties.
func (c *HuggingFaceClassifier) Classify(ctx context.Context, text string, history []string) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	sequence := text
	if len(history) > 0 {
		sequence = strings.Join(history, "\n") + "\n" + text
	}

	resp, err := c.client.Classify(ctx, sequence, candidateLabels())
	if err != nil {
		return Result{}, fmt.Errorf("%s: zero-shot call failed: %w", LogPrefixClassify, err)
	}

	if len(resp.Labels) == 0 {
		c.l.Warnf(ctx, "%s: empty zero-shot response", LogPrefixClassify)
		return Result{Intent: model.IntentUnknown, Confidence: 0}, nil
	}

	top, verbatim := normalizeIntent(resp.Labels[0], text)
	if top == model.IntentUnknown {
		return Result{Intent: model.IntentUnknown, Confidence: 0}, nil
	}

	result := Result{
		Intent:     top,
		Confidence: clamp01(resp.Scores[0]),
	}
	if !verbatim {
		result.Confidence = KeywordFallbackConfidence
	}

	if len(resp.Labels) > 1 {
		if alt := model.Intent(resp.Labels[1]); alt.Valid() {
			result.AltIntent = alt
			result.AltConfidence = clamp01(resp.Scores[1])
		}
	}

	c.l.Infof(ctx, "%s: classified as %s (confidence: %.2f)", LogPrefixClassify, result.Intent, result.Confidence)
	return result, nil
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
