package usecase

import (
	"ecommerce-support-agent/internal/chat"
	"ecommerce-support-agent/internal/classifier"
	"ecommerce-support-agent/internal/faq"
	"ecommerce-support-agent/internal/interaction"
	"ecommerce-support-agent/internal/order"
	"ecommerce-support-agent/internal/session"
	pkgLog "ecommerce-support-agent/pkg/log"
	"ecommerce-support-agent/pkg/openai"
)

// Options tune the dispatch policy and composition.
type Options struct {
	// ConfidenceFloor routes low-confidence classifications to FAQ search.
	ConfidenceFloor float64
	// TieEpsilon is the band within which an order-scoped intent wins a
	// near-tie against faq.
	TieEpsilon float64
	// HistoryTurns is how many recent user turns feed the classifier.
	HistoryTurns int
	// FAQTopK caps the number of FAQ candidates retrieved per query.
	FAQTopK int
	// RephraseEnabled runs a best-effort LLM pass over composed replies.
	RephraseEnabled bool
}

const (
	DefaultConfidenceFloor = 0.45
	DefaultTieEpsilon      = 0.10
	DefaultHistoryTurns    = 3
	DefaultFAQTopK         = 3
)

func (o Options) withDefaults() Options {
	if o.ConfidenceFloor <= 0 {
		o.ConfidenceFloor = DefaultConfidenceFloor
	}
	if o.TieEpsilon <= 0 {
		o.TieEpsilon = DefaultTieEpsilon
	}
	if o.HistoryTurns <= 0 {
		o.HistoryTurns = DefaultHistoryTurns
	}
	if o.FAQTopK <= 0 {
		o.FAQTopK = DefaultFAQTopK
	}
	return o
}

type implUseCase struct {
	l          pkgLog.Logger
	classifier classifier.Classifier
	orders     order.Store
	faqs       faq.Repository
	sessions   *session.Store
	emitter    *interaction.Emitter
	rephraser  openai.IOpenAI // nil unless RephraseEnabled
	opts       Options
}

// New creates the routing engine use case.
func New(
	l pkgLog.Logger,
	cls classifier.Classifier,
	orders order.Store,
	faqs faq.Repository,
	sessions *session.Store,
	emitter *interaction.Emitter,
	rephraser openai.IOpenAI,
	opts Options,
) chat.UseCase {
	return &implUseCase{
		l:          l,
		classifier: cls,
		orders:     orders,
		faqs:       faqs,
		sessions:   sessions,
		emitter:    emitter,
		rephraser:  rephraser,
		opts:       opts.withDefaults(),
	}
}
