package usecase

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"ecommerce-support-agent/internal/chat"
	"ecommerce-support-agent/internal/interaction"
	"ecommerce-support-agent/internal/model"
	"ecommerce-support-agent/internal/order"
)

// turnContext carries one turn through the state machine.
type turnContext struct {
	utterance string
	state     *model.ConversationState

	intent     model.Intent
	confidence float64

	orderID string
	useFAQ  bool
	clarify bool

	// set during execution, invoked during composition
	compose func() (response, summary string)
	tool    string
	// a structured lookup succeeded for orderID this turn
	resolved bool

	response string
	summary  string
}

// Handle processes one turn for a session. Turns of the same session are
// serialized; distinct sessions proceed concurrently.
func (uc *implUseCase) Handle(ctx context.Context, input chat.HandleInput) (chat.HandleOutput, error) {
	if strings.TrimSpace(input.Message) == "" {
		return chat.HandleOutput{}, chat.ErrEmptyMessage
	}

	state := uc.sessions.Get(ctx, input.SessionID)
	mu := uc.sessions.Lock(state.SessionID)
	mu.Lock()
	defer mu.Unlock()

	started := time.Now()
	tc, err := uc.handleTurn(ctx, input.Message, state)
	if err != nil {
		return chat.HandleOutput{}, err
	}
	uc.sessions.Put(ctx, state)

	uc.emitter.Emit(ctx, interaction.Record{
		SessionID:     state.SessionID,
		Utterance:     input.Message,
		Intent:        tc.intent,
		Confidence:    tc.confidence,
		ToolUsed:      tc.tool,
		ResultSummary: tc.summary,
		Latency:       time.Since(started),
		Timestamp:     started,
	})

	return chat.HandleOutput{
		SessionID:  state.SessionID,
		Response:   tc.response,
		Intent:     tc.intent,
		Confidence: tc.confidence,
	}, nil
}

// handleTurn runs the turn state machine. Every transition is enumerated
// here; stages never jump past one another.
func (uc *implUseCase) handleTurn(ctx context.Context, utterance string, state *model.ConversationState) (*turnContext, error) {
	tc := &turnContext{utterance: utterance, state: state}

	for st := stateAwaitingInput; st != stateDone; {
		uc.l.Debugf(ctx, "chat usecase: session=%s state=%s", state.SessionID, st)
		switch st {
		case stateAwaitingInput:
			st = stateClassifying
		case stateClassifying:
			uc.classify(ctx, tc)
			st = stateDispatching
		case stateDispatching:
			uc.dispatch(ctx, tc)
			st = stateExecuting
		case stateExecuting:
			if err := uc.execute(ctx, tc); err != nil {
				return nil, err
			}
			st = stateComposing
		case stateComposing:
			uc.finishTurn(ctx, tc)
			st = stateDone
		}
	}
	return tc, nil
}

// classify invokes the classifier and applies the near-tie rule. A failing
// or timed-out classifier degrades to (unknown, 0), which dispatch routes
// to FAQ search.
func (uc *implUseCase) classify(ctx context.Context, tc *turnContext) {
	history := tc.state.RecentUserTexts(uc.opts.HistoryTurns)

	res, err := uc.classifier.Classify(ctx, tc.utterance, history)
	if err != nil {
		uc.l.Warnf(ctx, "chat usecase: classifier failed, degrading to FAQ path: %v", err)
		tc.intent, tc.confidence = model.IntentUnknown, 0
		return
	}
	tc.intent, tc.confidence = res.Intent, res.Confidence

	// Near-tie between faq and an order-scoped intent: prefer the
	// order-scoped one. A wrong structured lookup fails cleanly with
	// not-found; a wrong FAQ match fails silently.
	if res.AltIntent.Valid() && math.Abs(res.Confidence-res.AltConfidence) <= uc.opts.TieEpsilon {
		if tc.intent == model.IntentFAQ && res.AltIntent.OrderScoped() {
			uc.l.Infof(ctx, "chat usecase: near-tie %s/%s, preferring order-scoped %s",
				tc.intent, res.AltIntent, res.AltIntent)
			tc.intent, tc.confidence = res.AltIntent, res.AltConfidence
		}
	}
}

// dispatch decides which tool runs this turn and resolves the order id.
func (uc *implUseCase) dispatch(ctx context.Context, tc *turnContext) {
	if tc.intent == model.IntentFAQ || tc.intent == model.IntentUnknown || tc.confidence < uc.opts.ConfidenceFloor {
		tc.useFAQ = true
		return
	}

	tc.orderID = extractOrderID(tc.utterance)
	if tc.orderID == "" && tc.state.LastOrderID != "" {
		// Reference resolution: "what about the payment?" inherits the
		// order discussed in an earlier turn.
		uc.l.Debugf(ctx, "chat usecase: inheriting order id %s from state", tc.state.LastOrderID)
		tc.orderID = tc.state.LastOrderID
	}
	if tc.orderID == "" {
		tc.clarify = true
	}
}

// execute runs the chosen tool once. No automatic retries: a missing order
// is a business fact, not a transient error.
func (uc *implUseCase) execute(ctx context.Context, tc *turnContext) error {
	switch {
	case tc.clarify:
		tc.tool = interaction.ToolNone
		tc.compose = func() (string, string) {
			return msgClarifyOrderID, "clarification requested"
		}
		return nil
	case tc.useFAQ:
		uc.executeFAQ(ctx, tc)
		return nil
	default:
		return uc.executeOrder(ctx, tc)
	}
}

// executeFAQ runs semantic search. Index unavailability is recoverable:
// the user gets an apology, never a stack trace.
func (uc *implUseCase) executeFAQ(ctx context.Context, tc *turnContext) {
	tc.tool = interaction.ToolFAQSearch

	matches, err := uc.faqs.Search(ctx, tc.utterance, uc.opts.FAQTopK)
	if err != nil {
		uc.l.Errorf(ctx, "chat usecase: faq search failed: %v", err)
		tc.compose = func() (string, string) {
			return msgFAQUnavailable, "faq search unavailable"
		}
		return
	}
	if len(matches) == 0 {
		tc.compose = func() (string, string) {
			return msgNoFAQMatch, "no faq match"
		}
		return
	}

	top := matches[0]
	tc.compose = func() (string, string) {
		return composeFAQ(top), "faq matched: " + top.Entry.Question
	}
}

// executeOrder calls the structured query method matching the intent.
// ErrOrderNotFound becomes a not-found reply; it never falls back to FAQ
// search, which would silently answer the wrong question.
func (uc *implUseCase) executeOrder(ctx context.Context, tc *turnContext) error {
	tc.tool = interaction.ToolStructuredQuery

	var err error
	switch tc.intent {
	case model.IntentOrderStatus:
		var o model.Order
		if o, err = uc.orders.OrderStatus(ctx, tc.orderID); err == nil {
			tc.compose = func() (string, string) { return composeStatus(o), "status " + string(o.Status) }
		}
	case model.IntentOrderDetails:
		var d order.Details
		if d, err = uc.orders.OrderDetails(ctx, tc.orderID); err == nil {
			tc.compose = func() (string, string) { return composeDetails(d), "full details" }
		}
	case model.IntentRefundCheck:
		var r order.RefundResult
		if r, err = uc.orders.RefundCheck(ctx, tc.orderID); err == nil {
			tc.compose = func() (string, string) { return composeRefund(r), "refund check" }
		}
	case model.IntentReviewLookup:
		var revs []model.Review
		if revs, err = uc.orders.Review(ctx, tc.orderID); err == nil {
			tc.compose = func() (string, string) { return composeReviews(tc.orderID, revs), "reviews" }
		}
	case model.IntentItemBreakdown:
		var items []order.ItemDetail
		if items, err = uc.orders.Items(ctx, tc.orderID); err == nil {
			tc.compose = func() (string, string) { return composeItems(tc.orderID, items), "item breakdown" }
		}
	case model.IntentSellerInfo:
		var sellers []model.Seller
		if sellers, err = uc.orders.SellerInfo(ctx, tc.orderID); err == nil {
			tc.compose = func() (string, string) { return composeSellers(tc.orderID, sellers), "seller info" }
		}
	case model.IntentPaymentInfo:
		var pays []model.Payment
		if pays, err = uc.orders.PaymentInfo(ctx, tc.orderID); err == nil {
			tc.compose = func() (string, string) { return composePayments(tc.orderID, pays), "payment info" }
		}
	case model.IntentCustomerLocation:
		var c model.Customer
		if c, err = uc.orders.CustomerLocation(ctx, tc.orderID); err == nil {
			tc.compose = func() (string, string) { return composeCustomer(tc.orderID, c), "customer location" }
		}
	}

	if errors.Is(err, order.ErrOrderNotFound) {
		orderID := tc.orderID
		tc.compose = func() (string, string) {
			return composeNotFound(orderID), "order not found"
		}
		return nil
	}
	if err != nil {
		// Structured store unreachable: no correct answer is possible.
		uc.l.Errorf(ctx, "chat usecase: structured lookup failed: %v", err)
		return err
	}

	tc.resolved = true
	return nil
}

// finishTurn composes the reply and mutates conversation state.
func (uc *implUseCase) finishTurn(ctx context.Context, tc *turnContext) {
	tc.response, tc.summary = tc.compose()
	tc.response = uc.rephrase(ctx, tc.response)

	limit := uc.opts.HistoryTurns * 2 // user+agent pairs
	tc.state.AppendTurn(model.RoleUser, tc.utterance, limit)
	tc.state.AppendTurn(model.RoleAgent, tc.response, limit)
	tc.state.LastIntent = tc.intent
	if tc.resolved && tc.orderID != "" {
		tc.state.LastOrderID = tc.orderID
	}
}
