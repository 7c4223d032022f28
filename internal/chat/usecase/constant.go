package usecase

// turnState names one stage of a turn. Transitions are enumerated in
// handleTurn; there is no hidden control flow between stages.
type turnState int

const (
	stateAwaitingInput turnState = iota
	stateClassifying
	stateDispatching
	stateExecuting
	stateComposing
	stateDone
)

func (s turnState) String() string {
	switch s {
	case stateAwaitingInput:
		return "awaiting_input"
	case stateClassifying:
		return "classifying"
	case stateDispatching:
		return "dispatching"
	case stateExecuting:
		return "executing"
	case stateComposing:
		return "composing"
	case stateDone:
		return "done"
	}
	return "invalid"
}

// Fixed response lines. Tool results are composed in compose.go.
const (
	msgClarifyOrderID = "I can help with that, but I need your order number. Could you share the 32-character order id from your confirmation email?"
	msgOrderNotFound  = "I couldn't find any order with id %s. Please double-check the number and try again."
	msgNoFAQMatch     = "I'm sorry, I don't have an answer for that yet. Could you rephrase the question, or share your order number if it's about a specific order?"
	msgFAQUnavailable = "I'm sorry, I can't look that up right now. Please try again in a moment."
)
