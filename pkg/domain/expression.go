package domain

// Expression is one variant of the character's facial expression.
// The set is closed: every pre-rendered sequence endpoint names one of these.
type Expression string

const (
	ExprNeutral     Expression = "neutral"
	ExprHappySoft   Expression = "happy_soft"
	ExprHappyBig    Expression = "happy_big"
	ExprSpeakingAh  Expression = "speaking_ah"
	ExprSpeakingEe  Expression = "speaking_ee"
	ExprSpeakingUw  Expression = "speaking_uw"
	ExprOhRound     Expression = "oh_round"
	ExprConcerned   Expression = "concerned"
	ExprSurprisedAh Expression = "surprised_ah"
	ExprBlink       Expression = "blink"
)

// Expressions returns all known expressions in a stable order.
func Expressions() []Expression {
	return []Expression{
		ExprNeutral,
		ExprHappySoft,
		ExprHappyBig,
		ExprSpeakingAh,
		ExprSpeakingEe,
		ExprSpeakingUw,
		ExprOhRound,
		ExprConcerned,
		ExprSurprisedAh,
		ExprBlink,
	}
}

// Valid reports whether e is a member of the closed expression set.
func (e Expression) Valid() bool {
	for _, known := range Expressions() {
		if e == known {
			return true
		}
	}
	return false
}
