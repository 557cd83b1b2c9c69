package mt4

// APIVersion is the manager API version this adapter is built against.
const APIVersion = 100

// CommentLength is the capacity of the comment field in a transaction
// descriptor. Longer comments are truncated before submission.
const CommentLength = 32

// TradeCommand is the native order kind. The discriminants are part of
// the wire contract and must not be renumbered.
type TradeCommand int

const (
	OpBuy       TradeCommand = 0
	OpSell      TradeCommand = 1
	OpBuyLimit  TradeCommand = 2
	OpSellLimit TradeCommand = 3
	OpBuyStop   TradeCommand = 4
	OpSellStop  TradeCommand = 5
	OpBalance   TradeCommand = 6
	OpCredit    TradeCommand = 7
)

func (c TradeCommand) String() string {
	switch c {
	case OpBuy:
		return "Buy"
	case OpSell:
		return "Sell"
	case OpBuyLimit:
		return "Buy Limit"
	case OpSellLimit:
		return "Sell Limit"
	case OpBuyStop:
		return "Buy Stop"
	case OpSellStop:
		return "Sell Stop"
	case OpBalance:
		return "Balance"
	case OpCredit:
		return "Credit"
	}
	return "Unknown"
}

// IsOrder reports whether the command is one of the six order kinds a
// broker-side open may carry. Balance and credit adjustments go
// through dedicated server operations, never through an open.
func (c TradeCommand) IsOrder() bool {
	return c >= OpBuy && c <= OpSellStop
}

// TransType selects the transaction flavor in a TradeTransInfo.
// Broker-side transactions run with the authority of the logged-in
// manager. Discriminants match the native enum.
type TransType int

const (
	TransBrOrderOpen   TransType = 70
	TransBrOrderClose  TransType = 71
	TransBrOrderModify TransType = 72
)

// Return codes of the native API. RetOK is the only success code for
// the calls this adapter issues.
const (
	RetOK              = 0
	RetOKNone          = 1
	RetError           = 2
	RetInvalidData     = 3
	RetTechProblem     = 4
	RetOldVersion      = 5
	RetNoConnect       = 6
	RetNotEnoughRights = 7
	RetTooFrequent     = 8
	RetMalfunction     = 9
	RetAccountDisabled = 64
	RetBadAccountInfo  = 65
	RetTradeTimeout    = 128
	RetTradeBadPrices  = 129
	RetTradeBadVolume  = 131
	RetTradeOffquotes  = 136
)
