package mt4

// UserRecord mirrors the native account record. Times are absolute
// seconds since epoch, exactly as the server reports them.
type UserRecord struct {
	Login    int
	Group    string
	Name     string
	Email    string
	Balance  float64
	Credit   float64
	RegDate  int64
	LastDate int64
	Leverage int
}

// ConSymbol is the static configuration of a tradable symbol.
type ConSymbol struct {
	Symbol       string
	Description  string
	Currency     string
	Digits       int
	Point        float64
	Spread       int
	ContractSize float64
	TickValue    float64
	TickSize     float64
}

// SymbolInfo is the live quote slice for a symbol.
type SymbolInfo struct {
	Symbol   string
	Bid      float64
	Ask      float64
	LastTime int64
}

// TradeRecord mirrors the native trade record. Volume is in lot-size
// units (one lot = 100 units). A zero CloseTime marks an open trade.
type TradeRecord struct {
	Order      int
	Login      int
	Symbol     string
	Cmd        TradeCommand
	Volume     int32
	OpenPrice  float64
	ClosePrice float64
	SL         float64
	TP         float64
	OpenTime   int64
	CloseTime  int64
	Profit     float64
	Commission float64
	Storage    float64
	Comment    string
}

// TradeTransInfo is the transaction descriptor submitted through
// TradeTransaction. The Comment field is capped at CommentLength
// bytes on the wire.
type TradeTransInfo struct {
	Type    TransType
	Cmd     TradeCommand
	Order   int
	OrderBy int
	Symbol  string
	Volume  int32
	Price   float64
	SL      float64
	TP      float64
	Comment string
}

// MarginLevel is the server-computed margin summary for one login.
type MarginLevel struct {
	Login       int
	Balance     float64
	Equity      float64
	Margin      float64
	MarginFree  float64
	MarginLevel float64
}

// OnlineRecord identifies one currently-connected user.
type OnlineRecord struct {
	Login int
	IP    string
}
