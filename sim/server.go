// Package sim is an in-memory MT4 server implementing
// mt4.ManagerInterface. It backs the test suite and the CLI's mock
// mode: trades get tickets, the clock advances monotonically, query
// buffers are allocation-tracked, and any operation can be made to
// fail once with a chosen return code.
package sim

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rustyeddy/mt4adm/mt4"
)

type Server struct {
	mu sync.Mutex

	connected bool
	loggedIn  bool
	login     int
	released  bool

	users   map[int]mt4.UserRecord
	creds   map[int]string
	symbols map[string]mt4.ConSymbol
	quotes  map[string]mt4.SymbolInfo
	trades  map[int]*mt4.TradeRecord
	online  map[int]string

	nextTicket int
	clock      int64

	failNext map[string]int

	allocs      int
	frees       int
	doubleFrees int
}

func NewServer() *Server {
	return &Server{
		users:      make(map[int]mt4.UserRecord),
		creds:      make(map[int]string),
		symbols:    make(map[string]mt4.ConSymbol),
		quotes:     make(map[string]mt4.SymbolInfo),
		trades:     make(map[int]*mt4.TradeRecord),
		online:     make(map[int]string),
		nextTicket: 100001,
		clock:      1700000000,
		failNext:   make(map[string]int),
	}
}

// Seeding helpers. Not part of mt4.ManagerInterface.

func (s *Server) AddAccount(rec mt4.UserRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[rec.Login] = rec
}

// SetCredentials pins a manager password for a login. Without any
// pinned credentials the server accepts every login attempt.
func (s *Server) SetCredentials(login int, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds[login] = password
}

func (s *Server) AddSymbol(cs mt4.ConSymbol) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.symbols[cs.Symbol] = cs
}

func (s *Server) SetQuote(info mt4.SymbolInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	info.LastTime = s.tick()
	s.quotes[info.Symbol] = info
}

func (s *Server) AddTrade(rec mt4.TradeRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec.Order >= s.nextTicket {
		s.nextTicket = rec.Order + 1
	}
	r := rec
	s.trades[rec.Order] = &r
}

func (s *Server) SetOnline(login int, ip string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.online[login] = ip
}

func (s *Server) SetOffline(login int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.online, login)
}

// FailNext makes the next call to the named operation (e.g.
// "TradesRequest") return the given code instead of executing.
func (s *Server) FailNext(op string, code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext[op] = code
}

// DropConnection simulates a connection loss observed server-side.
func (s *Server) DropConnection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = false
	s.loggedIn = false
}

// Allocation accounting, for leak assertions.

func (s *Server) Allocs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.allocs
}

func (s *Server) Frees() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frees
}

func (s *Server) DoubleFrees() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doubleFrees
}

// Leaks returns the number of live (allocated, never freed) buffers.
func (s *Server) Leaks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.allocs - s.frees
}

func (s *Server) Released() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.released
}

// tick advances the server clock by one second. Callers hold s.mu.
func (s *Server) tick() int64 {
	s.clock++
	return s.clock
}

// failCode consumes a pending failure injection. Callers hold s.mu.
func (s *Server) failCode(op string) (int, bool) {
	code, ok := s.failNext[op]
	if ok {
		delete(s.failNext, op)
	}
	return code, ok
}

// mt4.ManagerInterface

func (s *Server) Connect(server string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if code, ok := s.failCode("Connect"); ok {
		return code
	}
	if server == "" {
		return mt4.RetInvalidData
	}
	s.connected = true
	return mt4.RetOK
}

func (s *Server) Login(login int, password string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if code, ok := s.failCode("Login"); ok {
		return code
	}
	if !s.connected {
		return mt4.RetNoConnect
	}
	if want, ok := s.creds[login]; ok && want != password {
		return mt4.RetBadAccountInfo
	}
	s.loggedIn = true
	s.login = login
	return mt4.RetOK
}

func (s *Server) Disconnect() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = false
	s.loggedIn = false
	s.login = 0
	return mt4.RetOK
}

func (s *Server) IsConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

func (s *Server) ServerTime() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.connected {
		return 0
	}
	return s.clock
}

func (s *Server) UsersRequest() (mt4.Buffer[mt4.UserRecord], int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if code, ok := s.failCode("UsersRequest"); ok {
		return nil, 0, code
	}
	if !s.connected {
		return nil, 0, mt4.RetNoConnect
	}
	logins := make([]int, 0, len(s.users))
	for l := range s.users {
		logins = append(logins, l)
	}
	sort.Ints(logins)
	items := make([]mt4.UserRecord, 0, len(logins))
	for _, l := range logins {
		items = append(items, s.users[l])
	}
	return allocBuffer(s, items), len(items), mt4.RetOK
}

func (s *Server) UserRecordGet(login int) (mt4.UserRecord, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if code, ok := s.failCode("UserRecordGet"); ok {
		return mt4.UserRecord{}, code
	}
	if !s.connected {
		return mt4.UserRecord{}, mt4.RetNoConnect
	}
	rec, ok := s.users[login]
	if !ok {
		return mt4.UserRecord{}, mt4.RetInvalidData
	}
	return rec, mt4.RetOK
}

func (s *Server) SymbolsGetAll() (mt4.Buffer[mt4.ConSymbol], int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if code, ok := s.failCode("SymbolsGetAll"); ok {
		return nil, 0, code
	}
	if !s.connected {
		return nil, 0, mt4.RetNoConnect
	}
	names := make([]string, 0, len(s.symbols))
	for n := range s.symbols {
		names = append(names, n)
	}
	sort.Strings(names)
	items := make([]mt4.ConSymbol, 0, len(names))
	for _, n := range names {
		items = append(items, s.symbols[n])
	}
	return allocBuffer(s, items), len(items), mt4.RetOK
}

func (s *Server) SymbolGet(symbol string) (mt4.ConSymbol, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if code, ok := s.failCode("SymbolGet"); ok {
		return mt4.ConSymbol{}, code
	}
	if !s.connected {
		return mt4.ConSymbol{}, mt4.RetNoConnect
	}
	cs, ok := s.symbols[symbol]
	if !ok {
		return mt4.ConSymbol{}, mt4.RetInvalidData
	}
	return cs, mt4.RetOK
}

func (s *Server) SymbolInfoGet(symbol string) (mt4.SymbolInfo, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if code, ok := s.failCode("SymbolInfoGet"); ok {
		return mt4.SymbolInfo{}, code
	}
	if !s.connected {
		return mt4.SymbolInfo{}, mt4.RetNoConnect
	}
	info, ok := s.quotes[symbol]
	if !ok {
		return mt4.SymbolInfo{}, mt4.RetOKNone
	}
	return info, mt4.RetOK
}

func (s *Server) TradesRequest() (mt4.Buffer[mt4.TradeRecord], int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if code, ok := s.failCode("TradesRequest"); ok {
		return nil, 0, code
	}
	if !s.connected {
		return nil, 0, mt4.RetNoConnect
	}
	return allocBuffer(s, s.tradeSlice(func(*mt4.TradeRecord) bool { return true })), s.countTrades(func(*mt4.TradeRecord) bool { return true }), mt4.RetOK
}

func (s *Server) TradesGetByLogin(login int, group string) (mt4.Buffer[mt4.TradeRecord], int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if code, ok := s.failCode("TradesGetByLogin"); ok {
		return nil, 0, code
	}
	if !s.connected {
		return nil, 0, mt4.RetNoConnect
	}
	match := func(t *mt4.TradeRecord) bool { return t.Login == login }
	return allocBuffer(s, s.tradeSlice(match)), s.countTrades(match), mt4.RetOK
}

func (s *Server) TradesGetBySymbol(symbol string) (mt4.Buffer[mt4.TradeRecord], int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if code, ok := s.failCode("TradesGetBySymbol"); ok {
		return nil, 0, code
	}
	if !s.connected {
		return nil, 0, mt4.RetNoConnect
	}
	match := func(t *mt4.TradeRecord) bool { return t.Symbol == symbol }
	return allocBuffer(s, s.tradeSlice(match)), s.countTrades(match), mt4.RetOK
}

func (s *Server) TradeRecordGet(ticket int) (mt4.TradeRecord, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if code, ok := s.failCode("TradeRecordGet"); ok {
		return mt4.TradeRecord{}, code
	}
	if !s.connected {
		return mt4.TradeRecord{}, mt4.RetNoConnect
	}
	t, ok := s.trades[ticket]
	if !ok {
		return mt4.TradeRecord{}, mt4.RetInvalidData
	}
	return *t, mt4.RetOK
}

func (s *Server) MarginLevelRequest(login int) (mt4.MarginLevel, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if code, ok := s.failCode("MarginLevelRequest"); ok {
		return mt4.MarginLevel{}, code
	}
	if !s.connected {
		return mt4.MarginLevel{}, mt4.RetNoConnect
	}
	user, ok := s.users[login]
	if !ok {
		return mt4.MarginLevel{}, mt4.RetInvalidData
	}
	return s.marginLevel(user), mt4.RetOK
}

func (s *Server) OnlineRequest() (mt4.Buffer[mt4.OnlineRecord], int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if code, ok := s.failCode("OnlineRequest"); ok {
		return nil, 0, code
	}
	if !s.connected {
		return nil, 0, mt4.RetNoConnect
	}
	logins := make([]int, 0, len(s.online))
	for l := range s.online {
		logins = append(logins, l)
	}
	sort.Ints(logins)
	items := make([]mt4.OnlineRecord, 0, len(logins))
	for _, l := range logins {
		items = append(items, mt4.OnlineRecord{Login: l, IP: s.online[l]})
	}
	return allocBuffer(s, items), len(items), mt4.RetOK
}

func (s *Server) ErrorDescription(code int) string {
	switch code {
	case mt4.RetOK:
		return "OK"
	case mt4.RetOKNone:
		return "OK (no data)"
	case mt4.RetError:
		return "Common error"
	case mt4.RetInvalidData:
		return "Invalid data"
	case mt4.RetTechProblem:
		return "Server technical problem"
	case mt4.RetOldVersion:
		return "Old client version"
	case mt4.RetNoConnect:
		return "No connection to server"
	case mt4.RetNotEnoughRights:
		return "Not enough rights"
	case mt4.RetTooFrequent:
		return "Too frequent requests"
	case mt4.RetMalfunction:
		return "Operation malfunction"
	case mt4.RetAccountDisabled:
		return "Account disabled"
	case mt4.RetBadAccountInfo:
		return "Invalid account information"
	case mt4.RetTradeTimeout:
		return "Trade timeout"
	case mt4.RetTradeBadPrices:
		return "Invalid prices"
	case mt4.RetTradeBadVolume:
		return "Invalid trade volume"
	case mt4.RetTradeOffquotes:
		return "Off quotes"
	}
	return fmt.Sprintf("Unknown error (code %d)", code)
}

func (s *Server) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.released = true
	s.connected = false
	s.loggedIn = false
	s.login = 0
}

// Callers hold s.mu.
func (s *Server) tradeSlice(match func(*mt4.TradeRecord) bool) []mt4.TradeRecord {
	tickets := make([]int, 0, len(s.trades))
	for ticket, t := range s.trades {
		if match(t) {
			tickets = append(tickets, ticket)
		}
	}
	sort.Ints(tickets)
	out := make([]mt4.TradeRecord, 0, len(tickets))
	for _, ticket := range tickets {
		out = append(out, *s.trades[ticket])
	}
	return out
}

func (s *Server) countTrades(match func(*mt4.TradeRecord) bool) int {
	n := 0
	for _, t := range s.trades {
		if match(t) {
			n++
		}
	}
	return n
}
