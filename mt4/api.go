// Package mt4 defines the contract between the adapter and the MT4
// Manager API. The native library is an opaque peer: everything the
// adapter consumes from it is expressed here as interfaces and plain
// record structs so that implementations (the cgo bridge, the sim
// server) can be swapped behind the same surface.
package mt4

// Buffer is a block of SDK-owned memory holding query results. It
// stays valid until it is returned to the SDK allocator through
// ManagerInterface.MemFree. Callers must copy anything they want to
// keep before freeing.
type Buffer[T any] interface {
	Len() int
	At(i int) T
}

// ManagerFactory produces manager interfaces keyed by the API version
// the caller was built against.
type ManagerFactory interface {
	IsValid() bool

	// Create returns a manager interface for the given API version,
	// or nil if the version is not supported.
	Create(version int) ManagerInterface
}

// Bootstrap is the process-wide networking substrate the native
// library needs before any manager interface can be used. On Windows
// builds this is the winsock startup/cleanup pair.
type Bootstrap interface {
	Startup() error
	Cleanup()
}

// ManagerInterface is the raw manager connection. Return values follow
// the native convention: an integer code where RetOK means success and
// anything else is translatable via ErrorDescription. List queries
// return an SDK-owned Buffer plus the total element count; the buffer,
// when non-nil, must be released with MemFree exactly once.
//
// All calls block for up to the SDK's own network timeouts.
type ManagerInterface interface {
	Connect(server string) int
	Login(login int, password string) int
	Disconnect() int
	IsConnected() bool
	ServerTime() int64

	UsersRequest() (buf Buffer[UserRecord], total int, code int)
	UserRecordGet(login int) (UserRecord, int)

	SymbolsGetAll() (buf Buffer[ConSymbol], total int, code int)
	SymbolGet(symbol string) (ConSymbol, int)
	SymbolInfoGet(symbol string) (SymbolInfo, int)

	TradesRequest() (buf Buffer[TradeRecord], total int, code int)
	TradesGetByLogin(login int, group string) (buf Buffer[TradeRecord], total int, code int)
	TradesGetBySymbol(symbol string) (buf Buffer[TradeRecord], total int, code int)
	TradeRecordGet(ticket int) (TradeRecord, int)

	TradeTransaction(info *TradeTransInfo) int

	MarginLevelRequest(login int) (MarginLevel, int)
	OnlineRequest() (buf Buffer[OnlineRecord], total int, code int)

	// MemFree returns a Buffer previously handed out by a query call
	// to the SDK allocator.
	MemFree(buf any)

	ErrorDescription(code int) string

	// Release destroys the manager interface. No call may follow it.
	Release()
}
