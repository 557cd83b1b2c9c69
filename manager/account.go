package manager

import "github.com/rustyeddy/mt4adm/mt4"

// Account is an immutable snapshot of a trading account. Re-fetch to
// observe newer server state. Times are seconds since epoch as
// reported by the server.
type Account struct {
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

func newAccount(rec mt4.UserRecord) Account {
	return Account{
		Login:    rec.Login,
		Group:    rec.Group,
		Name:     rec.Name,
		Email:    rec.Email,
		Balance:  rec.Balance,
		Credit:   rec.Credit,
		RegDate:  rec.RegDate,
		LastDate: rec.LastDate,
		Leverage: rec.Leverage,
	}
}
