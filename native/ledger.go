package native

import "context"

// Environment selects the ledger network.
type Environment string

const (
	EnvironmentPlayground Environment = "playground"
	EnvironmentProduction Environment = "production"
)

// ParseEnvironment maps a host supplied name to an Environment, defaulting to playground.
func ParseEnvironment(name string) Environment {
	switch Environment(name) {
	case EnvironmentProduction:
		return EnvironmentProduction
	default:
		return EnvironmentPlayground
	}
}

// WhitelistData identifies a user by app credentials, used for small scale testing instead of
// a signed registration token.
type WhitelistData struct {
	UserID string
	AppID  string
	APIKey string
}

type Balance struct {
	Amount int64
}

// OrderConfirmation is the ledger's proof of a completed earn, spend or transfer.
type OrderConfirmation struct {
	JWTConfirmation string
}

type OfferType string

const (
	OfferTypeSpend OfferType = "spend"
	OfferTypeEarn  OfferType = "earn"
)

// NativeOffer is a merchant defined offer shown inside the marketplace.
type NativeOffer struct {
	ID          string
	Title       string
	Description string
	Amount      int64
	Image       string
	OfferType   OfferType
}

type NativeOfferClickEvent struct {
	Offer        NativeOffer
	DismissOnTap bool
}

// Ledger is the native ecosystem SDK consumed by the bridge. Methods taking a Callback report
// asynchronously and must invoke exactly one branch; a returned error means the call was never
// issued.
type Ledger interface {
	StartWithWhitelist(ctx context.Context, data WhitelistData, env Environment) error
	StartWithJWT(ctx context.Context, jwt string, env Environment) error
	Logout(ctx context.Context) error

	PublicAddress() (string, error)
	CachedBalance() (Balance, error)
	Balance(cb Callback[Balance]) error
	HasAccount(userID string, cb Callback[bool]) error

	RequestPayment(jwt string, cb Callback[OrderConfirmation]) error
	Purchase(jwt string, cb Callback[OrderConfirmation]) error
	PayToUser(jwt string, cb Callback[OrderConfirmation]) error

	LaunchMarketplace() error
	LaunchHistory() error

	AddNativeOffer(offer NativeOffer, dismissOnTap bool) (bool, error)
	RemoveNativeOffer(offer NativeOffer) (bool, error)

	AddNativeOfferClickedObserver(fn func(NativeOfferClickEvent)) error
	AddBalanceObserver(fn func(Balance)) error
}
