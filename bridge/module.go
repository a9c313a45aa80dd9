package bridge

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-kin-bridge/claims"
	"github.com/jrsteele09/go-kin-bridge/events"
	"github.com/jrsteele09/go-kin-bridge/kinerrors"
	"github.com/jrsteele09/go-kin-bridge/native"
	"github.com/jrsteele09/go-kin-bridge/session"
	"github.com/jrsteele09/go-kin-bridge/token"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Exported environment constants, keyed the way the host application reads them.
const (
	ConstantEnvironmentPlayground = "ENVIRONMENT_PLAYGROUND"
	ConstantEnvironmentProduction = "ENVIRONMENT_PRODUCTION"
)

// Constants returns the values exported to the host application.
func Constants() map[string]string {
	return map[string]string{
		ConstantEnvironmentPlayground: string(native.EnvironmentPlayground),
		ConstantEnvironmentProduction: string(native.EnvironmentProduction),
	}
}

// StartRequest identifies the user to onboard.
type StartRequest struct {
	UserID      string
	Username    string
	Environment string
}

// Module is the single session holder exposing the loyalty operations to a host application.
// All methods are safe for concurrent use.
type Module struct {
	ledger        native.Ledger
	session       *session.Session
	emitter       events.Emitter
	logger        zerolog.Logger
	signerOptions []token.Option

	lock   sync.RWMutex
	signer token.Signer
	debug  bool

	startLock            sync.Mutex
	offerObserverAdded   bool
	balanceObserverAdded bool
}

func New(ledger native.Ledger, options ...Option) *Module {
	m := &Module{
		ledger:  ledger,
		session: session.New(),
		emitter: dropEmitter{},
		logger:  log.Logger,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *Module) log() zerolog.Logger {
	m.lock.RLock()
	defer m.lock.RUnlock()
	if m.debug {
		return m.logger.Level(zerolog.DebugLevel)
	}
	return m.logger
}

// begin starts an operation log scope with its own id.
func (m *Module) begin(op string) zerolog.Logger {
	l := m.log().With().Str("op", op).Str("op_id", uuid.NewString()).Logger()
	l.Debug().Msg("operation started")
	return l
}

func finish(l zerolog.Logger, err error) {
	if err != nil {
		l.Warn().Err(err).Msg("operation failed")
		return
	}
	l.Debug().Msg("operation completed")
}

// SetCredentials validates creds and builds their signer. Nothing changes unless both succeed.
func (m *Module) SetCredentials(_ context.Context, creds session.Credentials) (ok bool, err error) {
	l := m.begin("setCredentials")
	defer func() { finish(l, err) }()

	if err = creds.Validate(); err != nil {
		return false, err
	}
	signer, err := token.NewSignerForCredentials(creds, m.signerOptions...)
	if err != nil {
		return false, err
	}

	// The credentials and their signer change together, and never under a running start.
	m.startLock.Lock()
	m.lock.Lock()
	err = m.session.SetCredentials(creds)
	if err == nil {
		m.signer = signer
		m.debug = creds.Debug
	}
	m.lock.Unlock()
	m.startLock.Unlock()
	if err != nil {
		return false, err
	}

	if creds.Debug {
		dl := l.Level(zerolog.DebugLevel)
		dl.Debug().
			Interface("credentials", creds.Redacted()).
			Str("strategy", string(signer.Strategy())).
			Msg("credentials set")
	}
	return true, nil
}

func (m *Module) IsOnboarded(context.Context) bool {
	return m.session.IsOnboarded()
}

// Start onboards req.UserID with a signed register token when useJWT is set, or with the
// whitelist identity otherwise. Concurrent calls run one at a time.
func (m *Module) Start(ctx context.Context, req StartRequest) (ok bool, err error) {
	l := m.begin("start")
	defer func() { finish(l, err) }()

	m.startLock.Lock()
	defer m.startLock.Unlock()

	creds, err := m.session.RequireCredentials()
	if err != nil {
		return false, err
	}
	if req.UserID == "" {
		return false, kinerrors.New(kinerrors.Validation, "userId must not be empty")
	}
	env := native.ParseEnvironment(req.Environment)

	if creds.UseJWT {
		claim, err := claims.BuildRegister(claims.RegisterRequest{UserID: req.UserID})
		if err != nil {
			return false, err
		}
		jwt, err := m.sign(ctx, claim)
		if err != nil {
			return false, err
		}
		if err := m.ledger.StartWithJWT(ctx, jwt, env); err != nil {
			return false, kinerrors.Wrap(kinerrors.NativeOperation, err, "failed to start with jwt")
		}
	} else {
		data := native.WhitelistData{UserID: req.UserID, AppID: creds.AppID, APIKey: creds.APIKey}
		if err := m.ledger.StartWithWhitelist(ctx, data, env); err != nil {
			return false, kinerrors.Wrap(kinerrors.NativeOperation, err, "failed to start with whitelist")
		}
	}

	m.session.MarkOnboarded(req.UserID, req.Username)
	m.registerObservers(l)
	l.Info().Str("user_id", req.UserID).Str("environment", string(env)).Msg("kin started")
	return true, nil
}

func (m *Module) GetWalletAddress(context.Context) (address string, err error) {
	l := m.begin("getWalletAddress")
	defer func() { finish(l, err) }()

	if err = m.session.RequireOnboarded(); err != nil {
		return "", err
	}
	address, err = m.ledger.PublicAddress()
	if err != nil {
		return "", kinerrors.Wrap(kinerrors.NativeOperation, err, "failed to get wallet address")
	}
	return address, nil
}

// GetCurrentBalance serves the cached balance when the ledger has one and fetches it otherwise.
func (m *Module) GetCurrentBalance(ctx context.Context) (amount int64, err error) {
	l := m.begin("getCurrentBalance")
	defer func() { finish(l, err) }()

	if err = m.session.RequireOnboarded(); err != nil {
		return 0, err
	}
	cached, cacheErr := m.ledger.CachedBalance()
	if cacheErr == nil {
		return cached.Amount, nil
	}
	l.Debug().Err(cacheErr).Msg("no cached balance, fetching")

	balance, err := native.Settle(ctx, func(cb native.Callback[native.Balance]) error {
		return m.ledger.Balance(cb)
	})
	if err != nil {
		return 0, kinerrors.Wrap(kinerrors.NativeOperation, err, "Error fetching current balance")
	}
	return balance.Amount, nil
}

func (m *Module) LaunchMarketplace(context.Context) (ok bool, err error) {
	l := m.begin("launchMarketplace")
	defer func() { finish(l, err) }()
	return m.launch(m.ledger.LaunchMarketplace, "failed to launch marketplace")
}

func (m *Module) LaunchHistory(context.Context) (ok bool, err error) {
	l := m.begin("launchHistory")
	defer func() { finish(l, err) }()
	return m.launch(m.ledger.LaunchHistory, "failed to launch history")
}

func (m *Module) launch(fn func() error, message string) (bool, error) {
	if err := m.session.RequireOnboarded(); err != nil {
		return false, err
	}
	if err := fn(); err != nil {
		return false, kinerrors.Wrap(kinerrors.NativeOperation, err, message)
	}
	return true, nil
}

// Earn pays req.RecipientUserID and returns the ledger's order confirmation.
func (m *Module) Earn(ctx context.Context, req claims.OfferRequest) (confirmation string, err error) {
	l := m.begin("earn")
	defer func() { finish(l, err) }()

	if err = m.session.RequireOnboarded(); err != nil {
		return "", err
	}
	claim, err := claims.BuildEarn(req)
	if err != nil {
		return "", err
	}
	return m.submit(ctx, claim, m.ledger.RequestPayment)
}

// Spend charges req.RecipientUserID and returns the ledger's order confirmation.
func (m *Module) Spend(ctx context.Context, req claims.OfferRequest) (confirmation string, err error) {
	l := m.begin("spend")
	defer func() { finish(l, err) }()

	if err = m.session.RequireOnboarded(); err != nil {
		return "", err
	}
	claim, err := claims.BuildSpend(req)
	if err != nil {
		return "", err
	}
	return m.submit(ctx, claim, m.ledger.Purchase)
}

// HasAccount reports whether userID has an activated account.
func (m *Module) HasAccount(ctx context.Context, userID string) (has bool, err error) {
	l := m.begin("hasAccount")
	defer func() { finish(l, err) }()

	if err = m.session.RequireOnboarded(); err != nil {
		return false, err
	}
	if userID == "" {
		return false, kinerrors.New(kinerrors.Validation, "userId must not be empty")
	}
	return m.hasAccount(ctx, userID)
}

func (m *Module) hasAccount(ctx context.Context, userID string) (bool, error) {
	return native.Settle(ctx, func(cb native.Callback[bool]) error {
		return m.ledger.HasAccount(userID, cb)
	})
}

// PayToUser transfers from the logged-in user to req.ToUserID. The peer must already have an
// account; otherwise nothing is signed or submitted.
func (m *Module) PayToUser(ctx context.Context, req claims.PayToUserRequest) (confirmation string, err error) {
	l := m.begin("payToUser")
	defer func() { finish(l, err) }()

	if err = m.session.RequireOnboarded(); err != nil {
		return "", err
	}
	if err = req.Validate(); err != nil {
		return "", err
	}

	has, err := m.hasAccount(ctx, req.ToUserID)
	if err != nil {
		return "", err
	}
	if !has {
		return "", kinerrors.Newf(kinerrors.PeerNotFound,
			"User %s could not be found. Make sure the receiving user has activated kin.", req.ToUserID)
	}

	claim, err := claims.BuildPayToUser(req, m.session.Identity())
	if err != nil {
		return "", err
	}
	return m.submit(ctx, claim, m.ledger.PayToUser)
}

// Logout ends the session on the ledger and clears the onboarded identity.
func (m *Module) Logout(ctx context.Context) (ok bool, err error) {
	l := m.begin("logout")
	defer func() { finish(l, err) }()

	if err = m.session.RequireOnboarded(); err != nil {
		return false, err
	}
	if err = m.ledger.Logout(ctx); err != nil {
		return false, kinerrors.Wrap(kinerrors.NativeOperation, err, "failed to logout")
	}
	m.session.Reset()
	return true, nil
}

func (m *Module) sign(ctx context.Context, claim claims.Claim) (string, error) {
	m.lock.RLock()
	_, err := m.session.RequireCredentials()
	signer := m.signer
	m.lock.RUnlock()
	if err != nil {
		return "", err
	}

	jwt, err := signer.Sign(ctx, claim)
	if err != nil {
		return "", kinerrors.Wrap(kinerrors.Signing, err, "")
	}
	return jwt, nil
}

type orderFunc func(jwt string, cb native.Callback[native.OrderConfirmation]) error

// submit signs claim and hands the token to the native order call. A signing failure means the
// order call is never made.
func (m *Module) submit(ctx context.Context, claim claims.Claim, order orderFunc) (string, error) {
	jwt, err := m.sign(ctx, claim)
	if err != nil {
		return "", err
	}
	confirmation, err := native.Settle(ctx, func(cb native.Callback[native.OrderConfirmation]) error {
		return order(jwt, cb)
	})
	if err != nil {
		return "", err
	}
	return confirmation.JWTConfirmation, nil
}
