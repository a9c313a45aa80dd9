package nativefake

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-kin-bridge/native"
)

var _ native.Ledger = (*FakeLedger)(nil)

// Call records one invocation against the fake.
type Call struct {
	Method string
	JWT    string
	UserID string
	Env    native.Environment
}

// FakeLedger is an in-memory native ledger. Callbacks fire on their own goroutine, like the
// real SDK. Setting one of the *Err fields makes the matching call fail through its callback;
// the Sync*Err fields make the call fail before it is issued.
type FakeLedger struct {
	lock sync.Mutex

	started  bool
	address  string
	balance  native.Balance
	cached   bool
	accounts map[string]bool
	offers   map[string]native.NativeOffer
	calls    []Call

	offerObservers   []func(native.NativeOfferClickEvent)
	balanceObservers []func(native.Balance)

	StartErr      error
	BalanceErr    error
	HasAccountErr error
	PaymentErr    error
	SyncPayErr    error
	LaunchErr     error
	ObserverErr   error
	AddOfferFail  bool
}

func NewFakeLedger() *FakeLedger {
	return &FakeLedger{
		address:  "G" + uuid.New().String(),
		accounts: make(map[string]bool),
		offers:   make(map[string]native.NativeOffer),
	}
}

// SetBalance sets the ledger balance; cached controls whether CachedBalance serves it.
func (f *FakeLedger) SetBalance(amount int64, cached bool) {
	f.lock.Lock()
	f.balance = native.Balance{Amount: amount}
	f.cached = cached
	observers := append([]func(native.Balance){}, f.balanceObservers...)
	f.lock.Unlock()

	for _, fn := range observers {
		fn(native.Balance{Amount: amount})
	}
}

// AddAccount marks userID as having an activated account.
func (f *FakeLedger) AddAccount(userID string) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.accounts[userID] = true
}

// ClickOffer simulates the user tapping a native offer in the marketplace.
func (f *FakeLedger) ClickOffer(offerID string, dismissOnTap bool) bool {
	f.lock.Lock()
	offer, ok := f.offers[offerID]
	observers := append([]func(native.NativeOfferClickEvent){}, f.offerObservers...)
	f.lock.Unlock()
	if !ok {
		return false
	}
	for _, fn := range observers {
		fn(native.NativeOfferClickEvent{Offer: offer, DismissOnTap: dismissOnTap})
	}
	return true
}

// Calls returns the recorded calls for method, or every call when method is empty.
func (f *FakeLedger) Calls(method string) []Call {
	f.lock.Lock()
	defer f.lock.Unlock()
	var out []Call
	for _, c := range f.calls {
		if method == "" || c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

func (f *FakeLedger) Started() bool {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.started
}

func (f *FakeLedger) record(c Call) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.calls = append(f.calls, c)
}

func (f *FakeLedger) StartWithWhitelist(_ context.Context, data native.WhitelistData, env native.Environment) error {
	f.record(Call{Method: "StartWithWhitelist", UserID: data.UserID, Env: env})
	return f.start(data.UserID)
}

func (f *FakeLedger) StartWithJWT(_ context.Context, jwt string, env native.Environment) error {
	f.record(Call{Method: "StartWithJWT", JWT: jwt, Env: env})
	return f.start("")
}

func (f *FakeLedger) start(userID string) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	if f.StartErr != nil {
		return f.StartErr
	}
	f.started = true
	if userID != "" {
		f.accounts[userID] = true
	}
	return nil
}

func (f *FakeLedger) Logout(context.Context) error {
	f.record(Call{Method: "Logout"})
	f.lock.Lock()
	defer f.lock.Unlock()
	f.started = false
	return nil
}

func (f *FakeLedger) PublicAddress() (string, error) {
	f.record(Call{Method: "PublicAddress"})
	f.lock.Lock()
	defer f.lock.Unlock()
	if !f.started {
		return "", errors.New("ecosystem not started")
	}
	return f.address, nil
}

func (f *FakeLedger) CachedBalance() (native.Balance, error) {
	f.record(Call{Method: "CachedBalance"})
	f.lock.Lock()
	defer f.lock.Unlock()
	if !f.cached {
		return native.Balance{}, errors.New("no cached balance")
	}
	return f.balance, nil
}

func (f *FakeLedger) Balance(cb native.Callback[native.Balance]) error {
	f.record(Call{Method: "Balance"})
	f.lock.Lock()
	balance, err := f.balance, f.BalanceErr
	f.lock.Unlock()
	go func() {
		if err != nil {
			cb.OnFailure(err)
			return
		}
		cb.OnResponse(balance)
	}()
	return nil
}

func (f *FakeLedger) HasAccount(userID string, cb native.Callback[bool]) error {
	f.record(Call{Method: "HasAccount", UserID: userID})
	f.lock.Lock()
	has, err := f.accounts[userID], f.HasAccountErr
	f.lock.Unlock()
	go func() {
		if err != nil {
			cb.OnFailure(err)
			return
		}
		cb.OnResponse(has)
	}()
	return nil
}

func (f *FakeLedger) RequestPayment(jwt string, cb native.Callback[native.OrderConfirmation]) error {
	return f.order("RequestPayment", jwt, cb)
}

func (f *FakeLedger) Purchase(jwt string, cb native.Callback[native.OrderConfirmation]) error {
	return f.order("Purchase", jwt, cb)
}

func (f *FakeLedger) PayToUser(jwt string, cb native.Callback[native.OrderConfirmation]) error {
	return f.order("PayToUser", jwt, cb)
}

func (f *FakeLedger) order(method, jwt string, cb native.Callback[native.OrderConfirmation]) error {
	f.record(Call{Method: method, JWT: jwt})
	f.lock.Lock()
	syncErr, err := f.SyncPayErr, f.PaymentErr
	f.lock.Unlock()
	if syncErr != nil {
		return syncErr
	}
	go func() {
		if err != nil {
			cb.OnFailure(err)
			return
		}
		cb.OnResponse(native.OrderConfirmation{JWTConfirmation: "confirmed:" + jwt})
	}()
	return nil
}

func (f *FakeLedger) LaunchMarketplace() error {
	f.record(Call{Method: "LaunchMarketplace"})
	return f.LaunchErr
}

func (f *FakeLedger) LaunchHistory() error {
	f.record(Call{Method: "LaunchHistory"})
	return f.LaunchErr
}

func (f *FakeLedger) AddNativeOffer(offer native.NativeOffer, _ bool) (bool, error) {
	f.record(Call{Method: "AddNativeOffer"})
	f.lock.Lock()
	defer f.lock.Unlock()
	if f.AddOfferFail {
		return false, nil
	}
	f.offers[offer.ID] = offer
	return true, nil
}

func (f *FakeLedger) RemoveNativeOffer(offer native.NativeOffer) (bool, error) {
	f.record(Call{Method: "RemoveNativeOffer"})
	f.lock.Lock()
	defer f.lock.Unlock()
	if _, ok := f.offers[offer.ID]; !ok {
		return false, nil
	}
	delete(f.offers, offer.ID)
	return true, nil
}

func (f *FakeLedger) AddNativeOfferClickedObserver(fn func(native.NativeOfferClickEvent)) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	if f.ObserverErr != nil {
		return f.ObserverErr
	}
	f.offerObservers = append(f.offerObservers, fn)
	return nil
}

func (f *FakeLedger) AddBalanceObserver(fn func(native.Balance)) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	if f.ObserverErr != nil {
		return f.ObserverErr
	}
	f.balanceObservers = append(f.balanceObservers, fn)
	return nil
}
