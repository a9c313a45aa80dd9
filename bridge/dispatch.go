package bridge

import (
	"context"

	"github.com/jrsteele09/go-kin-bridge/kinerrors"
)

// Method names understood by Dispatch.
const (
	MethodSetCredentials    = "setCredentials"
	MethodIsOnboarded       = "isOnboarded"
	MethodStart             = "start"
	MethodGetWalletAddress  = "getWalletAddress"
	MethodGetCurrentBalance = "getCurrentBalance"
	MethodLaunchMarketplace = "launchMarketplace"
	MethodLaunchHistory     = "launchHistory"
	MethodEarn              = "earn"
	MethodSpend             = "spend"
	MethodAddSpendOffer     = "addSpendOffer"
	MethodRemoveSpendOffer  = "removeSpendOffer"
	MethodHasAccount        = "hasAccount"
	MethodPayToUser         = "payToUser"
	MethodLogout            = "logout"
)

type handler func(ctx context.Context, m *Module, options map[string]any) (any, error)

// decoded adapts a typed operation to a handler by decoding its options first. A decode failure
// never reaches the operation.
func decoded[Req, Res any](decode func(map[string]any) (Req, error), op func(*Module, context.Context, Req) (Res, error)) handler {
	return func(ctx context.Context, m *Module, options map[string]any) (any, error) {
		req, err := decode(options)
		if err != nil {
			return nil, err
		}
		return op(m, ctx, req)
	}
}

func noOptions[Res any](op func(*Module, context.Context) (Res, error)) handler {
	return func(ctx context.Context, m *Module, _ map[string]any) (any, error) {
		return op(m, ctx)
	}
}

// beforeStart lists the methods that can run without an onboarded session. Every other method
// is checked for onboarding before its options are decoded.
var beforeStart = map[string]bool{
	MethodSetCredentials: true,
	MethodIsOnboarded:    true,
	MethodStart:          true,
}

var handlers = map[string]handler{
	MethodSetCredentials: decoded(DecodeCredentials, (*Module).SetCredentials),
	MethodIsOnboarded: func(ctx context.Context, m *Module, _ map[string]any) (any, error) {
		return m.IsOnboarded(ctx), nil
	},
	MethodStart:             decoded(DecodeStartRequest, (*Module).Start),
	MethodGetWalletAddress:  noOptions((*Module).GetWalletAddress),
	MethodGetCurrentBalance: noOptions((*Module).GetCurrentBalance),
	MethodLaunchMarketplace: noOptions((*Module).LaunchMarketplace),
	MethodLaunchHistory:     noOptions((*Module).LaunchHistory),
	MethodEarn:              decoded(DecodeOfferRequest, (*Module).Earn),
	MethodSpend:             decoded(DecodeOfferRequest, (*Module).Spend),
	MethodAddSpendOffer:     decoded(DecodeNativeOfferRequest, (*Module).AddSpendOffer),
	MethodRemoveSpendOffer:  decoded(DecodeOfferID, (*Module).RemoveSpendOffer),
	MethodHasAccount:        decoded(DecodeUserID, (*Module).HasAccount),
	MethodPayToUser:         decoded(DecodePayToUserRequest, (*Module).PayToUser),
	MethodLogout:            noOptions((*Module).Logout),
}

// Dispatch routes a host bridge call by method name. Options may be nil for methods without
// arguments.
func (m *Module) Dispatch(ctx context.Context, method string, options map[string]any) (result any, err error) {
	h, ok := handlers[method]
	if !ok {
		return nil, kinerrors.Newf(kinerrors.Validation, "unknown method %q", method)
	}
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = kinerrors.Newf(kinerrors.NativeOperation, "%s panicked: %v", method, r)
		}
	}()
	if !beforeStart[method] {
		if err := m.session.RequireOnboarded(); err != nil {
			return nil, err
		}
	}
	return h(ctx, m, options)
}
