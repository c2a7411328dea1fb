package exchange_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"cryptotrade/pkg/core"
	"cryptotrade/pkg/exchange"
	"cryptotrade/pkg/exchange/mock"
)

func mockConstructor(ctrl *gomock.Controller, name string, built *[]exchange.Exchange) exchange.Constructor {
	return func(creds core.Credentials, opts ...exchange.Option) (exchange.Exchange, error) {
		m := mock.NewMockExchange(ctrl)
		m.EXPECT().Name().Return(name).AnyTimes()
		*built = append(*built, m)
		return m, nil
	}
}

func TestRegistry_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := exchange.NewRegistry()
	var built []exchange.Exchange

	r.Register("test", mockConstructor(ctrl, "test", &built))

	assert.True(t, r.Exists("test"))
	assert.False(t, r.Exists("other"))
}

func TestRegistry_New(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := exchange.NewRegistry()
	var built []exchange.Exchange
	r.Register("upbit", mockConstructor(ctrl, "upbit", &built))

	first, err := r.New("upbit", core.Credentials{AccessKey: "a", SecretKey: "s"})
	require.NoError(t, err)
	second, err := r.New("upbit", core.Credentials{})
	require.NoError(t, err)

	assert.Equal(t, "upbit", first.Name())
	assert.Len(t, built, 2)
	assert.NotSame(t, first, second)
}

func TestRegistry_NewUnknown(t *testing.T) {
	r := exchange.NewRegistry()

	_, err := r.New("kraken", core.Credentials{})

	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrUnknownExchange)
	assert.Contains(t, err.Error(), "kraken")
}

func TestRegistry_NewConstructorError(t *testing.T) {
	r := exchange.NewRegistry()
	r.Register("broken", func(core.Credentials, ...exchange.Option) (exchange.Exchange, error) {
		return nil, errors.New("bad base url")
	})

	_, err := r.New("broken", core.Credentials{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "create broken adapter")
}

func TestRegistry_NamesSorted(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := exchange.NewRegistry()
	var built []exchange.Exchange
	r.Register("upbit", mockConstructor(ctrl, "upbit", &built))
	r.Register("binance", mockConstructor(ctrl, "binance", &built))
	r.Register("gateio", mockConstructor(ctrl, "gateio", &built))

	assert.Equal(t, []string{"binance", "gateio", "upbit"}, r.Names())

	r.Unregister("gateio")
	assert.Equal(t, []string{"binance", "upbit"}, r.Names())
}

func TestApplyOptions(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		opts := exchange.ApplyOptions()
		assert.Empty(t, opts.BaseURL)
		assert.Zero(t, opts.Timeout)
		assert.NotNil(t, opts.Now)
		assert.Nil(t, opts.Nonce)
		assert.Equal(t, "https://api.upbit.com/v1", opts.BaseURLOr("https://api.upbit.com/v1"))
		assert.Len(t, opts.TransportOptions(), 1)
	})

	t.Run("with all options", func(t *testing.T) {
		fixed := time.UnixMilli(1710488334000)
		opts := exchange.ApplyOptions(
			exchange.WithBaseURL("http://127.0.0.1:9999/v1"),
			exchange.WithTimeout(5*time.Second),
			exchange.WithClock(func() time.Time { return fixed }),
			exchange.WithNonce(func() string { return "nonce" }),
		)
		assert.Equal(t, "http://127.0.0.1:9999/v1", opts.BaseURLOr("https://api.upbit.com/v1"))
		assert.Equal(t, 5*time.Second, opts.Timeout)
		assert.Equal(t, fixed, opts.Now())
		assert.Equal(t, "nonce", opts.Nonce())
	})
}
