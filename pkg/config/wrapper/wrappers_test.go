package wrapper

import (
	"context"
	"crypto/ed25519"
	"testing"
	"time"

	"github.com/mr-tron/base58/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/token-fusion/pkg/config/memory"
)

type typedConfig[T any] interface {
	Get(ctx context.Context) T
	GetSafe(ctx context.Context) (T, error)
}

// testLifecycle walks a wrapper through default, override, error and cleared states.
func testLifecycle[T any](t *testing.T, mock *memory.Config, wrapper typedConfig[T], defaultValue, overridenValue T, rawOverride interface{}) {
	ctx := context.Background()

	// Return the default value when no override is set
	val, err := wrapper.GetSafe(ctx)
	require.NoError(t, err)
	assert.Equal(t, defaultValue, val)
	assert.Equal(t, defaultValue, wrapper.Get(ctx))

	// The overriden value is returned when set
	mock.SetValue(rawOverride)
	val, err = wrapper.GetSafe(ctx)
	require.NoError(t, err)
	assert.Equal(t, overridenValue, val)
	assert.Equal(t, overridenValue, wrapper.Get(ctx))

	// The last observed config value is returned on error
	mock.InduceErrors()
	val, err = wrapper.GetSafe(ctx)
	require.Error(t, err)
	assert.Equal(t, overridenValue, val)
	assert.Equal(t, overridenValue, wrapper.Get(ctx))

	// The default value is returned when the override no longer has a value
	mock.StopInducingErrors()
	mock.ClearValue()
	val, err = wrapper.GetSafe(ctx)
	require.NoError(t, err)
	assert.Equal(t, defaultValue, val)
	assert.Equal(t, defaultValue, wrapper.Get(ctx))

	// Return an unsupported source value type
	mock.SetValue(struct{}{})
	val, err = wrapper.GetSafe(ctx)
	assert.Equal(t, ErrUnsuportedConversion, err)
	assert.Equal(t, defaultValue, val)
}

func TestBoolConfig(t *testing.T) {
	mock := memory.NewConfig(nil)
	testLifecycle[bool](t, mock, NewBoolConfig(mock, true), true, false, []byte("false"))

	mock.SetValue(true)
	assert.True(t, NewBoolConfig(mock, false).Get(context.Background()))
}

func TestUint64Config(t *testing.T) {
	mock := memory.NewConfig(nil)
	testLifecycle[uint64](t, mock, NewUint64Config(mock, 1000), 1000, 250000, []byte("250000"))

	wrapper := NewUint64Config(mock, 1000)

	mock.SetValue(uint64(42))
	assert.EqualValues(t, 42, wrapper.Get(context.Background()))

	// Parse failures keep the last good value
	mock.SetValue([]byte("-1"))
	val, err := wrapper.GetSafe(context.Background())
	assert.Error(t, err)
	assert.EqualValues(t, 42, val)

	mock.SetValue(-1)
	_, err = wrapper.GetSafe(context.Background())
	assert.Error(t, err)
}

func TestDurationConfig(t *testing.T) {
	mock := memory.NewConfig(nil)
	testLifecycle[time.Duration](t, mock, NewDurationConfig(mock, time.Minute), time.Minute, 2*time.Second, []byte("2s"))

	mock.SetValue(time.Hour)
	assert.Equal(t, time.Hour, NewDurationConfig(mock, time.Minute).Get(context.Background()))
}

func TestStringConfig(t *testing.T) {
	mock := memory.NewConfig(nil)
	testLifecycle[string](t, mock, NewStringConfig(mock, "devnet"), "devnet", "mainnet", []byte("mainnet"))

	mock.SetValue("localnet")
	assert.Equal(t, "localnet", NewStringConfig(mock, "devnet").Get(context.Background()))
}

func TestPublicKeyConfig(t *testing.T) {
	defaultValue, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	overridenValue, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	mock := memory.NewConfig(nil)
	testLifecycle[ed25519.PublicKey](t, mock, NewPublicKeyConfig(mock, defaultValue), defaultValue, overridenValue, []byte(base58.Encode(overridenValue)))

	wrapper := NewPublicKeyConfig(mock, defaultValue)

	mock.SetValue(base58.Encode(overridenValue))
	assert.Equal(t, overridenValue, wrapper.Get(context.Background()))

	for _, invalid := range []interface{}{
		"0OIl",
		base58.Encode(overridenValue[:31]),
		ed25519.PublicKey(overridenValue[:16]),
	} {
		mock.SetValue(invalid)
		val, err := wrapper.GetSafe(context.Background())
		assert.Error(t, err)
		assert.Equal(t, overridenValue, val)
	}
}
