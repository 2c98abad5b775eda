package store_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"statekeep/internal/store"
)

// Cheap scrypt parameters keep the tests fast.
var testKDF = store.KDFParams{N: 1 << 4, R: 8, P: 1}

func TestEncryptedStore_RoundTrip_OK(t *testing.T) {
	inner := store.NewMemoryStore()
	es := store.NewEncryptedStoreWithParams(inner, "correct horse", testKDF)

	plain := []byte(`{"count":42}`)
	require.NoError(t, es.Write("counter-storage", plain))

	sealed, err := inner.Read("counter-storage")
	require.NoError(t, err)
	require.False(t, bytes.Contains(sealed, []byte("count")), "inner store must not see plaintext")

	got, err := es.Read("counter-storage")
	require.NoError(t, err)
	require.Equal(t, plain, got)
}

func TestEncryptedStore_WrongPassphrase_Fails(t *testing.T) {
	inner := store.NewMemoryStore()
	require.NoError(t, store.NewEncryptedStoreWithParams(inner, "right", testKDF).Write("k", []byte("v")))

	_, err := store.NewEncryptedStoreWithParams(inner, "wrong", testKDF).Read("k")
	require.ErrorIs(t, err, store.ErrWrongPassphrase)
}

func TestEncryptedStore_BoundToKey(t *testing.T) {
	inner := store.NewMemoryStore()
	es := store.NewEncryptedStoreWithParams(inner, "pass", testKDF)
	require.NoError(t, es.Write("a", []byte("v")))

	sealed, err := inner.Read("a")
	require.NoError(t, err)
	require.NoError(t, inner.Write("b", sealed))

	_, err = es.Read("b")
	require.ErrorIs(t, err, store.ErrWrongPassphrase)
}

func TestEncryptedStore_Missing_ReturnsNil(t *testing.T) {
	es := store.NewEncryptedStoreWithParams(store.NewMemoryStore(), "pass", testKDF)

	got, err := es.Read("nothing")
	require.NoError(t, err)
	require.Nil(t, got)
}
