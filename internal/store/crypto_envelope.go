package store

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"statekeep/internal/domain"
)

const (
	// The current supported version of the sealed value format.
	envelopeFormatVersion = 1
)

var (
	// ErrWrongPassphrase is returned when the passphrase is incorrect or the
	// ciphertext has been modified / corrupted.
	ErrWrongPassphrase = errors.New("wrong passphrase or corrupted value")
)

// envelope is the JSON structure holding the ciphertext and KDF parameters.
type envelope struct {
	V      int    `json:"v"`
	Salt   []byte `json:"salt"`
	N      int    `json:"scrypt_N"`
	R      int    `json:"scrypt_r"`
	P      int    `json:"scrypt_p"`
	Cipher []byte `json:"cipher"`
}

// KDFParams are the scrypt cost parameters used when sealing.
type KDFParams struct {
	N, R, P int
}

// DefaultKDFParams returns the tunables for scrypt key derivation.
func DefaultKDFParams() KDFParams { return KDFParams{N: 1 << 15, R: 8, P: 1} }

// EncryptedStore seals values with a passphrase before handing them to the
// wrapped store. The storage key is bound as associated data, so a value
// copied under another key fails to open.
type EncryptedStore struct {
	inner      domain.KVStore
	passphrase string
	params     KDFParams
}

// NewEncryptedStore wraps inner using the default KDF parameters.
func NewEncryptedStore(inner domain.KVStore, passphrase string) *EncryptedStore {
	return NewEncryptedStoreWithParams(inner, passphrase, DefaultKDFParams())
}

// NewEncryptedStoreWithParams wraps inner using the given KDF parameters.
func NewEncryptedStoreWithParams(inner domain.KVStore, passphrase string, p KDFParams) *EncryptedStore {
	return &EncryptedStore{inner: inner, passphrase: passphrase, params: p}
}

// Read opens the sealed value for key. A key that was never written returns (nil, nil).
func (s *EncryptedStore) Read(key string) ([]byte, error) {
	b, err := s.inner.Read(key)
	if err != nil || b == nil {
		return b, err
	}
	pt, err := decrypt(s.passphrase, key, b)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", key, err)
	}
	return pt, nil
}

// Write seals data and stores it under key.
func (s *EncryptedStore) Write(key string, data []byte) error {
	ct, err := encrypt(s.passphrase, key, data, s.params)
	if err != nil {
		return fmt.Errorf("seal %s: %w", key, err)
	}
	return s.inner.Write(key, ct)
}

func (s *EncryptedStore) Delete(key string) error { return s.inner.Delete(key) }

// encrypt derives a key from passphrase and seals raw into a JSON envelope.
func encrypt(passphrase, ad string, raw []byte, p KDFParams) ([]byte, error) {
	var salt [16]byte
	if _, err := rand.Read(salt[:] /* #nosec G404 */); err != nil {
		return nil, err
	}
	key, err := scrypt.Key([]byte(passphrase), salt[:], p.N, p.R, p.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte // zero nonce; salt-bound key guarantees uniqueness
	ct := aead.Seal(nil, nonce[:], raw, associatedData(salt[:], ad))

	return json.Marshal(envelope{
		V:      envelopeFormatVersion,
		Salt:   salt[:],
		N:      p.N,
		R:      p.R,
		P:      p.P,
		Cipher: ct,
	})
}

// decrypt opens the JSON envelope using a key derived from passphrase.
func decrypt(passphrase, ad string, b []byte) ([]byte, error) {
	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, err
	}
	if env.V > envelopeFormatVersion {
		return nil, fmt.Errorf("unsupported envelope version %d", env.V)
	}

	key, err := scrypt.Key([]byte(passphrase), env.Salt, env.N, env.R, env.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte
	pt, err := aead.Open(nil, nonce[:], env.Cipher, associatedData(env.Salt, ad))
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return pt, nil
}

func associatedData(salt []byte, key string) []byte {
	return append(append([]byte(nil), salt...), key...)
}

// Compile-time assertion that EncryptedStore implements domain.KVStore.
var _ domain.KVStore = (*EncryptedStore)(nil)
