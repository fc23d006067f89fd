package storage

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/nacl/secretbox"
)

const sealedPrefix = "sealed:"

var ErrSealedToken = errors.New("stored token cannot be unsealed")

// TokenStore keeps the admin bearer token. With a secret the token is sealed
// with NaCl secretbox before it is written.
type TokenStore struct {
	kv  KeyValueStore
	key string
	box *[32]byte
}

func NewTokenStore(kv KeyValueStore, key, secret string) *TokenStore {
	s := &TokenStore{kv: kv, key: key}
	if secret != "" {
		k := sha256.Sum256([]byte(secret))
		s.box = &k
	}
	return s
}

// Get returns "" when no token is stored.
func (s *TokenStore) Get() (string, error) {
	entry, err := s.kv.Get(s.key)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	if !strings.HasPrefix(entry.Value, sealedPrefix) {
		return entry.Value, nil
	}
	if s.box == nil {
		return "", ErrSealedToken
	}
	return s.open(strings.TrimPrefix(entry.Value, sealedPrefix))
}

func (s *TokenStore) Set(token string) error {
	value := token
	if s.box != nil {
		sealed, err := s.seal(token)
		if err != nil {
			return err
		}
		value = sealedPrefix + sealed
	}
	_, err := s.kv.Set(s.key, value)
	return err
}

func (s *TokenStore) Clear() error {
	return s.kv.Delete(s.key)
}

func (s *TokenStore) seal(token string) (string, error) {
	var nonce [24]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("token nonce: %w", err)
	}
	out := secretbox.Seal(nonce[:], []byte(token), &nonce, s.box)
	return base64.StdEncoding.EncodeToString(out), nil
}

func (s *TokenStore) open(encoded string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil || len(raw) < 24 {
		return "", ErrSealedToken
	}
	var nonce [24]byte
	copy(nonce[:], raw[:24])
	plain, ok := secretbox.Open(nil, raw[24:], &nonce, s.box)
	if !ok {
		return "", ErrSealedToken
	}
	return string(plain), nil
}
