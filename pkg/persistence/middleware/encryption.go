package middleware

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/valence/pkg/domain"
	"github.com/aretw0/valence/pkg/ports"
)

// EnvelopeKey is the data key holding a node's encrypted payload.
const EnvelopeKey = "__encrypted__"

// EncryptionConfig holds the keys for encryption and decryption.
type EncryptionConfig struct {
	// ActiveKey is the key used for encrypting new data.
	// Must be 32 bytes for AES-256.
	ActiveKey []byte

	// FallbackKeys is a list of old keys to try when decryption fails.
	// This enables zero-downtime key rotation.
	FallbackKeys [][]byte
}

type encryptionMiddleware struct {
	next ports.DocumentStore
	keys keyring
}

// NewEncryptionMiddleware creates a middleware that encrypts node data using
// AES-GCM. Node ids, types, positions and sizes are stored in the clear so
// the backend can still be inspected; only Data is sealed.
func NewEncryptionMiddleware(config EncryptionConfig) Middleware {
	if len(config.ActiveKey) != 32 {
		panic("active key must be 32 bytes (AES-256)")
	}
	keys := keyring{config.ActiveKey}
	keys = append(keys, config.FallbackKeys...)
	return func(next ports.DocumentStore) ports.DocumentStore {
		return &encryptionMiddleware{next: next, keys: keys}
	}
}

func (m *encryptionMiddleware) Save(ctx context.Context, id string, doc domain.Document) error {
	sealed := doc.Clone()
	for i, n := range sealed.Nodes {
		if len(n.Data) == 0 {
			continue
		}
		plain, err := json.Marshal(n.Data)
		if err != nil {
			return fmt.Errorf("failed to marshal data of node %s: %w", n.ID, err)
		}
		box, err := m.keys.seal(plain)
		if err != nil {
			return fmt.Errorf("failed to encrypt data of node %s: %w", n.ID, err)
		}
		sealed.Nodes[i].Data = map[string]any{EnvelopeKey: box}
	}
	return m.next.Save(ctx, id, sealed)
}

func (m *encryptionMiddleware) Load(ctx context.Context, id string) (domain.Document, error) {
	doc, err := m.next.Load(ctx, id)
	if err != nil {
		return domain.Document{}, err
	}

	for i, n := range doc.Nodes {
		if len(n.Data) == 0 {
			continue
		}
		box, ok := n.Data[EnvelopeKey].(string)
		if !ok {
			return domain.Document{}, fmt.Errorf("node %s is missing encrypted data envelope", n.ID)
		}
		plain, err := m.keys.open(box)
		if err != nil {
			return domain.Document{}, fmt.Errorf("node %s: %w", n.ID, err)
		}
		var data map[string]any
		if err := json.Unmarshal(plain, &data); err != nil {
			return domain.Document{}, fmt.Errorf("failed to unmarshal data of node %s: %w", n.ID, err)
		}
		doc.Nodes[i].Data = data
	}
	return doc, nil
}

func (m *encryptionMiddleware) Delete(ctx context.Context, id string) error {
	return m.next.Delete(ctx, id)
}

func (m *encryptionMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

// keyring holds the active key first, then fallbacks in rotation order.
type keyring [][]byte

// seal encrypts with the active key and returns base64(nonce || ciphertext).
func (k keyring) seal(plain []byte) (string, error) {
	aead, err := newGCM(k[0])
	if err != nil {
		return "", err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(aead.Seal(nonce, nonce, plain, nil)), nil
}

// open tries every key in order.
func (k keyring) open(box string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(box)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ciphertext base64: %w", err)
	}
	for _, key := range k {
		aead, err := newGCM(key)
		if err != nil || len(raw) < aead.NonceSize() {
			continue
		}
		n := aead.NonceSize()
		if plain, err := aead.Open(nil, raw[:n], raw[n:], nil); err == nil {
			return plain, nil
		}
	}
	return nil, errors.New("decryption failed with all available keys")
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
