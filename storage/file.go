package storage

import (
	"context"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	perrors "github.com/jrsteele09/go-marketplace-client/internal/errors"
)

const (
	saltSize = 16

	// scrypt parameters recommended for interactive logins
	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
)

// FileRepo stores all slots in one file sealed with XChaCha20-Poly1305.
// Layout: salt | nonce | ciphertext. The key is derived from the
// passphrase with scrypt and cached for the lifetime of the repo.
type FileRepo struct {
	mu         sync.Mutex
	path       string
	passphrase []byte
	salt       []byte
	key        []byte
}

func NewFile(path, passphrase string) (*FileRepo, error) {
	if path == "" {
		return nil, errors.New("[NewFile] path is required")
	}
	if passphrase == "" {
		return nil, perrors.Wrapf(perrors.ErrStoragePassphrase, "[NewFile]")
	}
	return &FileRepo{path: path, passphrase: []byte(passphrase)}, nil
}

func (r *FileRepo) Get(_ context.Context, key string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	slots, err := r.load()
	if err != nil {
		return "", err
	}
	v, ok := slots[key]
	if !ok {
		return "", perrors.Wrapf(perrors.ErrStorageKeyNotFound, "%s", key)
	}
	return v, nil
}

func (r *FileRepo) Set(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	slots, err := r.load()
	if err != nil {
		return err
	}
	slots[key] = value
	return r.save(slots)
}

func (r *FileRepo) Delete(_ context.Context, keys ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	slots, err := r.load()
	if err != nil {
		return err
	}
	for _, k := range keys {
		delete(slots, k)
	}
	return r.save(slots)
}

func (r *FileRepo) Close() error {
	return nil
}

func (r *FileRepo) load() (map[string]string, error) {
	slots := make(map[string]string)

	raw, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return slots, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "[FileRepo.load] read")
	}
	if len(raw) < saltSize+chacha20poly1305.NonceSizeX {
		return nil, perrors.Wrapf(perrors.ErrSessionCorrupt, "[FileRepo.load] %s is truncated", r.path)
	}

	salt := raw[:saltSize]
	aead, err := r.aead(salt)
	if err != nil {
		return nil, err
	}
	nonce := raw[saltSize : saltSize+chacha20poly1305.NonceSizeX]
	plain, err := aead.Open(nil, nonce, raw[saltSize+chacha20poly1305.NonceSizeX:], nil)
	if err != nil {
		return nil, perrors.Wrapf(perrors.ErrSessionCorrupt, "[FileRepo.load] decrypt %s", r.path)
	}
	if err := json.Unmarshal(plain, &slots); err != nil {
		return nil, perrors.Wrapf(perrors.ErrSessionCorrupt, "[FileRepo.load] decode: %v", err)
	}
	return slots, nil
}

func (r *FileRepo) save(slots map[string]string) error {
	if r.salt == nil {
		r.salt = make([]byte, saltSize)
		if _, err := rand.Read(r.salt); err != nil {
			return errors.Wrap(err, "[FileRepo.save] salt")
		}
	}
	aead, err := r.aead(r.salt)
	if err != nil {
		return err
	}
	plain, err := json.Marshal(slots)
	if err != nil {
		return errors.Wrap(err, "[FileRepo.save] encode")
	}
	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := rand.Read(nonce); err != nil {
		return errors.Wrap(err, "[FileRepo.save] nonce")
	}

	out := make([]byte, 0, saltSize+len(nonce)+len(plain)+aead.Overhead())
	out = append(out, r.salt...)
	out = append(out, nonce...)
	out = aead.Seal(out, nonce, plain, nil)

	if err := os.MkdirAll(filepath.Dir(r.path), 0o700); err != nil {
		return errors.Wrap(err, "[FileRepo.save] mkdir")
	}
	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".session-*")
	if err != nil {
		return errors.Wrap(err, "[FileRepo.save] temp file")
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(out); err != nil {
		tmp.Close()
		return errors.Wrap(err, "[FileRepo.save] write")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "[FileRepo.save] close")
	}
	return errors.Wrap(os.Rename(tmp.Name(), r.path), "[FileRepo.save] rename")
}

// aead derives the key for salt, reusing the cached one when the salt is unchanged.
func (r *FileRepo) aead(salt []byte) (cipher.AEAD, error) {
	if r.key == nil || string(r.salt) != string(salt) {
		key, err := scrypt.Key(r.passphrase, salt, scryptN, scryptR, scryptP, chacha20poly1305.KeySize)
		if err != nil {
			return nil, errors.Wrap(err, "[FileRepo.aead] derive key")
		}
		r.key = key
		r.salt = append([]byte(nil), salt...)
	}
	aead, err := chacha20poly1305.NewX(r.key)
	if err != nil {
		return nil, errors.Wrap(err, "[FileRepo.aead]")
	}
	return aead, nil
}
