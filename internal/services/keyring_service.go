package services

import (
	"errors"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "ollamachat"
	keyringUser    = "model-server-token"
)

// KeyringService stores the optional bearer token for the model server in the OS keychain.
type KeyringService struct{}

func NewKeyringService() *KeyringService {
	return &KeyringService{}
}

func (s *KeyringService) StoreServerToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("token is empty")
	}
	return keyring.Set(keyringService, keyringUser, token)
}

// GetServerToken returns an empty token when none is stored.
func (s *KeyringService) GetServerToken() (string, error) {
	token, err := keyring.Get(keyringService, keyringUser)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	return token, err
}

func (s *KeyringService) HasServerToken() bool {
	token, err := s.GetServerToken()
	return err == nil && token != ""
}

func (s *KeyringService) DeleteServerToken() error {
	err := keyring.Delete(keyringService, keyringUser)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
