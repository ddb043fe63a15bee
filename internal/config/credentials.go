package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/joho/godotenv"

	pErrors "github.com/zhubert/streamchat/internal/errors"
	"github.com/zhubert/streamchat/internal/logger"
)

// Credential names understood by the bridges and the API keys form.
const (
	TwitchClientID      = "TWITCH_CLIENT_ID"
	TwitchClientSecret  = "TWITCH_CLIENT_SECRET"
	TwitchBroadcasterID = "TWITCH_BROADCASTER_ID"
	TwitchAccessToken   = "TWITCH_ACCESS_TOKEN"
	TwitchUsername      = "TWITCH_USERNAME"
	TwitchChannel       = "TWITCH_CHANNEL"
	YouTubeChannelID    = "YOUTUBE_CHANNEL_ID"
	YouTubeAPIKey       = "YOUTUBE_API_KEY"
)

// APIKeyNames are the fields shown in the API keys form, in display order.
var APIKeyNames = []string{
	TwitchClientID,
	TwitchClientSecret,
	TwitchBroadcasterID,
	YouTubeChannelID,
	YouTubeAPIKey,
}

// CredentialNames lists every credential read from the environment.
var CredentialNames = []string{
	TwitchClientID,
	TwitchClientSecret,
	TwitchBroadcasterID,
	TwitchAccessToken,
	TwitchUsername,
	TwitchChannel,
	YouTubeChannelID,
	YouTubeAPIKey,
}

// credentialAliases maps alternate environment names onto canonical ones.
// The alias is only consulted when the canonical name is unset.
var credentialAliases = map[string]string{
	"TWITCH_CHANNEL_ID": TwitchBroadcasterID,
	"TWITCH_USER_TOKEN": TwitchAccessToken,
}

// CredentialStore reads and writes credentials in a dotenv file. Values from
// the process environment take precedence over the file on Read.
type CredentialStore struct {
	path string

	// LookupEnv is os.LookupEnv unless replaced in tests.
	LookupEnv func(string) (string, bool)

	mu sync.Mutex
}

// credentialsPath returns ~/.streamchat/.secrets.env
func credentialsPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ".secrets.env"), nil
}

// DefaultCredentials returns the store at ~/.streamchat/.secrets.env
func DefaultCredentials() (*CredentialStore, error) {
	path, err := credentialsPath()
	if err != nil {
		return nil, pErrors.CredentialsLoadFailed("~/.streamchat/.secrets.env", err)
	}
	return NewCredentialStore(path), nil
}

// NewCredentialStore returns a store backed by the dotenv file at path.
func NewCredentialStore(path string) *CredentialStore {
	return &CredentialStore{path: path, LookupEnv: os.LookupEnv}
}

// Path returns the backing file.
func (s *CredentialStore) Path() string {
	return s.path
}

// Read returns the file values overlaid with any set environment variables.
// A missing file is not an error.
func (s *CredentialStore) Read() (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.readFile()
	if err != nil {
		return nil, err
	}

	for _, name := range CredentialNames {
		if v, ok := s.LookupEnv(name); ok && v != "" {
			values[name] = v
		}
	}
	for alias, name := range credentialAliases {
		if values[name] != "" {
			continue
		}
		if v, ok := s.LookupEnv(alias); ok && v != "" {
			values[name] = v
		}
	}
	return values, nil
}

// Save merges values into the file. Empty values remove the key. The
// environment is not modified.
func (s *CredentialStore) Save(values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.readFile()
	if err != nil {
		return pErrors.CredentialsSaveFailed(s.path, err)
	}
	for k, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			delete(existing, k)
			continue
		}
		existing[k] = v
	}

	content, err := godotenv.Marshal(existing)
	if err != nil {
		return pErrors.CredentialsSaveFailed(s.path, err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return pErrors.CredentialsSaveFailed(s.path, err)
	}
	if err := os.WriteFile(s.path, []byte(content+"\n"), 0600); err != nil {
		return pErrors.CredentialsSaveFailed(s.path, err)
	}

	logger.WithComponent("config").Info("saved credentials", "path", s.path, "keys", len(existing))
	return nil
}

func (s *CredentialStore) readFile() (map[string]string, error) {
	values, err := godotenv.Read(s.path)
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, pErrors.CredentialsLoadFailed(s.path, err)
	}
	return values, nil
}

// Masked returns v with all but the last four characters hidden.
func Masked(v string) string {
	if v == "" {
		return ""
	}
	if len(v) <= 4 {
		return strings.Repeat("•", len(v))
	}
	return strings.Repeat("•", len(v)-4) + v[len(v)-4:]
}
