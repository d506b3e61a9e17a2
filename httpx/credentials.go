package httpx

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/oauth"
	"golang.org/x/crypto/bcrypt"

	"github.com/CreativVentures-hub/focus-group-ai/config"
)

func NewBearerServer(verifier oauth.CredentialsVerifier, cfg config.Config) *oauth.BearerServer {
	return oauth.NewBearerServer(cfg.TokenSecret, cfg.TokenTTL, verifier, nil)
}

type credentialsVerifier struct {
	users map[string]string

	mu     sync.Mutex
	tokens map[string]time.Time
}

// CredentialsVerifier reads a username:bcrypt-hash file. Tokens are tracked
// in memory only; a restart just forces everyone through login again.
func CredentialsVerifier(usersFile string) (oauth.CredentialsVerifier, error) {
	raw, err := os.ReadFile(usersFile)
	if err != nil {
		return nil, err
	}

	users := map[string]string{}
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		username, hash, ok := strings.Cut(line, ":")
		if !ok {
			return nil, errors.New("malformed credentials line: " + line)
		}
		users[username] = hash
	}
	if len(users) == 0 {
		return nil, errors.New("no users configured in " + usersFile)
	}

	return &credentialsVerifier{
		users:  users,
		tokens: map[string]time.Time{},
	}, nil
}

func (cs *credentialsVerifier) ValidateUser(username string, password string, scope string, r *http.Request) error {
	hash, ok := cs.users[username]
	if !ok {
		return errors.New("unknown user")
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

func (cs *credentialsVerifier) StoreTokenID(tokenType oauth.TokenType, credential string, tokenID string, refreshTokenID string) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.tokens[tokenKey(credential, tokenID, refreshTokenID)] = time.Now().Add(8760 * time.Hour)
	return nil
}

func (cs *credentialsVerifier) ValidateTokenID(tokenType oauth.TokenType, credential string, tokenID string, refreshTokenID string) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	key := tokenKey(credential, tokenID, refreshTokenID)
	expiration, ok := cs.tokens[key]
	// a refresh token may be spent exactly once
	delete(cs.tokens, key)

	if !ok || expiration.Before(time.Now()) {
		return errors.New("could not refresh")
	}
	return nil
}

func (*credentialsVerifier) AddClaims(tokenType oauth.TokenType, credential string, tokenID string, scope string, r *http.Request) (map[string]string, error) {
	return map[string]string{"roles": "member"}, nil
}

func (*credentialsVerifier) AddProperties(tokenType oauth.TokenType, credential string, tokenID string, scope string, r *http.Request) (map[string]string, error) {
	return map[string]string{}, nil
}

func (*credentialsVerifier) ValidateClient(clientID string, clientSecret string, scope string, r *http.Request) error {
	return errors.New("not supported")
}

func tokenKey(credential, tokenID, refreshTokenID string) string {
	return credential + "\x00" + tokenID + "\x00" + refreshTokenID
}
