package google

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmail "google.golang.org/api/gmail/v1"
)

// OOB is the out-of-band redirect URI for installed applications that read
// the authorization code from the user instead of a local callback server.
const OOB = "urn:ietf:wg:oauth:2.0:oob"

// Authenticator obtains read-only Gmail credentials for a single mailbox.
// The client secret comes from a downloaded OAuth client JSON file and the
// user token is cached on disk after the one-time interactive consent.
type Authenticator struct {
	// CredentialsFile is the path to the OAuth client secret JSON downloaded
	// from the Google Cloud Console.
	CredentialsFile string

	// TokenFile is the path where the user token is cached.
	TokenFile string
}

// FindCredentialsFile resolves the client secret file. It accepts either
// the configured path or, when that file is absent, the raw filename Google
// generates on download (client_secret_*.json) in the same directory.
func FindCredentialsFile(path string) (string, error) {
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	matches, err := filepath.Glob(filepath.Join(filepath.Dir(path), "client_secret_*.json"))
	if err == nil && len(matches) > 0 {
		sort.Strings(matches)
		return matches[0], nil
	}

	return "", fmt.Errorf("no Google OAuth credentials file found at %s; "+
		"download the OAuth client JSON from the Google Cloud Console "+
		"(APIs & Services > Credentials) and place it there", path)
}

// oauthConfig loads the OAuth2 configuration from the client secret file.
// The requested scope is read-only Gmail access, nothing more.
func (a *Authenticator) oauthConfig() (*oauth2.Config, error) {
	path, err := FindCredentialsFile(a.CredentialsFile)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file %s: %w", path, err)
	}

	conf, err := google.ConfigFromJSON(data, gmail.GmailReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse credentials file %s: %w", path, err)
	}
	if conf.RedirectURL == "" {
		conf.RedirectURL = OOB
	}
	return conf, nil
}

// HasToken checks if a cached user token exists.
func (a *Authenticator) HasToken() bool {
	_, err := os.Stat(a.TokenFile)
	return err == nil
}

// AuthURL returns the URL the user must visit to authorize mailbox access.
func (a *Authenticator) AuthURL() (string, error) {
	conf, err := a.oauthConfig()
	if err != nil {
		return "", err
	}
	return conf.AuthCodeURL("state", oauth2.AccessTypeOffline), nil
}

// Exchange trades an authorization code for tokens and caches them.
func (a *Authenticator) Exchange(ctx context.Context, authCode string) error {
	conf, err := a.oauthConfig()
	if err != nil {
		return err
	}

	t, err := conf.Exchange(ctx, authCode)
	if err != nil {
		return fmt.Errorf("failed to exchange auth code: %w", err)
	}

	return a.saveToken(t)
}

// TokenSource returns an OAuth2 token source backed by the cached token,
// refreshing it through the refresh token when expired. The refreshed token
// is written back to the cache so the next run skips the refresh round trip.
func (a *Authenticator) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	conf, err := a.oauthConfig()
	if err != nil {
		return nil, err
	}

	cached, err := a.loadToken()
	if err != nil {
		return nil, fmt.Errorf("no valid Google OAuth token found, run the auth command first: %w", err)
	}

	ts := conf.TokenSource(ctx, cached)

	// Validate the token, forcing a refresh when it has expired.
	fresh, err := ts.Token()
	if err != nil {
		return nil, fmt.Errorf("cached token is invalid, run the auth command again: %w", err)
	}
	if fresh.AccessToken != cached.AccessToken {
		if err := a.saveToken(fresh); err != nil {
			return nil, fmt.Errorf("failed to cache refreshed token: %w", err)
		}
	}

	return ts, nil
}

// HTTPClient returns an HTTP client configured with OAuth2 authentication.
func (a *Authenticator) HTTPClient(ctx context.Context) (*http.Client, error) {
	ts, err := a.TokenSource(ctx)
	if err != nil {
		return nil, err
	}
	return oauth2.NewClient(ctx, ts), nil
}

func (a *Authenticator) loadToken() (*oauth2.Token, error) {
	data, err := os.ReadFile(a.TokenFile)
	if err != nil {
		return nil, err
	}
	var t oauth2.Token
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("invalid token file %s: %w", a.TokenFile, err)
	}
	return &t, nil
}

func (a *Authenticator) saveToken(t *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(a.TokenFile), 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}
	if err := os.WriteFile(a.TokenFile, data, 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}
