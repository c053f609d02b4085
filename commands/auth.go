package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

func authorize(ctx context.Context, credentials, scope, tokens string, in io.Reader, out io.Writer) (*http.Client, error) {
	config, err := oauthConfig(credentials, scope)
	if err != nil {
		return nil, err
	}

	file := tokenFile(credentials, scope, tokens)

	token, err := tokenFromFile(file)
	if err != nil {
		debugf("no cached OAuth2 token in %v (%v)", file, err)

		if token, err = tokenFromWeb(ctx, config, in, out); err != nil {
			return nil, err
		} else if err := saveToken(file, token); err != nil {
			return nil, err
		}
	}

	return config.Client(ctx, token), nil
}

func oauthConfig(credentials, scope string) (*oauth2.Config, error) {
	b, err := os.ReadFile(credentials)
	if err != nil {
		return nil, err
	}

	return google.ConfigFromJSON(b, scope)
}

// tokenFile returns the path of the cached OAuth2 token for the credentials file e.g.
// <tokens>/credentials.sheets for the 'spreadsheets' scope.
func tokenFile(credentials, scope, tokens string) string {
	_, file := filepath.Split(credentials)
	name := strings.TrimSuffix(file, filepath.Ext(file))

	switch {
	case strings.HasPrefix(scope, SHEETS):
		return filepath.Join(tokens, fmt.Sprintf("%s.sheets", name))

	default:
		return filepath.Join(tokens, fmt.Sprintf("%s.tokens", name))
	}
}

// Requests a token from the web, then returns the retrieved token.
func tokenFromWeb(ctx context.Context, config *oauth2.Config, in io.Reader, out io.Writer) (*oauth2.Token, error) {
	authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)

	fmt.Fprintf(out, "Go to the following link in your browser then type the authorization code: \n%v\n", authURL)

	var code string
	if _, err := fmt.Fscan(in, &code); err != nil {
		return nil, fmt.Errorf("unable to read authorization code (%w)", err)
	}

	token, err := config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve token from web (%w)", err)
	}

	return token, nil
}

// Retrieves a token from a local file.
func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	token := oauth2.Token{}
	if err := json.NewDecoder(f).Decode(&token); err != nil {
		return nil, err
	}

	return &token, nil
}

// Saves a token to a file path. The write is guarded by a lock file.
func saveToken(file string, token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(file), 0700); err != nil {
		return err
	}

	lock := flock.New(file + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("unable to lock token file %v (%w)", file, err)
	}

	defer lock.Unlock()

	infof("Saving OAuth2 token to %s", file)

	f, err := os.OpenFile(file, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to cache OAuth2 token (%w)", err)
	}

	defer f.Close()

	return json.NewEncoder(f).Encode(token)
}
