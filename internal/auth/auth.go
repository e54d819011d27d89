// Package auth gates the dashboard behind a shared API token and a
// small operator account list kept next to the data files.
package auth

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/papagugunim/LRKF-stock-dashboard/internal/domain"
)

// Row kinds of the admin file. It is a headerless CSV where the first
// column selects the row meaning.
const (
	rowKindUser  = "USER"
	rowKindToken = "API_TOKEN"
)

type account struct {
	password string
	name     string
}

// Authenticator validates operator logins and issues the API token.
type Authenticator struct {
	accounts map[string]account
	token    string
}

// New builds an Authenticator from an optional admin file. A missing or
// unreadable file leaves only the fallback token active.
func New(adminFile, fallbackToken string) *Authenticator {
	a := &Authenticator{
		accounts: make(map[string]account),
		token:    fallbackToken,
	}

	if adminFile == "" {
		return a
	}
	f, err := os.Open(adminFile)
	if err != nil {
		log.Warn().Err(err).Str("file", adminFile).Msg("Admin file unavailable, using fallback token only")
		return a
	}
	defer f.Close()

	if err := a.load(f); err != nil {
		log.Warn().Err(err).Str("file", adminFile).Msg("Failed to parse admin file")
	}
	return a
}

func (a *Authenticator) load(r io.Reader) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	for {
		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read admin record: %w", err)
		}
		if len(record) == 0 {
			continue
		}

		kind := strings.TrimSpace(strings.TrimPrefix(record[0], "\uFEFF"))
		switch kind {
		case rowKindUser:
			if len(record) < 3 {
				continue
			}
			username := strings.TrimSpace(record[1])
			if username == "" {
				continue
			}
			acct := account{password: strings.TrimSpace(record[2])}
			if len(record) > 3 {
				acct.name = strings.TrimSpace(record[3])
			}
			a.accounts[username] = acct
		case rowKindToken:
			if len(record) > 1 && strings.TrimSpace(record[1]) != "" {
				a.token = strings.TrimSpace(record[1])
			}
		}
	}
}

// Login checks an operator credential pair.
func (a *Authenticator) Login(username, password string) (domain.User, bool) {
	acct, ok := a.accounts[username]
	if !ok || acct.password != password {
		return domain.User{}, false
	}
	name := acct.name
	if name == "" {
		name = username
	}
	return domain.User{Username: username, Name: name}, true
}

// Token returns the API token clients must present on data routes.
func (a *Authenticator) Token() string {
	return a.token
}

// Verify reports whether the presented token matches the active one.
func (a *Authenticator) Verify(token string) bool {
	return token != "" && token == a.token
}
