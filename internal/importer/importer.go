// Package importer moves the key-value dump of a device install into the
// server store: accounts first, then the owner's ledger blobs.
package importer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"fitbuddy/backend/internal/ledger"
	"fitbuddy/backend/internal/service"
	"fitbuddy/backend/internal/storage"
)

const (
	usersKey   = "fitbuddy_users"
	sessionKey = "user"
)

var ErrNoOwner = errors.New("dump has no signed-in user; pass an owner email")

type deviceUser struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Report struct {
	AccountsCreated int      `json:"accountsCreated"`
	AccountsSkipped int      `json:"accountsSkipped"`
	OwnerID         string   `json:"ownerId"`
	Keys            []string `json:"keys"`
}

type Importer struct {
	auth    *service.AuthService
	backend storage.Backend
	logger  zerolog.Logger
}

func New(auth *service.AuthService, backend storage.Backend, logger zerolog.Logger) *Importer {
	return &Importer{auth: auth, backend: backend, logger: logger}
}

// Import creates the dump's accounts and copies the ledger keys verbatim into
// the namespace of ownerEmail, or of the dump's signed-in user when
// ownerEmail is empty. Ledger values are not reinterpreted; reads of a
// malformed blob fall back to defaults as they would on the device.
func (im *Importer) Import(ctx context.Context, dump map[string]string, ownerEmail string) (Report, error) {
	var report Report

	for _, u := range im.deviceUsers(dump) {
		_, apiErr := im.auth.Register(ctx, service.RegisterInput{Name: u.Name, Email: u.Email, Password: u.Password})
		switch {
		case apiErr == nil:
			report.AccountsCreated++
		case apiErr.Status == http.StatusConflict || apiErr.Status == http.StatusBadRequest:
			report.AccountsSkipped++
			im.logger.Warn().Str("email", u.Email).Str("reason", apiErr.Message).Msg("device account skipped")
		default:
			return report, fmt.Errorf("create account %s: %w", u.Email, apiErr)
		}
	}

	if ownerEmail == "" {
		ownerEmail = sessionEmail(dump)
	}
	if ownerEmail == "" {
		return report, ErrNoOwner
	}
	owner, apiErr := im.auth.FindByEmail(ctx, ownerEmail)
	if apiErr != nil {
		return report, fmt.Errorf("resolve owner %s: %w", ownerEmail, apiErr)
	}
	report.OwnerID = owner.ID

	store := im.backend.Namespace(owner.ID)
	for _, key := range ledgerKeys(dump) {
		if err := store.Set(ctx, key, dump[key]); err != nil {
			return report, fmt.Errorf("copy %s: %w", key, err)
		}
		report.Keys = append(report.Keys, key)
	}
	return report, nil
}

func (im *Importer) deviceUsers(dump map[string]string) []deviceUser {
	raw, ok := dump[usersKey]
	if !ok {
		return nil
	}
	var users []deviceUser
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		im.logger.Warn().Err(err).Str("key", usersKey).Msg("device accounts unreadable, skipping")
		return nil
	}
	return users
}

func sessionEmail(dump map[string]string) string {
	raw, ok := dump[sessionKey]
	if !ok {
		return ""
	}
	var session struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return ""
	}
	return session.Email
}

func ledgerKeys(dump map[string]string) []string {
	var keys []string
	for key := range dump {
		switch {
		case key == ledger.FavoritesKey, key == ledger.HistoryKey, key == ledger.WaterGoalKey:
			keys = append(keys, key)
		case strings.HasPrefix(key, ledger.WaterKey("")):
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}
