package core

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
)

// Preference keys shared with the dashboard.
const (
	PrefUserName  = "userName"
	PrefUserEmail = "userEmail"
	PrefShopName  = "shopName"
	PrefTheme     = "theme"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// ErrPreferenceNotSet is returned by Get for a key with no stored value.
var ErrPreferenceNotSet = errors.New("preference not set")

// PreferenceChange describes one write to a PreferencesStore.
type PreferenceChange struct {
	Key     string
	Value   string
	Deleted bool
}

// PreferencesStore is a small key/value store for per-installation settings
// such as the display name and theme. Stores are injected; nothing reads
// preferences from a global.
type PreferencesStore interface {
	// Get returns the stored value or ErrPreferenceNotSet.
	Get(ctx context.Context, key string) (string, error)

	// Set validates and stores value under key.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an unset key is not an error.
	Delete(ctx context.Context, key string) error

	// All returns a copy of every stored preference.
	All(ctx context.Context) (map[string]string, error)

	// Subscribe registers fn to be called after every change that alters the
	// stored value. The returned func removes the subscription.
	Subscribe(fn func(PreferenceChange)) (unsubscribe func())
}

// ValidatePreference checks known keys; unknown keys only need a non-blank name.
func ValidatePreference(key, value string) error {
	if strings.TrimSpace(key) == "" {
		return invalid("preference key is required")
	}
	switch key {
	case PrefUserName, PrefShopName:
		return minLength(key, strings.TrimSpace(value), 2)
	case PrefUserEmail:
		addr, err := mail.ParseAddress(value)
		if err != nil || addr.Address != strings.TrimSpace(value) {
			return invalid("%s must be a valid email address", key)
		}
	case PrefTheme:
		if value != ThemeLight && value != ThemeDark {
			return invalid("%s must be %q or %q", key, ThemeLight, ThemeDark)
		}
	}
	return nil
}

// ClearIdentity removes the stored user name and email, as a logout does.
func ClearIdentity(ctx context.Context, store PreferencesStore) error {
	for _, key := range []string{PrefUserName, PrefUserEmail} {
		if err := store.Delete(ctx, key); err != nil {
			return fmt.Errorf("clear %s: %w", key, err)
		}
	}
	return nil
}
