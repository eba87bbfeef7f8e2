package zkey

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"tenant-platform/internal/model"
)

var (
	phonePattern     = regexp.MustCompile(`^\+?[1-9][0-9]{7,14}$`)
	emailPattern     = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	walletPattern    = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)
	signaturePattern = regexp.MustCompile(`^0x[0-9a-fA-F]{130}$`)
	codePattern      = regexp.MustCompile(`^[0-9]{4,8}$`)
	colorPattern     = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{model.ErrValidation}, args...)...)
}

// cleanPhone strips spaces, dashes, dots and parentheses.
func cleanPhone(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '.', '(', ')':
			return -1
		}
		return r
	}, strings.TrimSpace(s))
}

func validateIdentifier(channel, identifier string) (string, error) {
	switch channel {
	case "phone":
		p := cleanPhone(identifier)
		if !phonePattern.MatchString(p) {
			return "", invalid("phone number %q is not valid", identifier)
		}
		return p, nil
	case "email":
		e := strings.ToLower(strings.TrimSpace(identifier))
		if !emailPattern.MatchString(e) {
			return "", invalid("email %q is not valid", identifier)
		}
		return e, nil
	}
	return "", invalid("unknown channel %q", channel)
}

func validateCode(code string) error {
	if !codePattern.MatchString(code) {
		return invalid("code must be 4 to 8 digits")
	}
	return nil
}

func validateWallet(address string) error {
	if !walletPattern.MatchString(address) {
		return invalid("wallet address must be 0x followed by 40 hex digits")
	}
	return nil
}

func validateSignature(sig string) error {
	if !signaturePattern.MatchString(sig) {
		return invalid("signature must be 0x followed by 130 hex digits")
	}
	return nil
}

func validateRedirectURIs(uris []string) error {
	for _, raw := range uris {
		u, err := url.Parse(raw)
		if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return invalid("redirect uri %q must be an absolute http(s) URL", raw)
		}
		if u.Fragment != "" {
			return invalid("redirect uri %q must not contain a fragment", raw)
		}
	}
	return nil
}

func validateBranding(b model.Branding) error {
	for name, c := range map[string]string{"primary_color": b.PrimaryColor, "background_color": b.BackgroundColor} {
		if c != "" && !colorPattern.MatchString(c) {
			return invalid("%s %q must be a hex color", name, c)
		}
	}
	if b.LogoURL != "" {
		if err := validateRedirectURIs([]string{b.LogoURL}); err != nil {
			return invalid("logo_url %q must be an absolute http(s) URL", b.LogoURL)
		}
	}
	if len(b.Title) > 120 {
		return invalid("title must be at most 120 characters")
	}
	return nil
}

var allLoginMethods = []string{model.LoginOTPPhone, model.LoginOTPEmail, model.LoginPassword, model.LoginWallet}

func normalizeLoginMethods(methods []string) ([]string, error) {
	if len(methods) == 0 {
		return []string{model.LoginOTPPhone, model.LoginOTPEmail}, nil
	}
	seen := make(map[string]bool, len(methods))
	var out []string
	for _, m := range methods {
		ok := false
		for _, known := range allLoginMethods {
			if m == known {
				ok = true
				break
			}
		}
		if !ok {
			return nil, invalid("unknown login method %q", m)
		}
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	return out, nil
}
