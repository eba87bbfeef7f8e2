package zkey

import (
	"golang.org/x/text/language"
)

// catalog holds the widget strings. Locales without an entry fall back to
// English key by key.
var catalog = map[string]map[string]string{
	"en": {
		"title":           "Sign in to %s",
		"phone_label":     "Phone number",
		"email_label":     "Email address",
		"password_label":  "Password",
		"code_label":      "Verification code",
		"send_code":       "Send code",
		"verify_code":     "Verify",
		"sign_in":         "Sign in",
		"wallet_connect":  "Connect wallet",
		"wallet_scan":     "Scan with your wallet app",
		"code_sent":       "We sent a code to %s",
		"cancel":          "Cancel",
		"or":              "or",
		"error_generic":   "Something went wrong. Please try again.",
		"error_too_many":  "Too many attempts. Please wait a moment.",
		"error_forbidden": "This sign-in method is not available.",
	},
	"id": {
		"title":           "Masuk ke %s",
		"phone_label":     "Nomor telepon",
		"email_label":     "Alamat email",
		"password_label":  "Kata sandi",
		"code_label":      "Kode verifikasi",
		"send_code":       "Kirim kode",
		"verify_code":     "Verifikasi",
		"sign_in":         "Masuk",
		"wallet_connect":  "Hubungkan dompet",
		"wallet_scan":     "Pindai dengan aplikasi dompet Anda",
		"code_sent":       "Kami telah mengirim kode ke %s",
		"cancel":          "Batal",
		"or":              "atau",
		"error_generic":   "Terjadi kesalahan. Silakan coba lagi.",
		"error_too_many":  "Terlalu banyak percobaan. Mohon tunggu sebentar.",
		"error_forbidden": "Metode masuk ini tidak tersedia.",
	},
}

// Localizer negotiates the widget language.
type Localizer struct {
	supported []language.Tag
	matcher   language.Matcher
}

// NewLocalizer builds a matcher over locales; the first one is the
// fallback. Unparseable entries are skipped; an empty result means English.
func NewLocalizer(locales []string) *Localizer {
	var tags []language.Tag
	for _, l := range locales {
		if tag, err := language.Parse(l); err == nil {
			tags = append(tags, tag)
		}
	}
	if len(tags) == 0 {
		tags = []language.Tag{language.English}
	}
	return &Localizer{supported: tags, matcher: language.NewMatcher(tags)}
}

// Negotiate picks a supported locale for the Accept-Language header. When
// the header yields no confident match, fallback (the application's default
// locale) wins if it is supported.
func (l *Localizer) Negotiate(acceptLanguage, fallback string) string {
	if prefs, _, err := language.ParseAcceptLanguage(acceptLanguage); err == nil && len(prefs) > 0 {
		_, idx, conf := l.matcher.Match(prefs...)
		if conf != language.No {
			return l.base(idx)
		}
	}
	if fallback != "" {
		if tag, err := language.Parse(fallback); err == nil {
			_, idx, conf := l.matcher.Match(tag)
			if conf != language.No {
				return l.base(idx)
			}
		}
	}
	return l.base(0)
}

func (l *Localizer) base(idx int) string {
	b, _ := l.supported[idx].Base()
	return b.String()
}

// Supports reports whether locale is one of the configured locales.
func (l *Localizer) Supports(locale string) bool {
	tag, err := language.Parse(locale)
	if err != nil {
		return false
	}
	_, _, conf := l.matcher.Match(tag)
	return conf == language.Exact || conf == language.High
}

// Messages returns the string table for locale.
func Messages(locale string) map[string]string {
	out := make(map[string]string, len(catalog["en"]))
	for k, v := range catalog["en"] {
		out[k] = v
	}
	for k, v := range catalog[locale] {
		out[k] = v
	}
	return out
}
