package payload

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// schemePattern matches an explicit URI scheme followed by an authority,
// e.g. "https://" or "ftp://".
var schemePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*://`)

// Format builds the canonical QR text for kind from data.
func Format(kind Kind, data map[string]any) (string, error) {
	f := fields{kind: kind, data: data}

	switch kind {
	case KindText:
		return f.required("text")
	case KindURL:
		return formatURL(f)
	case KindTel:
		return formatTel(f)
	case KindSMS:
		return formatSMS(f)
	case KindEmail:
		return formatEmail(f)
	case KindWiFi:
		return formatWiFi(f)
	case KindMeCard:
		return formatMeCard(f)
	default:
		return "", fmt.Errorf("%w %q: must be one of %s", ErrUnknownKind, kind, KindList())
	}
}

func formatURL(f fields) (string, error) {
	u, err := f.required("url")
	if err != nil {
		return "", err
	}
	u = strings.TrimSpace(u)
	if !schemePattern.MatchString(u) {
		u = "https://" + u
	}
	return u, nil
}

func formatTel(f fields) (string, error) {
	number, err := f.required("number")
	if err != nil {
		return "", err
	}
	return "tel:" + strings.TrimSpace(number), nil
}

func formatSMS(f fields) (string, error) {
	number, err := f.required("number")
	if err != nil {
		return "", err
	}
	msg, ok, err := f.optional("message")
	if err != nil {
		return "", err
	}

	out := "sms:" + strings.TrimSpace(number)
	if ok {
		out += "?body=" + queryEscape(msg)
	}
	return out, nil
}

func formatEmail(f fields) (string, error) {
	to, err := f.required("to")
	if err != nil {
		return "", err
	}

	var query []string
	for _, name := range []string{"subject", "body"} {
		v, ok, err := f.optional(name)
		if err != nil {
			return "", err
		}
		if ok {
			query = append(query, name+"="+queryEscape(v))
		}
	}

	out := "mailto:" + url.PathEscape(strings.TrimSpace(to))
	if len(query) > 0 {
		out += "?" + strings.Join(query, "&")
	}
	return out, nil
}

// Wi-Fi security types accepted by scanner apps.
const (
	SecurityWPA    = "WPA"
	SecurityWEP    = "WEP"
	SecurityNoPass = "nopass"
)

func formatWiFi(f fields) (string, error) {
	ssid, err := f.required("ssid")
	if err != nil {
		return "", err
	}

	security := SecurityWPA
	if s, ok, err := f.optional("security"); err != nil {
		return "", err
	} else if ok {
		switch strings.ToUpper(strings.TrimSpace(s)) {
		case SecurityWPA:
			security = SecurityWPA
		case SecurityWEP:
			security = SecurityWEP
		case strings.ToUpper(SecurityNoPass):
			security = SecurityNoPass
		default:
			return "", invalid(f.kind, "security", "must be one of WPA, WEP, nopass")
		}
	}

	password, hasPassword, err := f.optional("password")
	if err != nil {
		return "", err
	}
	hidden, err := f.boolean("hidden")
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("WIFI:T:")
	b.WriteString(security)
	b.WriteString(";S:")
	b.WriteString(Escape(ssid))
	b.WriteByte(';')
	if hasPassword && security != SecurityNoPass {
		b.WriteString("P:")
		b.WriteString(Escape(password))
		b.WriteByte(';')
	}
	b.WriteString("H:")
	b.WriteString(strconv.FormatBool(hidden))
	b.WriteString(";;")
	return b.String(), nil
}

func formatMeCard(f fields) (string, error) {
	name, err := meCardName(f)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("MECARD:N:")
	b.WriteString(name)
	b.WriteByte(';')

	for _, tok := range []struct{ field, tag string }{
		{"phone", "TEL"},
		{"email", "EMAIL"},
	} {
		values, err := f.list(tok.field)
		if err != nil {
			return "", err
		}
		for _, v := range values {
			writeToken(&b, tok.tag, v)
		}
	}

	for _, tok := range []struct{ field, tag string }{
		{"url", "URL"},
		{"org", "ORG"},
		{"address", "ADR"},
		{"note", "NOTE"},
	} {
		v, ok, err := f.optional(tok.field)
		if err != nil {
			return "", err
		}
		if ok {
			writeToken(&b, tok.tag, v)
		}
	}

	b.WriteByte(';')
	return b.String(), nil
}

// meCardName prefers "name" and falls back to "last_name,first_name".
func meCardName(f fields) (string, error) {
	name, ok, err := f.optional("name")
	if err != nil {
		return "", err
	}
	if ok {
		return Escape(name), nil
	}

	var parts []string
	for _, field := range []string{"last_name", "first_name"} {
		v, ok, err := f.optional(field)
		if err != nil {
			return "", err
		}
		if ok {
			parts = append(parts, Escape(strings.TrimSpace(v)))
		}
	}
	if len(parts) == 0 {
		return "", missing(f.kind, "name")
	}
	return strings.Join(parts, ","), nil
}

func writeToken(b *strings.Builder, tag, value string) {
	b.WriteString(tag)
	b.WriteByte(':')
	b.WriteString(Escape(value))
	b.WriteByte(';')
}
