package payload

import (
	"fmt"
	"strings"
)

// Kind identifies the content type of a QR payload.
type Kind string

const (
	KindText   Kind = "text"
	KindURL    Kind = "url"
	KindTel    Kind = "tel"
	KindSMS    Kind = "sms"
	KindEmail  Kind = "email"
	KindWiFi   Kind = "wifi"
	KindMeCard Kind = "mecard"
)

var kinds = []Kind{KindText, KindURL, KindTel, KindSMS, KindEmail, KindWiFi, KindMeCard}

// Kinds returns all supported kinds in a stable order.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}

// ParseKind converts a string into a Kind.
// Matching is exact: kinds are lower-case identifiers on the wire.
func ParseKind(s string) (Kind, error) {
	for _, k := range kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w %q: must be one of %s", ErrUnknownKind, s, KindList())
}

// KindList returns the supported kinds joined by ", ".
func KindList() string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

func (k Kind) String() string { return string(k) }
