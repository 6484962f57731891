// Package payload turns structured input into the text strings that QR code
// readers understand.
//
// Every supported content type has its own grammar. Plain text is encoded as
// is, URLs get an https scheme when none is given, phone numbers and SMS use
// the tel: and sms: URI schemes, e-mail uses mailto:, and Wi-Fi credentials
// and contact cards use the WIFI: and MECARD: formats recognised by the
// majority of scanner apps.
//
// # Usage
//
//	import "github.com/dmitrymomot/qrgen/pkg/payload"
//
//	text, err := payload.Format(payload.KindWiFi, map[string]any{
//		"ssid":     "Home;Net",
//		"password": "s3cret",
//	})
//	// text == `WIFI:T:WPA;S:Home\;Net;P:s3cret;H:false;;`
//
// Field maps usually come straight from a decoded JSON body, so values may be
// strings, float64 numbers or booleans. Absent, null and whitespace-only values
// count as missing.
//
// # Error Handling
//
// Unknown kinds return ErrUnknownKind. Problems with individual fields are
// reported as *FieldError values wrapping either ErrMissingField or
// ErrInvalidField, so callers can use errors.Is for classification and
// errors.As to learn which field was at fault.
package payload
