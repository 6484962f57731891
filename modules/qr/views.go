package qr

import (
	"github.com/dmitrymomot/qrgen/pkg/payload"
	"github.com/dmitrymomot/qrgen/pkg/qrcode"
)

//go:generate templ generate

// PageParams feeds the index page.
type PageParams struct {
	Title string
	// Preview is a data URI shown until the first generation. Optional.
	Preview string
}

type field struct {
	name     string
	label    string
	input    string // text, textarea, select, checkbox
	required bool
	options  []string
}

// kindFields describes the form inputs of every payload kind.
var kindFields = map[payload.Kind][]field{
	payload.KindText: {
		{name: "text", label: "Text", input: "textarea", required: true},
	},
	payload.KindURL: {
		{name: "url", label: "URL", input: "text", required: true},
	},
	payload.KindTel: {
		{name: "number", label: "Phone number", input: "text", required: true},
	},
	payload.KindSMS: {
		{name: "number", label: "Phone number", input: "text", required: true},
		{name: "message", label: "Message", input: "textarea"},
	},
	payload.KindEmail: {
		{name: "to", label: "To", input: "text", required: true},
		{name: "subject", label: "Subject", input: "text"},
		{name: "body", label: "Body", input: "textarea"},
	},
	payload.KindWiFi: {
		{name: "ssid", label: "Network name (SSID)", input: "text", required: true},
		{name: "password", label: "Password", input: "text"},
		{name: "security", label: "Security", input: "select", options: []string{"WPA", "WEP", "nopass"}},
		{name: "hidden", label: "Hidden network", input: "checkbox"},
	},
	payload.KindMeCard: {
		{name: "name", label: "Name", input: "text", required: true},
		{name: "phone", label: "Phone", input: "text"},
		{name: "email", label: "Email", input: "text"},
		{name: "url", label: "Website", input: "text"},
		{name: "org", label: "Organization", input: "text"},
		{name: "address", label: "Address", input: "text"},
		{name: "note", label: "Note", input: "textarea"},
	},
}

var levels = []qrcode.Level{qrcode.LevelL, qrcode.LevelM, qrcode.LevelQ, qrcode.LevelH}
