package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/qrgen/svc/generator"
)

type renderFlags struct {
	kind    string
	data    []string
	json    string
	format  string
	level   string
	scale   int
	border  int
	dark    string
	light   string
	output  string
	payload bool
}

func newRenderCmd() *cobra.Command {
	f := &renderFlags{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a single QR code to a file or stdout",
		Example: `  qrgen render --type wifi --data ssid=Home --data password=secret -o wifi.png
  qrgen render --type url --data url=example.com --format svg -o -
  qrgen render --json request.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := f.request(cmd)
			if err != nil {
				return err
			}
			svc := generator.New()

			if f.payload {
				text, err := svc.Payload(req)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
				return err
			}

			img, err := svc.Generate(cmd.Context(), req)
			if err != nil {
				return err
			}
			return f.write(cmd, img)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.kind, "type", "t", "", "payload kind: text, url, tel, sms, email, wifi, mecard")
	fl.StringArrayVarP(&f.data, "data", "d", nil, "payload field as key=value, repeatable")
	fl.StringVar(&f.json, "json", "", "read the request from a JSON file (- for stdin)")
	fl.StringVarP(&f.format, "format", "f", "", "image format: png or svg")
	fl.StringVarP(&f.level, "error", "e", "", "error correction level: L, M, Q or H")
	fl.IntVar(&f.scale, "scale", 0, "pixels per module")
	fl.IntVar(&f.border, "border", 0, "quiet zone in modules")
	fl.StringVar(&f.dark, "dark", "", "dark module color")
	fl.StringVar(&f.light, "light", "", "background color")
	fl.StringVarP(&f.output, "output", "o", "", "output file, - for stdout (default qr.<format>)")
	fl.BoolVar(&f.payload, "payload", false, "print the encoded text instead of rendering")
	return cmd
}

// request builds the generation request. Flags override the JSON file.
func (f *renderFlags) request(cmd *cobra.Command) (generator.Request, error) {
	var req generator.Request
	if f.json != "" {
		if err := readRequest(cmd, f.json, &req); err != nil {
			return req, err
		}
	}

	fl := cmd.Flags()
	if fl.Changed("type") {
		req.Type = f.kind
	}
	if len(f.data) > 0 {
		data, err := parseData(f.data)
		if err != nil {
			return req, err
		}
		if req.Data == nil {
			req.Data = make(map[string]any, len(data))
		}
		for k, v := range data {
			req.Data[k] = v
		}
	}
	if fl.Changed("format") {
		req.Format = f.format
	}
	if fl.Changed("error") {
		req.Error = f.level
	}
	if fl.Changed("scale") {
		req.Scale = &f.scale
	}
	if fl.Changed("border") {
		req.Border = &f.border
	}
	if fl.Changed("dark") {
		req.Dark = f.dark
	}
	if fl.Changed("light") {
		req.Light = f.light
	}

	if req.Type == "" {
		return req, fmt.Errorf("--type or a JSON request with \"type\" is required")
	}
	return req, nil
}

func readRequest(cmd *cobra.Command, path string, req *generator.Request) error {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		file, err := os.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()
		r = file
	}

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	dec.UseNumber()
	if err := dec.Decode(req); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// parseData turns key=value pairs into payload fields. A repeated key
// collects its values into a list, as mecard phone and email expect.
func parseData(pairs []string) (map[string]any, error) {
	data := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --data %q, expected key=value", pair)
		}
		switch prev := data[key].(type) {
		case nil:
			data[key] = value
		case string:
			data[key] = []any{prev, value}
		case []any:
			data[key] = append(prev, value)
		}
	}
	return data, nil
}

func (f *renderFlags) write(cmd *cobra.Command, img *generator.Image) error {
	out := f.output
	if out == "" {
		out = img.Filename
	}
	if out == "-" {
		_, err := cmd.OutOrStdout().Write(img.Body)
		return err
	}
	if err := os.WriteFile(out, img.Body, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%d bytes, payload %q)\n", out, len(img.Body), img.Payload)
	return nil
}
