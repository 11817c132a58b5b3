package inventory

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ulikunitz/xz"
)

const compressedPrefix = "xz:"

// Encode serializes inv as JSON, optionally xz-compressed and base64 armoured
// so the payload stays a plain string.
func Encode(inv *Inventory, compress bool) (string, error) {
	data, err := json.Marshal(inv)
	if err != nil {
		return "", fmt.Errorf("encode inventory: %w", err)
	}
	return armour(data, compress)
}

func armour(data []byte, compress bool) (string, error) {
	if !compress {
		return string(data), nil
	}
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		return "", fmt.Errorf("xz writer: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return "", fmt.Errorf("compress payload: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("compress payload: %w", err)
	}
	return compressedPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Decode accepts both compressed and plain payloads.
func Decode(payload string) (*Inventory, error) {
	data := []byte(payload)
	if strings.HasPrefix(payload, compressedPrefix) {
		raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(payload, compressedPrefix))
		if err != nil {
			return nil, fmt.Errorf("decode payload: %w", err)
		}
		r, err := xz.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("xz reader: %w", err)
		}
		data, err = io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("decompress payload: %w", err)
		}
	}
	var inv Inventory
	if err := json.Unmarshal(data, &inv); err != nil {
		return nil, fmt.Errorf("decode inventory: %w", err)
	}
	for _, s := range inv.Sheets {
		if s == nil {
			return nil, fmt.Errorf("decode inventory: null sheet")
		}
		for i, r := range s.Rows {
			if r == nil {
				s.Rows[i] = &Row{}
			}
		}
	}
	return &inv, nil
}

// Summary is the reduced form persisted when the full inventory does not fit.
type Summary map[string]SheetSummary

type SheetSummary struct {
	Length int `json:"length"`
}

// Summarize counts rows per sheet.
func Summarize(inv *Inventory) Summary {
	out := make(Summary)
	if inv == nil {
		return out
	}
	for _, s := range inv.Sheets {
		out[s.Name] = SheetSummary{Length: len(s.Rows)}
	}
	return out
}

// EncodeSummary serializes a summary with the same compression choice.
func EncodeSummary(sum Summary, compress bool) (string, error) {
	data, err := json.Marshal(sum)
	if err != nil {
		return "", fmt.Errorf("encode summary: %w", err)
	}
	return armour(data, compress)
}
