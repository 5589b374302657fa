package webhook

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrMalformedPayload = errors.New("malformed webhook payload")

// Payload is the typed form of an acquirer notification. Only the fields the
// processor acts on are bound; the signature is verified over the raw payload
// so unknown fields still participate in the token.
type Payload struct {
	TerminalKey string
	OrderID     string
	Success     bool
	Status      string
	PaymentID   string
	ErrorCode   string
	Amount      int64
}

// bindPayload validates required fields out of the raw decoded body before
// any processing happens.
func bindPayload(raw map[string]any) (*Payload, error) {
	p := &Payload{}

	var err error
	if p.TerminalKey, err = requireString(raw, "TerminalKey"); err != nil {
		return nil, err
	}
	if p.OrderID, err = requireString(raw, "OrderId"); err != nil {
		return nil, err
	}
	if p.Status, err = requireString(raw, "Status"); err != nil {
		return nil, err
	}
	if p.ErrorCode, err = requireString(raw, "ErrorCode"); err != nil {
		return nil, err
	}

	// PaymentId arrives as a JSON number on notifications.
	switch v := raw["PaymentId"].(type) {
	case string:
		p.PaymentID = v
	case json.Number:
		p.PaymentID = v.String()
	default:
		return nil, fmt.Errorf("%w: missing PaymentId", ErrMalformedPayload)
	}

	success, ok := raw["Success"].(bool)
	if !ok {
		return nil, fmt.Errorf("%w: missing Success", ErrMalformedPayload)
	}
	p.Success = success

	amount, ok := raw["Amount"].(json.Number)
	if !ok {
		return nil, fmt.Errorf("%w: missing Amount", ErrMalformedPayload)
	}
	if p.Amount, err = amount.Int64(); err != nil {
		return nil, fmt.Errorf("%w: Amount is not an integer", ErrMalformedPayload)
	}

	return p, nil
}

func requireString(raw map[string]any, key string) (string, error) {
	v, ok := raw[key].(string)
	if !ok || v == "" {
		return "", fmt.Errorf("%w: missing %s", ErrMalformedPayload, key)
	}
	return v, nil
}
