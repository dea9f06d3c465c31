package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// payload is a flat key-value request body. The API accepts both form data
// and JSON objects; either is flattened into the same representation so the
// services can distinguish an absent key from an empty value.
type payload map[string]string

// parsePayload reads the request body into a payload. JSON bodies must be a
// flat object; non-string values are stringified, matching the behaviour of
// form encoding where every value arrives as a string. An empty body yields
// an empty payload rather than an error.
func parsePayload(r *http.Request) (payload, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		raw := make(map[string]any)
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("error decoding json payload: %w", err)
		}

		p := make(payload, len(raw))
		for key, value := range raw {
			switch v := value.(type) {
			case string:
				p[key] = v
			case nil:
				p[key] = ""
			default:
				p[key] = fmt.Sprint(v)
			}
		}
		return p, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("error parsing form payload: %w", err)
	}

	p := make(payload, len(r.PostForm))
	for key, values := range r.PostForm {
		if len(values) > 0 {
			p[key] = values[0]
		} else {
			p[key] = ""
		}
	}
	return p, nil
}

// get returns a pointer to the value stored under key, or nil when the key
// was not present in the request body.
func (p payload) get(key string) *string {
	if value, ok := p[key]; ok {
		return &value
	}
	return nil
}
