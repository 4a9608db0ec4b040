package transport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// ProductRequest is the body of create and update. Update is a full replace,
// so omitted optional fields are stored as null.
type ProductRequest struct {
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	ImageURL    *string  `json:"image_url"`
}

// HasPrice reports whether a usable price was sent. Zero counts as missing.
func (r ProductRequest) HasPrice() bool {
	return r.Price != nil && *r.Price != 0
}

// UnmarshalJSON accepts price as a JSON number or a numeric string.
// null and "" leave Price nil.
func (r *ProductRequest) UnmarshalJSON(data []byte) error {
	type plain ProductRequest
	aux := struct {
		*plain
		Price json.RawMessage `json:"price"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	r.Price = nil
	raw := bytes.TrimSpace(aux.Price)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		if s == "" {
			return nil
		}
		raw = []byte(s)
	}

	price, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return fmt.Errorf("price: %w", err)
	}
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return fmt.Errorf("price: %q is not a finite number", raw)
	}
	r.Price = &price
	return nil
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
