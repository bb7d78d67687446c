package product

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// Product maps to the products table. Category holds a category slug but is
// not checked against the categories table unless strict mode is on, and
// deleting a category leaves it in place.
type Product struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Category    string      `json:"category"`
	Description string      `json:"description"`
	Thicknesses Thicknesses `json:"thicknesses"`
	ImageURL    string      `json:"imageUrl"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// Input carries caller-supplied fields. Nil means "not provided", which on
// update leaves the stored value untouched.
type Input struct {
	Name        *string      `json:"name"`
	Category    *string      `json:"category"`
	Description *string      `json:"description"`
	Thicknesses *Thicknesses `json:"thicknesses"`
	ImageURL    *string      `json:"imageUrl"`
}

// Thicknesses is the ordered list of available board thicknesses, e.g. "6", "12", "18".
// It decodes from either a JSON array or a comma-delimited string.
type Thicknesses []string

// ParseThicknesses splits s on commas and drops blank entries.
func ParseThicknesses(s string) Thicknesses {
	out := Thicknesses{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (t *Thicknesses) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = Thicknesses{}
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = ParseThicknesses(s)
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*t = ParseThicknesses(strings.Join(list, ","))
	return nil
}

func (t Thicknesses) MarshalJSON() ([]byte, error) {
	if t == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(t))
}
