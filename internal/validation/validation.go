// Package validation checks and sanitizes every inbound field before it
// reaches the store.  Each field is validated against a Kind; textual kinds
// are sanitized first and the sanitized value is what callers persist.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Kind names a field rule.  The set is closed; Validate rejects unknown kinds.
type Kind string

const (
	KindListName Kind = "list-name"
	KindItemName Kind = "item-name"
	KindQuantity Kind = "quantity"
	KindCategory Kind = "category"
	KindPriority Kind = "priority"
	KindUsername Kind = "username"
	KindPassword Kind = "password"
	KindEmail    Kind = "email"
	KindFullName Kind = "full-name"
)

// Categories lists the accepted item categories in display order.
var Categories = []string{
	"Alimentos",
	"Hogar",
	"Higiene Personal",
	"Limpieza",
	"Ropa",
	"Electrónicos",
	"Medicamentos",
	"Mascotas",
	"Otros",
}

type rule struct {
	pattern *regexp.Regexp
	message string
	numeric bool
}

var rules = map[Kind]rule{
	KindListName: {
		pattern: regexp.MustCompile(`^[a-zA-Z0-9\s]{3,50}$`),
		message: "El nombre de la lista debe tener entre 3 y 50 caracteres, solo letras, números y espacios",
	},
	KindItemName: {
		pattern: regexp.MustCompile(`^[a-zA-Z0-9\s]{2,100}$`),
		message: "El nombre del producto debe tener entre 2 y 100 caracteres, solo letras, números y espacios",
	},
	KindQuantity: {
		pattern: regexp.MustCompile(`^[1-9]\d{0,2}$`),
		message: "La cantidad debe ser un número entre 1 y 999",
		numeric: true,
	},
	KindCategory: {
		pattern: regexp.MustCompile(`^(` + strings.Join(Categories, "|") + `)$`),
		message: "Debe seleccionar una categoría válida",
	},
	KindPriority: {
		pattern: regexp.MustCompile(`^(10|[1-9])$`),
		message: "La prioridad debe ser un número entre 1 y 10",
		numeric: true,
	},
	KindUsername: {
		pattern: regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`),
		message: "El nombre de usuario debe tener entre 3 y 20 caracteres, solo letras, números y guion bajo",
	},
	KindEmail: {
		pattern: regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`),
		message: "El email no tiene un formato válido",
	},
	KindFullName: {
		pattern: regexp.MustCompile(`^[a-zA-ZáéíóúÁÉÍÓÚñÑüÜ\s]{2,100}$`),
		message: "El nombre completo debe tener entre 2 y 100 caracteres, solo letras y espacios",
	},
}

const passwordMessage = "La contraseña debe tener entre 6 y 50 caracteres"

// FieldError is a single rejected field.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *FieldError) Error() string { return e.Reason }

// Errors aggregates every field rejection of one request.
type Errors []*FieldError

func (e Errors) Error() string {
	return strings.Join(e.Reasons(), "; ")
}

// Reasons returns the human readable reasons in validation order.
func (e Errors) Reasons() []string {
	out := make([]string, 0, len(e))
	for _, fe := range e {
		out = append(out, fe.Reason)
	}
	return out
}

// ErrNothingToUpdate is returned when a partial update names no known field.
var ErrNothingToUpdate = errors.New("No hay campos para actualizar")

func required(field string) *FieldError {
	return &FieldError{Field: field, Reason: fmt.Sprintf("El campo %s es requerido", field)}
}

// Validate checks raw against kind.  Textual kinds return the sanitized
// string, numeric kinds return an int.  On failure the error is a
// *FieldError carrying the reason for that field.
func Validate(kind Kind, field string, raw any) (any, error) {
	if kind == KindPassword {
		// any character counts, whitespace included
		if raw == nil || raw == "" {
			return nil, required(field)
		}
		s, ok := raw.(string)
		if !ok {
			return nil, &FieldError{Field: field, Reason: passwordMessage}
		}
		if n := utf8.RuneCountInString(s); n < 6 || n > 50 {
			return nil, &FieldError{Field: field, Reason: passwordMessage}
		}
		return s, nil
	}
	if isMissing(raw) {
		return nil, required(field)
	}
	r, ok := rules[kind]
	if !ok {
		return nil, fmt.Errorf("validation: unknown kind %q", kind)
	}
	if r.numeric {
		s, ok := numberString(raw)
		if !ok || !r.pattern.MatchString(s) {
			return nil, &FieldError{Field: field, Reason: r.message}
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, &FieldError{Field: field, Reason: r.message}
		}
		return n, nil
	}
	s, ok := raw.(string)
	if !ok {
		return nil, &FieldError{Field: field, Reason: r.message}
	}
	clean := Sanitize(s)
	if clean == "" {
		return nil, required(field)
	}
	if !r.pattern.MatchString(clean) {
		return nil, &FieldError{Field: field, Reason: r.message}
	}
	return clean, nil
}

func isMissing(raw any) bool {
	switch v := raw.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	}
	return false
}

// numberString renders raw the way a client would have typed it, so that
// "007" stays "007" and 2.0 becomes "2".
func numberString(raw any) (string, bool) {
	switch v := raw.(type) {
	case string:
		return strings.TrimSpace(v), true
	case int:
		return strconv.Itoa(v), true
	case int32:
		return strconv.FormatInt(int64(v), 10), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return "", false
		}
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case json.Number:
		return v.String(), true
	}
	return "", false
}
