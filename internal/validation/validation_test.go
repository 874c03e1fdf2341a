package validation

import (
	"encoding/json"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reasonOf(t *testing.T, err error) string {
	t.Helper()
	var fe *FieldError
	require.True(t, errors.As(err, &fe), "expected *FieldError, got %T", err)
	return fe.Reason
}

func TestValidate_RequiredRegardlessOfKind(t *testing.T) {
	kinds := []Kind{KindListName, KindItemName, KindQuantity, KindCategory, KindPriority,
		KindUsername, KindPassword, KindEmail, KindFullName}
	for _, k := range kinds {
		for _, raw := range []any{nil, "", "   "} {
			if k == KindPassword && raw == "   " {
				continue
			}
			_, err := Validate(k, "campo", raw)
			require.Error(t, err, "kind %s raw %#v", k, raw)
			assert.Equal(t, "El campo campo es requerido", reasonOf(t, err))
		}
	}
}

func TestValidate_Quantity(t *testing.T) {
	for i := 1; i <= 999; i++ {
		v, err := Validate(KindQuantity, "cantidad", strconv.Itoa(i))
		require.NoError(t, err, "quantity %d", i)
		assert.Equal(t, i, v)
	}

	bad := []any{"0", "01", "007", "1000", "12a", "abc", "-1", "1.5", 0, 1000, 2.5, true}
	for _, raw := range bad {
		_, err := Validate(KindQuantity, "cantidad", raw)
		require.Error(t, err, "raw %#v", raw)
		assert.Equal(t, "La cantidad debe ser un número entre 1 y 999", reasonOf(t, err))
	}
}

func TestValidate_QuantityNumericForms(t *testing.T) {
	cases := []any{2, int64(2), float64(2), json.Number("2"), " 2 "}
	for _, raw := range cases {
		v, err := Validate(KindQuantity, "cantidad", raw)
		require.NoError(t, err, "raw %#v", raw)
		assert.Equal(t, 2, v)
	}
}

func TestValidate_Priority(t *testing.T) {
	for i := 1; i <= 10; i++ {
		v, err := Validate(KindPriority, "prioridad", float64(i))
		require.NoError(t, err)
		assert.Equal(t, i, v)
	}
	for _, raw := range []any{0, 11, "010", "x"} {
		_, err := Validate(KindPriority, "prioridad", raw)
		require.Error(t, err)
		assert.Equal(t, "La prioridad debe ser un número entre 1 y 10", reasonOf(t, err))
	}
}

func TestValidate_Category(t *testing.T) {
	for _, c := range Categories {
		v, err := Validate(KindCategory, "categoria", c)
		require.NoError(t, err, c)
		assert.Equal(t, c, v)
	}
	for _, c := range []string{"alimentos", "Electronicos", "Juguetes", "Otros ", "Higiene  Personal", "Otros|Hogar"} {
		v, err := Validate(KindCategory, "categoria", c)
		if c == "Otros " {
			// surrounding whitespace is trimmed by the sanitizer
			require.NoError(t, err)
			assert.Equal(t, "Otros", v)
			continue
		}
		require.Error(t, err, c)
		assert.Equal(t, "Debe seleccionar una categoría válida", reasonOf(t, err))
	}
}

func TestValidate_TextKinds(t *testing.T) {
	tests := []struct {
		kind Kind
		raw  string
		want string
		ok   bool
	}{
		{KindListName, "Compras", "Compras", true},
		{KindListName, "  Super 24  ", "Super 24", true},
		{KindListName, "ab", "", false},
		{KindListName, "<script>", "", false},
		{KindItemName, "Leche", "Leche", true},
		{KindItemName, "L", "", false},
		{KindItemName, "Pan & queso", "", false},
		{KindUsername, "ana01", "ana01", true},
		{KindUsername, "ana_gomez", "ana_gomez", true},
		{KindUsername, "an", "", false},
		{KindUsername, "ana-01", "", false},
		{KindEmail, "ana@x.com", "ana@x.com", true},
		{KindEmail, "ana@x", "", false},
		{KindEmail, "ana.x.com", "", false},
		{KindFullName, "Ana Gomez", "Ana Gomez", true},
		{KindFullName, "José Muñoz", "José Muñoz", true},
		{KindFullName, "Ana 2", "", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind)+"/"+tt.raw, func(t *testing.T) {
			v, err := Validate(tt.kind, "f", tt.raw)
			if !tt.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestValidate_Password(t *testing.T) {
	v, err := Validate(KindPassword, "password", " secret6<>")
	require.NoError(t, err)
	assert.Equal(t, " secret6<>", v, "passwords are returned untouched")

	_, err = Validate(KindPassword, "password", "12345")
	require.Error(t, err)
	assert.Equal(t, "La contraseña debe tener entre 6 y 50 caracteres", reasonOf(t, err))
}

func TestValidate_PasswordWhitespaceCounts(t *testing.T) {
	v, err := Validate(KindPassword, "password", "      ")
	require.NoError(t, err)
	assert.Equal(t, "      ", v)

	_, err = Validate(KindPassword, "password", "   ")
	require.Error(t, err)
	assert.Equal(t, "La contraseña debe tener entre 6 y 50 caracteres", reasonOf(t, err))

	_, err = Validate(KindPassword, "password", "")
	require.Error(t, err)
	assert.Equal(t, "El campo password es requerido", reasonOf(t, err))
}

func TestValidate_UnknownKind(t *testing.T) {
	_, err := Validate(Kind("zip"), "f", "x")
	require.Error(t, err)
	var fe *FieldError
	assert.False(t, errors.As(err, &fe))
}

func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{
		"", "  hola  ", "<b>x</b>", "a & b", "&amp;", "&amp;amp;", "\"quoted\" 'single'",
		"&#32;lead", "tab\tinside", "&lt;script&gt;", "Electrónicos", "&nbsp;x&nbsp;", "&&;;&#",
	}
	for _, in := range inputs {
		once := Sanitize(in)
		assert.Equal(t, once, Sanitize(once), "input %q", in)
	}
	assert.Equal(t, "&lt;b&gt;x&lt;/b&gt;", Sanitize(" <b>x</b> "))
}

func TestCollector_AggregatesAll(t *testing.T) {
	_, err := ValidateItem(map[string]any{
		"nombre":    "L",
		"cantidad":  float64(0),
		"categoria": "Juguetes",
		"prioridad": float64(11),
	})
	require.Error(t, err)
	var errs Errors
	require.True(t, errors.As(err, &errs))
	assert.Equal(t, []string{
		"El nombre del producto debe tener entre 2 y 100 caracteres, solo letras, números y espacios",
		"La cantidad debe ser un número entre 1 y 999",
		"Debe seleccionar una categoría válida",
		"La prioridad debe ser un número entre 1 y 10",
	}, errs.Reasons())
}

func TestValidateRegistration(t *testing.T) {
	r, err := ValidateRegistration("ana01", "secret6", "ana@x.com", "Ana Gomez")
	require.NoError(t, err)
	assert.Equal(t, Registration{Username: "ana01", Password: "secret6", Email: "ana@x.com", FullName: "Ana Gomez"}, r)

	_, err = ValidateRegistration("a", "", "nope", "A1")
	var errs Errors
	require.True(t, errors.As(err, &errs))
	assert.Len(t, errs, 4)
	assert.Equal(t, "El campo password es requerido", errs[1].Reason)
}
