package validator

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldsOf(errs ValidationErrors) []string {
	var out []string
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}

func TestValidateRegister(t *testing.T) {
	bv := New().GetBusinessValidator()

	tests := []struct {
		name   string
		req    RegisterRequest
		fields []string
	}{
		{
			name: "valid student",
			req:  RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "secret"},
		},
		{
			name:   "missing everything",
			req:    RegisterRequest{},
			fields: []string{"name", "email", "password"},
		},
		{
			name:   "blank name",
			req:    RegisterRequest{Name: "   ", Email: "ada@example.com", Password: "x"},
			fields: []string{"name"},
		},
		{
			name:   "unknown role",
			req:    RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "x", Role: "owner"},
			fields: []string{"role"},
		},
		{
			name:   "display name address",
			req:    RegisterRequest{Name: "Ada", Email: "Ada <ada@example.com>", Password: "x"},
			fields: []string{"email"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := bv.ValidateRegister(&tt.req)
			if len(tt.fields) == 0 {
				assert.Empty(t, errs)
				return
			}
			for _, f := range tt.fields {
				assert.Contains(t, fieldsOf(errs), f)
			}
		})
	}
}

func TestValidationErrorsHideSecrets(t *testing.T) {
	long := make([]byte, 80)
	for i := range long {
		long[i] = 'a'
	}
	errs := New().Validate(&RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: string(long)})
	require.Len(t, errs, 1)
	assert.Equal(t, "password", errs[0].Field)
	assert.Nil(t, errs[0].Value)
	assert.Equal(t, "validation failed: password must be at most 72", errs.Error())
}

func TestFlexFieldsFromJSON(t *testing.T) {
	var req struct {
		A FlexBool       `json:"a"`
		B FlexBool       `json:"b"`
		N FlexInt        `json:"n"`
		M FlexInt        `json:"m"`
		I FlexID         `json:"i"`
		F FlexFloat      `json:"f"`
		D OptionalString `json:"d"`
		E OptionalString `json:"e"`
		G RawValue       `json:"g"`
	}
	body := `{"a": true, "b": "TRUE", "n": "4", "m": 2, "i": "17", "f": "12.5", "d": null, "g": "85"}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	assert.True(t, bool(req.A))
	assert.True(t, bool(req.B))
	assert.Equal(t, FlexInt(4), req.N)
	assert.Equal(t, FlexInt(2), req.M)
	assert.Equal(t, uint(17), req.I.Uint())
	assert.Equal(t, FlexFloat(12.5), req.F)
	assert.True(t, req.D.Set)
	assert.Nil(t, req.D.Value)
	assert.False(t, req.E.Set)
	assert.True(t, req.G.Set)
	assert.Equal(t, "85", req.G.Value)
}

func TestFlexFieldsFromForm(t *testing.T) {
	var b FlexBool
	require.NoError(t, b.UnmarshalParam("false"))
	assert.False(t, bool(b))

	var n FlexInt
	assert.Error(t, n.UnmarshalParam("abc"))
	require.NoError(t, n.UnmarshalParam(""))
	assert.Equal(t, FlexInt(0), n)

	var id FlexID
	assert.Error(t, id.UnmarshalParam("-1"))

	var o OptionalString
	require.NoError(t, o.UnmarshalParam("null"))
	assert.True(t, o.Set)
	assert.Equal(t, "", o.String())
	require.NoError(t, o.UnmarshalParam("2025-01-01T10:00"))
	assert.Equal(t, "2025-01-01T10:00", o.String())
}

func TestUnenrollRequestStudent(t *testing.T) {
	assert.Equal(t, uint(3), UnenrollRequest{UserID: 3}.Student())
	assert.Equal(t, uint(5), UnenrollRequest{StudentID: 5, UserID: 3}.Student())
}
