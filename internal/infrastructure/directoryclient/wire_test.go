package directoryclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRef_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Ref
	}{
		{"number", `12`, Ref{ID: 12}},
		{"numeric string", `"12"`, Ref{ID: 12}},
		{"name", `"Ada"`, Ref{Name: "Ada"}},
		{"null", `null`, Ref{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Ref
			require.NoError(t, json.Unmarshal([]byte(tt.input), &r))
			assert.Equal(t, tt.want, r)
		})
	}

	var r Ref
	assert.Error(t, json.Unmarshal([]byte(`{}`), &r))
}

func TestRef_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(Ref{ID: 3})
	require.NoError(t, err)
	assert.Equal(t, `3`, string(out))

	out, err = json.Marshal(Ref{Name: "Ada"})
	require.NoError(t, err)
	assert.Equal(t, `"Ada"`, string(out))
}

func TestParseAPIError(t *testing.T) {
	t.Run("detail", func(t *testing.T) {
		err := parseAPIError(404, []byte(`{"detail":"Not found."}`))
		assert.Equal(t, "Not found.", err.Error())
	})

	t.Run("fields are sorted", func(t *testing.T) {
		err := parseAPIError(400, []byte(`{"last_name":["This field may not be blank."],"email":["Enter a valid email address."]}`))
		assert.Equal(t, "email: Enter a valid email address.; last_name: This field may not be blank.", err.Error())
	})

	t.Run("non json body", func(t *testing.T) {
		err := parseAPIError(502, []byte("Bad Gateway\n"))
		assert.Equal(t, "Bad Gateway", err.Error())
	})

	t.Run("empty body", func(t *testing.T) {
		err := parseAPIError(500, nil)
		assert.Equal(t, "directory returned HTTP 500", err.Error())
	})
}
