package bodyparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterDuplicate(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register(MIMEFormURLEncoded, FormURLEncoded))

	err := r.Register(MIMEFormURLEncoded, FormURLEncoded)
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestHasNormalizesContentType(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(MIMEFormURLEncoded, FormURLEncoded))

	assert.True(t, r.Has("application/x-www-form-urlencoded"))
	assert.True(t, r.Has("Application/X-WWW-Form-Urlencoded; charset=utf-8"))
	assert.False(t, r.Has("application/json"))
}

func TestRenderPassthroughWithoutParser(t *testing.T) {
	r := NewRegistry()

	body, err := r.Render("application/json", []byte(`{"a":1}`))
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(body))
}

func TestRenderAppliesRegisteredParser(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(MIMEFormURLEncoded, FormURLEncoded))

	body, err := r.Render("application/x-www-form-urlencoded; charset=utf-8", []byte("b=2&a=1"))
	require.NoError(t, err)
	assert.Equal(t, "a=1&b=2", string(body))
}

func TestFormURLEncodedRejectsMalformedBody(t *testing.T) {
	_, err := FormURLEncoded([]byte("a=%zz"))
	assert.Error(t, err)
}

func TestFormURLEncodedPreservesValues(t *testing.T) {
	body, err := FormURLEncoded([]byte("name=Ada%20Lovelace&role=admin"))
	require.NoError(t, err)
	assert.Equal(t, "name=Ada+Lovelace&role=admin", string(body))
}
