package password

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("secret123")
	require.NoError(t, err)
	require.NotEqual(t, "secret123", hash)

	require.True(t, Verify("secret123", hash))
	require.False(t, Verify("wrong", hash))
}

func TestValidate(t *testing.T) {
	require.True(t, Validate("secret"))
	require.False(t, Validate("abc"))
	require.False(t, Validate(""))
}

func TestHashTokenIsDeterministic(t *testing.T) {
	a := HashToken("refresh-token")
	b := HashToken("refresh-token")
	c := HashToken("other-token")

	require.Equal(t, a, b)
	require.NotEqual(t, a, c)
	require.Len(t, a, 64)
}
