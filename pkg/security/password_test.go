package security_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zxclownhd/fishing-app/pkg/config"
	"github.com/zxclownhd/fishing-app/pkg/security"
)

func cheapConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    1024,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	hasher := security.NewHasher(cheapConfig())

	hash, err := hasher.Hash("very-secure-password")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=1024,t=1,p=1$"))

	ok, err := hasher.Verify("very-secure-password", hash)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = hasher.Verify("wrong-password", hash)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestHashUsesFreshSalt(t *testing.T) {
	hasher := security.NewHasher(cheapConfig())
	a, err := hasher.Hash("same")
	require.NoError(t, err)
	b, err := hasher.Hash("same")
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestHashRejectsEmptyPassword(t *testing.T) {
	_, err := security.NewHasher(cheapConfig()).Hash("")
	require.Error(t, err)
}

func TestVerifyRejectsMalformedHashes(t *testing.T) {
	hasher := security.NewHasher(cheapConfig())
	for _, encoded := range []string{
		"",
		"plain",
		"$bcrypt$v=19$m=1024,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=18$m=1024,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=x,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=1024,t=1,p=1$!!!$a2V5",
	} {
		_, err := hasher.Verify("pw", encoded)
		require.ErrorIs(t, err, security.ErrInvalidHash, encoded)
	}
}

func TestVerifyAcceptsHashesFromOtherParams(t *testing.T) {
	old := security.NewHasher(cheapConfig())
	hash, err := old.Hash("pw-123456")
	require.NoError(t, err)

	stronger := cheapConfig()
	stronger.ArgonMemoryKB = 2048
	current := security.NewHasher(stronger)

	ok, err := current.Verify("pw-123456", hash)
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, current.NeedsRehash(hash))
	require.False(t, old.NeedsRehash(hash))
}

func TestNewHasherClampsParams(t *testing.T) {
	params := security.NewHasher(config.PasswordConfig{}).Params()
	require.EqualValues(t, 8, params.Memory)
	require.EqualValues(t, 1, params.Time)
	require.EqualValues(t, 1, params.Parallelism)
	require.EqualValues(t, 8, params.SaltLen)
	require.EqualValues(t, 16, params.KeyLen)
}

func TestGenerateTempPassword(t *testing.T) {
	pw, err := security.GenerateTempPassword(24)
	require.NoError(t, err)
	require.Len(t, pw, 24)
	require.False(t, strings.ContainsAny(pw, "0O1lI"))

	_, err = security.GenerateTempPassword(0)
	require.Error(t, err)
}
