package hash_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/libreserve/reservation-service/internal/errs"
	"github.com/libreserve/reservation-service/pkg/hash"
)

func TestBcryptChecker(t *testing.T) {
	t.Parallel()
	stored, err := hash.Generate("secret")
	require.NoError(t, err)

	checker := hash.NewBcryptChecker()
	require.NoError(t, checker.Verify("secret", stored))
	require.ErrorIs(t, checker.Verify("nope", stored), errs.ErrWrongPassword)
	require.ErrorIs(t, checker.Verify("secret", "not-a-hash"), errs.ErrWrongPassword)
}
