package services

import (
	"testing"

	"fortex/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyNilProof(t *testing.T) {
	verifier, err := NewVerifier("")
	require.NoError(t, err)

	_, err = verifier.Verify(nil, "mine")
	assert.Error(t, err)
}

func TestVerifyDevFallbackIsDeterministic(t *testing.T) {
	verifier, err := NewVerifier("")
	require.NoError(t, err)

	proof := &models.VerifyProof{NullifierHash: "0xdeadbeefcafe"}

	first, err := verifier.Verify(proof, "mine")
	require.NoError(t, err)
	second, err := verifier.Verify(proof, "mine")
	require.NoError(t, err)

	assert.Equal(t, first.IdentityKey, second.IdentityKey)
	assert.Equal(t, "0xdeadbeefcafe", first.IdentityKey)
	assert.Equal(t, "miner_efcafe", first.Username)
}

func TestVerifyDevFallbackWithoutNullifier(t *testing.T) {
	verifier, err := NewVerifier("")
	require.NoError(t, err)

	proof := &models.VerifyProof{Proof: "zk", MerkleRoot: "root"}

	a, err := verifier.Verify(proof, "mine")
	require.NoError(t, err)
	b, err := verifier.Verify(proof, "other-action")
	require.NoError(t, err)

	assert.NotEmpty(t, a.IdentityKey)
	// the action participates in the derived key
	assert.NotEqual(t, a.IdentityKey, b.IdentityKey)
}
