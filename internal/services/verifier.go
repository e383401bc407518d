package services

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"fortex/internal/models"

	"github.com/gojek/heimdall/v7/httpclient"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
)

// Verifier checks World ID proofs against the developer portal. The proof
// cryptography itself is the portal's job; all we keep is the nullifier
// hash, which is the stable identity key for one verified human.
type Verifier struct {
	appID  string
	client *httpclient.Client
}

func NewVerifier(appID string) (*Verifier, error) {
	client := httpclient.NewClient(
		httpclient.WithHTTPTimeout(10*time.Second),
		httpclient.WithRetryCount(2),
	)
	return &Verifier{appID, client}, nil
}

type verifyRequest struct {
	NullifierHash     string `json:"nullifier_hash"`
	MerkleRoot        string `json:"merkle_root"`
	Proof             string `json:"proof"`
	VerificationLevel string `json:"verification_level"`
	Action            string `json:"action"`
}

func (verifier *Verifier) Verify(proof *models.VerifyProof, action string) (*models.IdentityFromAuth, error) {
	if proof == nil {
		return nil, errorx.Wrap(ErrInvalidProof, errorx.Validation)
	}

	// without an app id there is nothing to verify against; derive a
	// deterministic identity so local development works end to end
	if verifier.appID == "" {
		return identityFromProof(proof, action), nil
	}

	body, err := json.Marshal(verifyRequest{
		NullifierHash:     proof.NullifierHash,
		MerkleRoot:        proof.MerkleRoot,
		Proof:             proof.Proof,
		VerificationLevel: proof.VerificationLevel,
		Action:            action,
	})
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	headers := http.Header{}
	headers.Set("Content-Type", "application/json")

	res, err := verifier.client.Post(fmt.Sprintf("%s/%s", WORLD_VERIFY_BASE_URL, verifier.appID), bytes.NewReader(body), headers)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, errorx.Wrap(ErrInvalidProof, errorx.Validation)
	}

	return identityFromProof(proof, action), nil
}

func identityFromProof(proof *models.VerifyProof, action string) *models.IdentityFromAuth {
	key := proof.NullifierHash
	if key == "" {
		sum := sha256.Sum256([]byte(proof.Proof + proof.MerkleRoot + action))
		key = hex.EncodeToString(sum[:])
	}

	suffix := key
	if len(suffix) > 6 {
		suffix = suffix[len(suffix)-6:]
	}

	return &models.IdentityFromAuth{
		IdentityKey: key,
		Username:    "miner_" + suffix,
	}
}
