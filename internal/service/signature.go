package service

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"github.com/shopspring/decimal"
)

// ComputeSignature returns the SHA256 hex digest over the webhook payload.
// Field order and the absence of separators match the external sender:
// {account_id}{amount}{transaction_id}{user_id}{secret}. The amount is
// quantized to two decimal places first, so "100", "100.0" and "100.00"
// all produce the same digest.
func ComputeSignature(accountID uint64, amount decimal.Decimal, transactionID string, userID uint64, secret string) string {
	payload := fmt.Sprintf("%d%s%s%d%s", accountID, amount.StringFixed(2), transactionID, userID, secret)
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}

// VerifySignature compares the supplied signature against the computed one
// in constant time.
func VerifySignature(accountID uint64, amount decimal.Decimal, transactionID string, userID uint64, secret, signature string) bool {
	expected := ComputeSignature(accountID, amount, transactionID, userID, secret)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}
