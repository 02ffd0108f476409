// Package idgen generates the correlation ids used across the SDK: trace
// ids and span ids for the telemetry pipeline, and client-generated
// request ids for VPC tool calls.
package idgen

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"
)

const vpcSuffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// TraceID returns a 128-bit hex-encoded trace id (32 hex chars).
func TraceID() string {
	return randomHex(16)
}

// SpanID returns a 64-bit hex-encoded span id (16 hex chars).
func SpanID() string {
	return randomHex(8)
}

func randomHex(nBytes int) string {
	buf := make([]byte, nBytes)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand.Read on a supported platform does not fail in practice;
		// fall back to a timestamp-derived id rather than panic.
		return hex.EncodeToString([]byte(fmt.Sprintf("%016x", time.Now().UnixNano())))[:nBytes*2]
	}
	return hex.EncodeToString(buf)
}

// VPCRequestID builds the client-side request id used for VPC tool calls:
// vpc-<epoch_ms>-<random9>.
func VPCRequestID(now time.Time) string {
	return fmt.Sprintf("vpc-%d-%s", now.UnixMilli(), randomAlphanumeric(9))
}

func randomAlphanumeric(n int) string {
	out := make([]byte, n)
	max := big.NewInt(int64(len(vpcSuffixAlphabet)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			out[i] = vpcSuffixAlphabet[0]
			continue
		}
		out[i] = vpcSuffixAlphabet[idx.Int64()]
	}
	return string(out)
}
