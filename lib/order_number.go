package lib

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// GenerateOrderNumber generates an order number in the format ORD-XXXXXXXX
// where XXXXXXXX is 8 random uppercase hex characters.
func GenerateOrderNumber() (string, error) {
	bytes := make([]byte, 4)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate order number: %w", err)
	}
	return fmt.Sprintf("ORD-%s", strings.ToUpper(hex.EncodeToString(bytes))), nil
}
