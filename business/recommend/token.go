package recommend

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pobyzaarif/goshortcute"
)

// Feedback tokens bind a served recommendation to its customer and product so
// that feedback postbacks cannot be forged or replayed across customers.
// Payload: customerID|productID|issuedAtUnix, AES-CBC encrypted then base64.

func BuildFeedbackToken(customerID, productID, key string) (string, error) {
	payload := fmt.Sprintf("%v|%v|%v", customerID, productID, time.Now().Unix())

	encrypted, err := goshortcute.AESCBCEncrypt([]byte(payload), []byte(key))
	if err != nil {
		return "", fmt.Errorf("encrypt feedback token: %w", err)
	}

	return goshortcute.StringtoBase64Encode(encrypted), nil
}

func ParseFeedbackToken(token, key string) (customerID, productID string, err error) {
	decoded := goshortcute.StringtoBase64Decode(token)

	plain, err := goshortcute.AESCBCDecrypt([]byte(decoded), []byte(key))
	if err != nil {
		return "", "", errors.New("invalid feedback token")
	}

	parts := strings.Split(plain, "|")
	if len(parts) != 3 {
		return "", "", errors.New("invalid feedback token")
	}

	if _, err := strconv.ParseInt(parts[2], 10, 64); err != nil {
		return "", "", errors.New("invalid feedback token")
	}

	if parts[0] == "" || parts[1] == "" {
		return "", "", errors.New("invalid feedback token")
	}

	return parts[0], parts[1], nil
}
