package pin

import "strings"

const pinLength = 4

// normalizePin отбрасывает все кроме цифр (пробелы, дефисы из UI),
// после чего код обязан состоять ровно из четырех цифр.
func normalizePin(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	pin := b.String()
	if len(pin) != pinLength {
		return "", ErrInvalidPin
	}
	return pin, nil
}
