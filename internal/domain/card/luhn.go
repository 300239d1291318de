package card

import "strings"

// Valid reports whether a card number passes the Luhn checksum.
// Embedded spaces are stripped before validation; any other non-digit
// character makes the number invalid rather than producing an error.
// This is a pure function and behaves identically wherever it is called.
func Valid(cardNumber string) bool {
	cardNumber = strings.ReplaceAll(cardNumber, " ", "")
	if cardNumber == "" {
		return false
	}

	total := 0
	// Walk the digits right to left; every second digit is doubled.
	for i := 0; i < len(cardNumber); i++ {
		c := cardNumber[len(cardNumber)-1-i]
		if c < '0' || c > '9' {
			return false
		}
		n := int(c - '0')
		if i%2 == 1 {
			n *= 2
			if n > 9 {
				n -= 9
			}
		}
		total += n
	}

	return total%10 == 0
}
