package utils

import (
	"fmt"
	"strconv"
)

// FormatCurrencyIDR memformat nominal Rupiah bulat dengan pemisah ribuan.
// Contoh: 15000 -> "Rp 15.000"
func FormatCurrencyIDR(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	s := strconv.FormatInt(amount, 10)

	// Sisipkan titik tiap tiga digit dari kanan
	var out []byte
	for i, ch := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, ch)
	}

	if negative {
		return fmt.Sprintf("-Rp %s", string(out))
	}
	return fmt.Sprintf("Rp %s", string(out))
}
