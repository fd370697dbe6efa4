// Package barcode derives and renders EAN-13 barcodes for catalog products.
package barcode

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/ean"
)

// NumberForProduct builds the full 13-digit EAN number for a product id.
// The id is zero-padded to 12 digits and the standard checksum digit is
// appended.
func NumberForProduct(productID int64) (string, error) {
	if productID < 0 || productID > 999999999999 {
		return "", fmt.Errorf("product id %d out of range for ean-13", productID)
	}
	base := fmt.Sprintf("%012d", productID)
	return base + string(rune('0'+checksum(base))), nil
}

// checksum computes the EAN-13 check digit for a 12-digit payload.
// Digits in odd positions (1-based) weigh 1, even positions weigh 3.
func checksum(digits string) int {
	sum := 0
	for i, r := range digits {
		d := int(r - '0')
		if i%2 == 1 {
			d *= 3
		}
		sum += d
	}
	return (10 - sum%10) % 10
}

// Validate reports whether s is a well-formed EAN-13 number with a
// correct check digit.
func Validate(s string) bool {
	if len(s) != 13 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return checksum(s[:12]) == int(s[12]-'0')
}

// RenderPNG encodes the given EAN-13 number as a PNG image of the
// requested dimensions.
func RenderPNG(number string, width, height int) ([]byte, error) {
	if !Validate(number) {
		return nil, fmt.Errorf("invalid ean-13 number %q", number)
	}
	code, err := ean.Encode(number)
	if err != nil {
		return nil, fmt.Errorf("error encoding barcode: %w", err)
	}
	scaled, err := barcode.Scale(code, width, height)
	if err != nil {
		return nil, fmt.Errorf("error scaling barcode: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("error rendering png: %w", err)
	}
	return buf.Bytes(), nil
}
