package fiscal

import "strings"

// cuitWeights are the mod-11 check weights applied to the first ten digits.
var cuitWeights = [10]int{5, 4, 3, 2, 7, 6, 5, 4, 3, 2}

// ValidCUIT reports whether the value is a well-formed CUIT/CUIL: eleven digits,
// optionally hyphen-separated (XX-XXXXXXXX-X), with a correct check digit.
func ValidCUIT(value string) bool {
	digits := strings.ReplaceAll(value, "-", "")
	if len(digits) != 11 {
		return false
	}
	sum := 0
	for i, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
		if i < 10 {
			sum += int(r-'0') * cuitWeights[i]
		}
	}
	check := 11 - sum%11
	switch check {
	case 11:
		check = 0
	case 10:
		return false
	}
	return check == int(digits[10]-'0')
}
