package model

import "strconv"

var (
	eighthFractions = []string{"", "1/8", "1/4", "3/8", "1/2", "5/8", "3/4", "7/8"}
	eighthDecimals  = []string{"", ".125", ".25", ".375", ".5", ".625", ".75", ".875"}
)

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// EighthsFraction formats n eighths of an inch as a mixed fraction,
// e.g. 10 -> "1 1/4".
func EighthsFraction(n int) string {
	var whole string
	if (n/8 == 0) != (n == 0) {
		if n < 0 {
			whole = "-"
		}
	} else {
		whole = strconv.Itoa(n / 8)
	}
	sep := " "
	if n/8 == 0 || n%8 == 0 {
		sep = ""
	}
	return whole + sep + eighthFractions[abs(n)%8]
}

// EighthsDecimal formats n eighths of an inch as a decimal, e.g. 10 -> "1.25".
func EighthsDecimal(n int) string {
	whole := strconv.Itoa(n / 8)
	if n < 0 && n/8 == 0 {
		whole = "-" + whole
	}
	return whole + eighthDecimals[abs(n)%8]
}
