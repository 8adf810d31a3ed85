package parser

import (
	"math"
	"strconv"
	"strings"
)

const (
	degreeSign = "°"
	minuteSign = "'"
	secondSign = `"`
)

// DecodeDMS converts a D°M'S"H token into signed decimal degrees.
//
// The magnitude is |D| + |M|/60 + |S|/3600. It is negated for the S and W
// hemispheres and negated once more if the token contains a '-' anywhere.
// Both flips are applied independently, so "-10°0'0"S" decodes to +10.
func DecodeDMS(token string) (float64, error) {
	di := strings.Index(token, degreeSign)
	mi := strings.Index(token, minuteSign)
	si := strings.Index(token, secondSign)

	if di < 0 || mi < 0 || si < 0 {
		return 0, &MalformedCoordinateError{Token: token, Reason: "missing delimiter"}
	}
	if di > mi || mi > si {
		return 0, &MalformedCoordinateError{Token: token, Reason: "delimiters out of order"}
	}

	deg, err := parseComponent(token[:di])
	if err != nil {
		return 0, &MalformedCoordinateError{Token: token, Reason: "bad degrees"}
	}
	min, err := parseComponent(token[di+len(degreeSign) : mi])
	if err != nil {
		return 0, &MalformedCoordinateError{Token: token, Reason: "bad minutes"}
	}
	sec, err := parseComponent(token[mi+len(minuteSign) : si])
	if err != nil {
		return 0, &MalformedCoordinateError{Token: token, Reason: "bad seconds"}
	}

	value := math.Abs(deg) + math.Abs(min)/60 + math.Abs(sec)/3600

	switch token[si+len(secondSign):] {
	case "S", "W":
		value = -value
	}

	if strings.Contains(token, "-") {
		value = -value
	}

	return value, nil
}

func parseComponent(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, strconv.ErrSyntax
	}

	return v, nil
}
