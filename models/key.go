package models

import "strconv"

// MatchKey formats the (phase, order) pair used as the natural key of a match.
func MatchKey(phase Phase, order int) string {
	return string(phase) + "-" + strconv.Itoa(order)
}
