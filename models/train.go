package models

import (
	"strconv"
)

// TrainRef is one entry of the autocomplete reference list
type TrainRef struct {
	TrainName   string `json:"train_name"`
	TrainNumber string `json:"train_number"`
}

// DayOffset selects which scheduled run of a train to query
type DayOffset int

const (
	Today DayOffset = iota
	Yesterday
	DayBefore
)

// ParseDayOffset accepts the form values "0", "1" and "2"
func ParseDayOffset(s string) (DayOffset, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < int(Today) || n > int(DayBefore) {
		return Today, false
	}
	return DayOffset(n), true
}

// Label returns the wording used in user-facing messages
func (d DayOffset) Label() string {
	switch d {
	case Today:
		return "Today"
	case Yesterday:
		return "Yesterday"
	case DayBefore:
		return "the Day Before"
	default:
		return "the selected day"
	}
}

func (d DayOffset) String() string {
	return strconv.Itoa(int(d))
}

// IsValidTrainNumber reports whether s is exactly five ASCII digits
func IsValidTrainNumber(s string) bool {
	if len(s) != 5 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
