package services

import "train-status-live/models"

// ResolvePlatform returns a "PF #<n>" label for the first platform key that
// carries a usable value, or N/A.
func ResolvePlatform(station map[string]any) string {
	if len(station) == 0 {
		return models.NotAvailable
	}
	v, ok := firstTruthy(station, platformKeys)
	if !ok {
		return models.NotAvailable
	}
	return "PF #" + displayValue(v)
}
