package validate

import "fmt"

// Length limits shared by the HTTP handlers and served to clients.
const (
	MaxVideoURLLength   = 8192
	MaxShareTokenLength = 2048
)

func checkLen(value string, max int, field string) string {
	if len(value) > max {
		return fmt.Sprintf("%s must be %d characters or fewer", field, max)
	}
	return ""
}

func VideoURL(s string) string   { return checkLen(s, MaxVideoURLLength, "video URL") }
func ShareToken(s string) string { return checkLen(s, MaxShareTokenLength, "share token") }

// FieldLimits returns a map of field names to max lengths for the /api/limits endpoint.
func FieldLimits() map[string]int {
	return map[string]int{
		"videoURL":   MaxVideoURLLength,
		"shareToken": MaxShareTokenLength,
	}
}
