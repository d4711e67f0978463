package storagepath

import (
	"strconv"
	"strings"
)

// Placeholders recognized inside path templates.
const (
	Year         = "{yil}"
	Month        = "{ay}"
	Day          = "{gun}"
	Hour         = "{saat}"
	Minute       = "{dakika}"
	Second       = "{saniye}"
	DocumentType = "{belge_turu}"
	DocumentNo   = "{belge_no}"
)

// Placeholders lists every recognized placeholder in display order.
var Placeholders = []string{Year, Month, Day, Hour, Minute, Second, DocumentType, DocumentNo}

// standIns replaces each placeholder with plain text that satisfies the
// charset rules, so a template can be checked before real values exist.
var standIns = strings.NewReplacer(
	Year, "yil",
	Month, "ay",
	Day, "gun",
	Hour, "saat",
	Minute, "dakika",
	Second, "saniye",
	DocumentType, "belge-turu",
	DocumentNo, "belge-no",
)

// IsPlaceholder reports whether token, braces included, is recognized.
func IsPlaceholder(token string) bool {
	for _, p := range Placeholders {
		if p == token {
			return true
		}
	}
	return false
}

// Values are the per-document substitutions for a template. DocumentType and
// DocumentNo are inserted as given; callers normalize them first.
type Values struct {
	Year, Month, Day     int
	Hour, Minute, Second int
	DocumentType         string
	DocumentNo           string
}

// Substitute fills every placeholder in template in a single pass. Date and
// time parts are written in decimal without zero padding.
func Substitute(template string, v Values) string {
	return strings.NewReplacer(
		Year, strconv.Itoa(v.Year),
		Month, strconv.Itoa(v.Month),
		Day, strconv.Itoa(v.Day),
		Hour, strconv.Itoa(v.Hour),
		Minute, strconv.Itoa(v.Minute),
		Second, strconv.Itoa(v.Second),
		DocumentType, v.DocumentType,
		DocumentNo, v.DocumentNo,
	).Replace(template)
}
