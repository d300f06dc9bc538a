// Package orderid builds and checks human-readable order identifiers of the
// form PREFIX-YYYYMMDD-XXXXX.
package orderid

import (
	"regexp"
	"strings"
	"time"

	"github.com/lithammer/shortuuid/v3"
)

const (
	DefaultPrefix = "HD"
	suffixLen     = 5
	alphabet      = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

var pattern = regexp.MustCompile(`^[A-Z]{2,10}-\d{8}-[A-Z0-9]{5}$`)

// Generate returns a new order id for the given day. The suffix is random;
// uniqueness is enforced by the booking store, not here.
func Generate(prefix string, now time.Time) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	id := shortuuid.NewWithAlphabet(alphabet)
	suffix := id[len(id)-suffixLen:]
	return strings.ToUpper(prefix) + "-" + now.UTC().Format("20060102") + "-" + suffix
}

// Valid reports whether id has the PREFIX-YYYYMMDD-XXXXX shape and a real date.
func Valid(id string) bool {
	if !pattern.MatchString(id) {
		return false
	}
	parts := strings.Split(id, "-")
	_, err := time.Parse("20060102", parts[1])
	return err == nil
}
