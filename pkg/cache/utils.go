package cache

import (
	"fmt"
	"strings"
)

// GenerateKeyWithParams joins a prefix and parameters with colons.
// Empty parameters are kept so keys stay positional.
func GenerateKeyWithParams(prefix string, params ...interface{}) string {
	var b strings.Builder
	b.WriteString(prefix)
	for _, param := range params {
		b.WriteByte(':')
		b.WriteString(fmt.Sprint(param))
	}
	return b.String()
}
