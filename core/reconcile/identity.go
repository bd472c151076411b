package reconcile

import (
	"regexp"
	"strconv"
	"strings"
)

var numericSuffix = regexp.MustCompile(`/(\d+)(\?|$)`)

// ExtractNumericID returns the trailing numeric identifier of a global id.
// A query fragment after the number is tolerated:
// "gid://shopify/Customer/12345?x=1" yields 12345.
func ExtractNumericID(gid string) (int64, bool) {
	m := numericSuffix.FindStringSubmatch(gid)
	if m == nil {
		return 0, false
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// KindOf returns the entity kind segment of a global id ("Customer" for
// "gid://shopify/Customer/1"), or "" when the id has no kind segment.
func KindOf(gid string) string {
	if i := strings.IndexByte(gid, '?'); i >= 0 {
		gid = gid[:i]
	}
	parts := strings.Split(strings.TrimSuffix(gid, "/"), "/")
	if len(parts) < 2 {
		return ""
	}
	return parts[len(parts)-2]
}

func hasKind(id, kind string) bool {
	return kind != "" && strings.Contains(id, "/"+kind+"/")
}
