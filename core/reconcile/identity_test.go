package reconcile_test

import (
	"testing"

	"bulk-ingest/core/reconcile"

	"github.com/stretchr/testify/assert"
)

func TestExtractNumericID(t *testing.T) {
	tests := []struct {
		name   string
		gid    string
		want   int64
		wantOK bool
	}{
		{"Plain", "gid://shopify/Customer/12345", 12345, true},
		{"QueryFragment", "gid://shopify/Customer/12345?x=1", 12345, true},
		{"Relative", ".../Customer/12345?x=1", 12345, true},
		{"NoNumber", "gid://shopify/Customer/abc", 0, false},
		{"Empty", "", 0, false},
		{"Overflow", "gid://shopify/Customer/99999999999999999999", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := reconcile.ExtractNumericID(tt.gid)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, "Customer", reconcile.KindOf("gid://shopify/Customer/1"))
	assert.Equal(t, "LineItem", reconcile.KindOf("gid://shopify/LineItem/9?a=b"))
	assert.Equal(t, "", reconcile.KindOf("nothing"))
}
