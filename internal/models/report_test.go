package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasVerifiablePhoto(t *testing.T) {
	url := func(s string) *string { return &s }

	tests := []struct {
		name     string
		photoURL *string
		want     bool
	}{
		{"no photo", nil, false},
		{"local sentinel", url(PhotoLocalOnly), false},
		{"relative path", url("/storage/v1/object/sign/x.jpg"), false},
		{"https url", url("https://project.supabase.co/storage/v1/object/public/price-confirmation-photos/a/x.jpg"), true},
		{"http url", url("http://example.com/x.jpg"), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			report := PriceReport{PhotoURL: tc.photoURL}
			assert.Equal(t, tc.want, report.HasVerifiablePhoto())
		})
	}
}
