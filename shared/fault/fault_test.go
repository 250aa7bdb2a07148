package fault

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrefixInjector_ShouldFail(t *testing.T) {
	injector := NewPrefixInjector(map[string]string{
		"create_order":  "1",
		"debit_payment": "2",
	})

	tests := []struct {
		name     string
		step     string
		key      string
		expected bool
	}{
		{"matching prefix fails", "create_order", "123", true},
		{"longer matching prefix fails", "create_order", "11-order", true},
		{"non-matching key passes", "create_order", "456", false},
		{"unconfigured step passes", "reserve_inventory", "123", false},
		{"other step prefix does not bleed over", "debit_payment", "123", false},
		{"debit prefix fires", "debit_payment", "2-order", true},
		{"empty key passes", "create_order", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, injector.ShouldFail(tt.step, tt.key))
		})
	}
}

func TestPrefixInjector_CopiesConfiguration(t *testing.T) {
	prefixes := map[string]string{"create_order": "1"}
	injector := NewPrefixInjector(prefixes)

	prefixes["create_order"] = "9"

	assert.True(t, injector.ShouldFail("create_order", "100"))
}

func TestDisabled_NeverFails(t *testing.T) {
	var injector Disabled
	assert.False(t, injector.ShouldFail("create_order", "123"))
	assert.False(t, injector.ShouldFail("", ""))
}
