package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/randalmurphal/msgmap/pkg/msgmap/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		data map[string]any
		want []string
	}{
		{"nil map", nil, []string{}},
		{"empty map", map[string]any{}, []string{}},
		{"with values", map[string]any{"b": 1, "a": "x"}, []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New(tt.data)
			assert.Equal(t, tt.want, cfg.Keys())
			assert.False(t, cfg.Has("missing"))
		})
	}
}

func TestMap(t *testing.T) {
	cfg := config.New(map[string]any{
		"json":   map[string]any{"a": 1},
		"yaml":   map[any]any{"b": 2},
		"badkey": map[any]any{3: "x"},
		"scalar": "x",
	})

	tests := []struct {
		key    string
		wantOK bool
		want   []string
	}{
		{"json", true, []string{"a"}},
		{"yaml", true, []string{"b"}},
		{"badkey", false, nil},
		{"scalar", false, nil},
		{"missing", false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			sub, ok := cfg.Map(tt.key)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.want, sub.Keys())
			}
		})
	}
}

func TestAnyAndHas(t *testing.T) {
	cfg := config.New(map[string]any{"null": nil, "n": 1})

	assert.True(t, cfg.Has("null"))
	assert.Nil(t, cfg.Any("null", "default"))
	assert.Equal(t, 1, cfg.Any("n", nil))
	assert.Equal(t, "default", cfg.Any("missing", "default"))
	assert.False(t, cfg.Has("missing"))
	assert.Equal(t, []string{"n", "null"}, cfg.Keys())
}
