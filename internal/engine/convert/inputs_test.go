package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opnix.dev/opnix/internal/core/domain"
)

func TestInputMap_Add(t *testing.T) {
	tests := []struct {
		name string
		adds []domain.Importance
		want domain.Importance
	}{
		{name: "single optional", adds: []domain.Importance{domain.Optional}, want: domain.Optional},
		{name: "single required", adds: []domain.Importance{domain.Required}, want: domain.Required},
		{name: "optional then required upgrades", adds: []domain.Importance{domain.Optional, domain.Required}, want: domain.Required},
		{name: "required never downgrades", adds: []domain.Importance{domain.Required, domain.Optional}, want: domain.Required},
		{name: "required survives repeated optional", adds: []domain.Importance{domain.Optional, domain.Required, domain.Optional, domain.Optional}, want: domain.Required},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewInputMap()
			for _, imp := range tt.adds {
				m.Add("zlib", imp)
			}
			got, ok := m.Importance("zlib")
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, 1, m.Len())
		})
	}
}

func TestInputMap_Names(t *testing.T) {
	m := NewInputMap()
	m.Add("zlib", domain.Optional)
	m.Add("bar", domain.Required)
	m.Add("ocaml", domain.Required)

	assert.Equal(t, []string{"bar", "ocaml", "zlib"}, m.Names())

	_, ok := m.Importance("missing")
	assert.False(t, ok)
}
