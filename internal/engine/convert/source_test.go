package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opnix.dev/opnix/internal/core/domain"
)

func TestResolveSource(t *testing.T) {
	sha := domain.Checksum{Algo: "sha256", Value: "aaaa"}

	tests := []struct {
		name    string
		rec     domain.URLRecord
		want    domain.SourceDescriptor
		wantErr bool
	}{
		{
			name: "http archive with checksum",
			rec:  domain.URLRecord{Backend: "http", Address: "https://example.org/foo.tgz", Checksums: []domain.Checksum{sha}},
			want: domain.RemoteArchive{Address: "https://example.org/foo.tgz", Checksums: []domain.Checksum{sha}},
		},
		{
			name: "backend prefix is stripped",
			rec:  domain.URLRecord{Backend: "http", Address: "http+https://example.org/foo.tgz", Checksums: []domain.Checksum{sha}},
			want: domain.RemoteArchive{Address: "https://example.org/foo.tgz", Checksums: []domain.Checksum{sha}},
		},
		{
			name: "file backend resolves to a local path",
			rec:  domain.URLRecord{Backend: "file", Address: "file:///srv/src/foo"},
			want: domain.LocalPath{Path: "/srv/src/foo"},
		},
		{
			name: "missing backend defaults to local",
			rec:  domain.URLRecord{Address: "/srv/src/foo"},
			want: domain.LocalPath{Path: "/srv/src/foo"},
		},
		{
			name:    "git backend is unsupported even with checksums",
			rec:     domain.URLRecord{Backend: "git", Address: "https://example.org/foo.git", Checksums: []domain.Checksum{sha}},
			wantErr: true,
		},
		{
			name:    "hg backend is unsupported",
			rec:     domain.URLRecord{Backend: "hg", Address: "https://example.org/foo"},
			wantErr: true,
		},
		{
			name:    "darcs backend is unsupported",
			rec:     domain.URLRecord{Backend: "darcs", Address: "https://example.org/foo"},
			wantErr: true,
		},
		{
			name:    "fragment is unsupported",
			rec:     domain.URLRecord{Backend: "http", Address: "https://example.org/foo.tgz", Fragment: "sub", Checksums: []domain.Checksum{sha}},
			wantErr: true,
		},
		{
			name:    "remote archive without checksum is unsupported",
			rec:     domain.URLRecord{Backend: "http", Address: "https://example.org/foo.tgz"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveSource(&tt.rec)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrUnsupportedSource)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveSource_Deterministic(t *testing.T) {
	rec := domain.URLRecord{Backend: "git", Address: "https://example.org/foo.git"}
	first, err1 := ResolveSource(&rec)
	second, err2 := ResolveSource(&rec)
	assert.Nil(t, first)
	assert.Nil(t, second)
	assert.ErrorIs(t, err1, domain.ErrUnsupportedSource)
	assert.ErrorIs(t, err2, domain.ErrUnsupportedSource)
}
