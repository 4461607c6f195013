package naming_test

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpyw/injectlogin/internal/extract"
	"github.com/mpyw/injectlogin/internal/naming"
)

func TestSynthesize(t *testing.T) {
	tests := []struct {
		name  string
		conv  naming.Convention
		qname string
		want  string
	}{
		{
			name:  "default",
			conv:  naming.DefaultConvention(),
			qname: "github.com/example/app/ui.LoginActivity",
			want:  "Bbgo_LoginActivity_InjectLogin",
		},
		{
			name:  "no package",
			conv:  naming.DefaultConvention(),
			qname: "Login",
			want:  "Bbgo_Login_InjectLogin",
		},
		{
			name:  "custom",
			conv:  naming.Convention{Prefix: "Acme", Separator: "", Suffix: "Login"},
			qname: "example.com/x.Screen",
			want:  "AcmeScreenLogin",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.conv.Synthesize(extract.Metadata{QualifiedName: tt.qname})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSynthesize_Deterministic(t *testing.T) {
	md := extract.Metadata{QualifiedName: "github.com/example/app/ui.LoginActivity"}
	conv := naming.DefaultConvention()

	first, err := conv.Synthesize(md)
	require.NoError(t, err)
	second, err := conv.Synthesize(md)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSynthesize_NoMetadata(t *testing.T) {
	_, err := naming.DefaultConvention().Synthesize(extract.Metadata{})
	assert.True(t, errors.Is(err, naming.ErrNoMetadata))
}

func TestConvention_Validate(t *testing.T) {
	tests := []struct {
		name    string
		conv    naming.Convention
		wantErr bool
	}{
		{"default", naming.DefaultConvention(), false},
		{"empty separator", naming.Convention{Prefix: "A", Suffix: "B"}, false},
		{"empty prefix", naming.Convention{Separator: "_", Suffix: "B"}, true},
		{"empty suffix", naming.Convention{Prefix: "A", Separator: "_"}, true},
		{"dollar separator", naming.Convention{Prefix: "Bbgo", Separator: "$$", Suffix: "InjectLogin"}, true},
		{"leading digit", naming.Convention{Prefix: "1Bbgo", Separator: "_", Suffix: "InjectLogin"}, true},
		{"lowercase prefix", naming.Convention{Prefix: "bbgo", Separator: "_", Suffix: "InjectLogin"}, true},
		{"underscore prefix", naming.Convention{Prefix: "_", Separator: "", Suffix: "InjectLogin"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.conv.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFileName(t *testing.T) {
	assert.Equal(t,
		"zz_generated.bbgo_loginactivity_injectlogin.go",
		naming.FileName("Bbgo_LoginActivity_InjectLogin"),
	)
}
