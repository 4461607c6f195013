package extract_test

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpyw/injectlogin/internal/diag"
	"github.com/mpyw/injectlogin/internal/extract"
	"github.com/mpyw/injectlogin/internal/marker"
	"github.com/mpyw/injectlogin/internal/universe"
)

const loginActivity = "github.com/example/app/ui.LoginActivity"

func TestMetadata(t *testing.T) {
	tests := []struct {
		qname      string
		simpleName string
		pkgPath    string
	}{
		{loginActivity, "LoginActivity", "github.com/example/app/ui"},
		{"main.Login", "Login", "main"},
		{"Login", "Login", ""},
	}

	for _, tt := range tests {
		t.Run(tt.qname, func(t *testing.T) {
			md := extract.Metadata{QualifiedName: tt.qname}
			assert.Equal(t, tt.simpleName, md.SimpleName())
			assert.Equal(t, tt.pkgPath, md.PkgPath())
			assert.False(t, md.IsZero())
		})
	}

	assert.True(t, extract.Metadata{}.IsZero())
}

func TestScan(t *testing.T) {
	u := universe.NewMemory()
	owner := u.AddType(loginActivity)
	u.AddField(owner, "session")
	want := u.AddField(owner, "loginTarget", marker.InjectLogin)

	got, err := extract.Scan(context.Background(), u, marker.InjectLogin)
	require.NoError(t, err)
	assert.Equal(t, []universe.Decl{want}, got)
}

func TestScan_UnknownMarker(t *testing.T) {
	_, err := extract.Scan(context.Background(), universe.NewMemory(), marker.Kind("bbgo:unknown"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, extract.ErrUnknownMarker))
	assert.Contains(t, err.Error(), string(marker.InjectLogin))
}

func TestScan_UniverseError(t *testing.T) {
	cause := errors.New("broken universe")
	u := universe.NewMemory().FailWith(cause)

	_, err := extract.Scan(context.Background(), u, marker.InjectLogin)
	require.Error(t, err)
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "//bbgo:injectlogin")
}

func TestFilterAndExtract_SingleField(t *testing.T) {
	u := universe.NewMemory()
	owner := u.AddType(loginActivity)
	field := u.AddField(owner, "loginTarget", marker.InjectLogin)

	c := diag.NewCollector()
	md, ok := extract.FilterAndExtract(u, []universe.Decl{field}, c)
	require.True(t, ok)
	assert.Equal(t, loginActivity, md.QualifiedName)

	list := c.List()
	require.Len(t, list, 1)
	assert.Equal(t, diag.Info, list[0].Severity)
	assert.Equal(t, "login target "+loginActivity, list[0].Message)
}

func TestFilterAndExtract_NonFieldOnly(t *testing.T) {
	u := universe.NewMemory()
	owner := u.AddType(loginActivity)
	method := u.AddMethod(owner, "onCreate", marker.InjectLogin)

	c := diag.NewCollector()
	md, ok := extract.FilterAndExtract(u, []universe.Decl{method}, c)
	assert.False(t, ok)
	assert.True(t, md.IsZero())

	warnings := diag.Filter(c.List(), diag.Warning)
	require.Len(t, warnings, 1)
	assert.Equal(t, "onCreate is a method, not a field; skipped", warnings[0].Message)
	assert.Equal(t, method.Pos(), warnings[0].Pos)
	assert.Len(t, c.List(), 1)
}

func TestFilterAndExtract_EveryNonFieldKind(t *testing.T) {
	u := universe.NewMemory()
	owner := u.AddType(loginActivity, marker.InjectLogin)

	candidates := []universe.Decl{
		owner,
		u.AddMethod(owner, "onCreate", marker.InjectLogin),
		u.AddDecl(nil, "newLogin", universe.Func, marker.InjectLogin),
		u.AddDecl(nil, "defaultLogin", universe.Var, marker.InjectLogin),
		u.AddDecl(nil, "loginTimeout", universe.Const, marker.InjectLogin),
		u.AddDecl(nil, "blob", universe.Other, marker.InjectLogin),
	}

	c := diag.NewCollector()
	_, ok := extract.FilterAndExtract(u, candidates, c)
	assert.False(t, ok)

	var messages []string
	for _, d := range diag.Filter(c.List(), diag.Warning) {
		messages = append(messages, d.Message)
	}
	assert.Equal(t, []string{
		"LoginActivity is a type, not a field; skipped",
		"onCreate is a method, not a field; skipped",
		"newLogin is a func, not a field; skipped",
		"defaultLogin is a var, not a field; skipped",
		"loginTimeout is a const, not a field; skipped",
		"blob is a declaration, not a field; skipped",
	}, messages)
}

func TestFilterAndExtract_FieldWithoutOwner(t *testing.T) {
	u := universe.NewMemory()
	orphan := u.AddDecl(nil, "loginTarget", universe.Field, marker.InjectLogin)

	c := diag.NewCollector()
	_, ok := extract.FilterAndExtract(u, []universe.Decl{orphan}, c)
	assert.False(t, ok)

	warnings := diag.Filter(c.List(), diag.Warning)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, "loginTarget")
}

func TestFilterAndExtract_LastWriteWins(t *testing.T) {
	u := universe.NewMemory()
	first := u.AddType("github.com/example/app/ui.LoginActivity")
	second := u.AddType("github.com/example/app/auth.SignInScreen")
	candidates := []universe.Decl{
		u.AddField(first, "loginTarget", marker.InjectLogin),
		u.AddMethod(second, "onStart", marker.InjectLogin),
		u.AddField(second, "loginTarget", marker.InjectLogin),
	}

	c := diag.NewCollector()
	md, ok := extract.FilterAndExtract(u, candidates, c)
	require.True(t, ok)
	assert.Equal(t, "github.com/example/app/auth.SignInScreen", md.QualifiedName)

	list := c.List()
	require.Len(t, list, 4)
	assert.Equal(t, diag.Info, list[3].Severity)
	assert.Equal(t, "2 eligible fields; using the last one, github.com/example/app/auth.SignInScreen", list[3].Message)
}

func TestFilterAndExtract_Empty(t *testing.T) {
	c := diag.NewCollector()
	md, ok := extract.FilterAndExtract(universe.NewMemory(), nil, c)
	assert.False(t, ok)
	assert.True(t, md.IsZero())
	assert.Empty(t, c.List())
}
