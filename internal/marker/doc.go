// Package marker declares the //bbgo:injectlogin directive.
//
// # Overview
//
// The directive opts a struct field into code generation. The type that
// declares the field becomes the login target:
//
//	type LoginActivity struct {
//	    //bbgo:injectlogin
//	    loginTarget Activity
//	}
//
// The generator then emits an accessor returning the fully qualified name
// of LoginActivity.
//
// # Matching
//
// Use [Registry.Match] on raw comment text:
//
//	if kind, ok := marker.Default().Match(c.Text); ok {
//	    // comment carries kind
//	}
//
// The Kubernetes-style "+bbgo:injectlogin" spelling is accepted so the
// marker can live next to other "+" markers in doc comments.
//
// # Language Versions
//
// [SupportsGoVersion] checks a module's declared Go version against
// [MinGoVersion].
package marker
