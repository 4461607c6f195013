package nested

type LoginActivity struct {
	ui struct {
		// bbgo:injectlogin
		target string
	}
}

var orphan struct {
	//bbgo:injectlogin
	target string // want "field target has no enclosing named type; skipped"
}

// bbgo:injectloginx is not the marker.
type Unrelated struct {
	//bbgo:injectloginx
	target string
}
