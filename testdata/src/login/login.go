package login

type Activity struct{}

// LoginActivity is the screen users sign in from.
type LoginActivity struct {
	title string

	//bbgo:injectlogin
	loginTarget *Activity
}
