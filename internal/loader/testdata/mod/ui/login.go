package ui

type Activity struct{}

type LoginActivity struct {
	//bbgo:injectlogin
	loginTarget *Activity
}
