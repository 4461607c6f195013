package ui

type Activity struct{}

type LoginActivity struct {
	title string

	//bbgo:injectlogin
	loginTarget *Activity
}

//bbgo:injectlogin
func (a *LoginActivity) OnCreate() {}
