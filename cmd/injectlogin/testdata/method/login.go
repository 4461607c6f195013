package method

type LoginActivity struct {
	title string
}

//bbgo:injectlogin
func (a *LoginActivity) OnCreate() {}
