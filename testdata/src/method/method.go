package method

type LoginActivity struct {
	title string
}

//bbgo:injectlogin
func (a *LoginActivity) OnCreate() {} // want "OnCreate is a method, not a field; skipped"

//bbgo:injectlogin
func NewLoginActivity() *LoginActivity { // want "NewLoginActivity is a func, not a field; skipped"
	return &LoginActivity{}
}

//bbgo:injectlogin
type SignInScreen struct{} // want "SignInScreen is a type, not a field; skipped"

//bbgo:injectlogin
var defaultTitle = "Sign in" // want "defaultTitle is a var, not a field; skipped"

const (
	// +bbgo:injectlogin
	loginTimeout = 30 // want "loginTimeout is a const, not a field; skipped"
)
