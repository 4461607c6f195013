// Code generated by hand for tests. DO NOT EDIT.

package generated

type LoginActivity struct {
	//bbgo:injectlogin
	loginTarget string
}
