package multiple

type Activity struct{}

type LoginActivity struct {
	//bbgo:injectlogin
	loginTarget *Activity
}

type SignInScreen struct {
	loginTarget *Activity //bbgo:injectlogin - the newer screen wins
}
