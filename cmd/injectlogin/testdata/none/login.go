package none

type LoginActivity struct {
	loginTarget string
}
