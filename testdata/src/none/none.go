package none

// LoginActivity has no marker.
type LoginActivity struct {
	loginTarget string
}
