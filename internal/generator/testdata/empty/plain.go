package plain

type Screen struct {
	title string
}
