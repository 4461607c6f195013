package generated

type Screen struct {
	title string
}
