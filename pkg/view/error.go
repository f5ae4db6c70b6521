package view

type ErrorPage struct {
	Flash     *Flash
	CartCount int
	Status    int
	Title     string
	Message   string
	RequestID string
}
