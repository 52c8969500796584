package model

type ChordResponse struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Label     string           `json:"label"`
	Positions []StringPosition `json:"positions"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
