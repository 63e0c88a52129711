package dto

type ErrorResponse struct {
	Error  string `json:"error"`
	Row    int    `json:"row,omitempty"`
	Column *int   `json:"column,omitempty"`
}
