package api

type Error struct {
	Message string            `json:"message"`
	Field   string            `json:"field,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}
