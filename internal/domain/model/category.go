package model

// Category mirrors one entry of the external trivia taxonomy. The id is the
// provider's identifier, not locally generated.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
