package dto

// SearchRequest is the body accepted by POST /search. GET requests carry the
// same fields as query parameters.
type SearchRequest struct {
	Query  string `json:"query" form:"query"`
	School string `json:"school" form:"school"`
	Limit  *int   `json:"limit" form:"limit"`
}

// SearchResultItem is one ranked course in a search response.
type SearchResultItem struct {
	School      string   `json:"school"`
	Subject     string   `json:"subject"`
	Number      string   `json:"number"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	CreditHours string   `json:"creditHours"`
	Similarity  *float64 `json:"similarity"`
}

// SearchResponse wraps the ranked results for a search request.
type SearchResponse struct {
	Results []SearchResultItem `json:"results"`
}
