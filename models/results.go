package models

// SearchResults search engine results, passed through unmodified
type SearchResults struct {
	Total int64            `json:"total"`
	Rows  []map[string]any `json:"rows"`
}

// ServiceInformationDocument service identity shown on the root endpoint
type ServiceInformationDocument struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Contact     string `json:"contact"`
	Software    string `json:"software"`
	Version     string `json:"version"`
}
