package models

// Document is the whole persisted state of the JSON file store: two
// collections, read and rewritten wholesale on every mutation.
type Document struct {
	Users    []User    `json:"users"`
	Projects []Project `json:"projects"`
}
