// Package jsonapi encodes dispatch outcomes as JSON:API documents: single and
// collection primary data, pagination links, and structured error documents.
// Every document is written with Content-Type application/vnd.api+json.
package jsonapi

// Links holds the navigation links of a document or resource. Absent links are
// omitted from the encoded output.
type Links struct {
	Self  string `json:"self,omitempty"`
	First string `json:"first,omitempty"`
	Last  string `json:"last,omitempty"`
	Prev  string `json:"prev,omitempty"`
	Next  string `json:"next,omitempty"`
}

// Resource is a single primary resource object.
type Resource struct {
	Type       string         `json:"type"`
	ID         string         `json:"id"`
	Attributes map[string]any `json:"attributes"`
	Links      *Links         `json:"links,omitempty"`
}

// ErrorSource points an error at the input field that caused it.
type ErrorSource struct {
	Pointer string `json:"pointer"`
}

// ErrorObject is one entry of an error document.
type ErrorObject struct {
	Status string       `json:"status"`
	Title  string       `json:"title"`
	Detail string       `json:"detail,omitempty"`
	Source *ErrorSource `json:"source,omitempty"`
}

// Document is the top-level success document. Data is either a Resource or a
// []Resource and is always present, so an empty collection encodes as
// data: [] rather than disappearing.
type Document struct {
	Data  any    `json:"data"`
	Links *Links `json:"links,omitempty"`
}

// ErrorDocument is the top-level failure document. It carries errors only,
// never a data member.
type ErrorDocument struct {
	Errors []ErrorObject `json:"errors"`
}
