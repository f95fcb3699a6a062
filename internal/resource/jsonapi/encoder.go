package jsonapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"inkwell/internal/resource"
	"inkwell/internal/resource/validation"
	"inkwell/internal/shared/constants"
)

func encodeResource(resourceType string, obj resource.Object) Resource {
	id := obj.ResourceID()
	return Resource{
		Type:       resourceType,
		ID:         id,
		Attributes: obj.Attributes(),
		Links:      &Links{Self: SelfLink(resourceType, id)},
	}
}

func write(c *gin.Context, status int, doc any) {
	c.Render(status, jsonAPIRender{doc: doc})
}

// jsonAPIRender marshals a document with the JSON:API media type.
type jsonAPIRender struct {
	doc any
}

func (r jsonAPIRender) Render(w http.ResponseWriter) error {
	r.WriteContentType(w)
	data, err := json.Marshal(r.doc)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func (r jsonAPIRender) WriteContentType(w http.ResponseWriter) {
	w.Header().Set(constants.HeaderContentType, constants.ContentTypeJSONAPI)
}

// Found writes a 200 document with a single primary resource.
func Found(c *gin.Context, resourceType string, obj resource.Object) {
	write(c, http.StatusOK, Document{Data: encodeResource(resourceType, obj)})
}

// CollectionFound writes a 200 document with an array of primary resources
// and pagination links.
func CollectionFound(c *gin.Context, resourceType string, objs []resource.Object, page resource.PageState) {
	resources := make([]Resource, 0, len(objs))
	for _, obj := range objs {
		resources = append(resources, encodeResource(resourceType, obj))
	}
	write(c, http.StatusOK, Document{
		Data:  resources,
		Links: CollectionLinks(c.Request.URL, page),
	})
}

// Created writes a 201 document with the stored resource.
func Created(c *gin.Context, resourceType string, obj resource.Object) {
	write(c, http.StatusCreated, Document{Data: encodeResource(resourceType, obj)})
}

// Updated writes a 200 document, same shape as Found.
func Updated(c *gin.Context, resourceType string, obj resource.Object) {
	Found(c, resourceType, obj)
}

// Deleted writes an empty 204.
func Deleted(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// NotFound writes the 404 error document.
func NotFound(c *gin.Context) {
	writeError(c, http.StatusNotFound, constants.ErrMsgResourceNotFound, "")
}

// Unauthorized writes the 401 error document.
func Unauthorized(c *gin.Context) {
	writeError(c, http.StatusUnauthorized, constants.ErrMsgUnauthorized, "")
}

// Forbidden writes the 403 error document.
func Forbidden(c *gin.Context) {
	writeError(c, http.StatusForbidden, constants.ErrMsgForbidden, "")
}

// ServerError writes an opaque 500 error document. Internals never leak here;
// details belong in the log.
func ServerError(c *gin.Context) {
	writeError(c, http.StatusInternalServerError, "Internal Server Error", constants.ErrMsgInternalServerError)
}

// ValidationFailed writes a 422 document with one error entry per violated
// rule per field, each pointing at its source field.
func ValidationFailed(c *gin.Context, result validation.Result) {
	status := http.StatusUnprocessableEntity
	var errs []ErrorObject
	for _, field := range result.Fields() {
		for _, message := range result.FieldErrors[field] {
			errs = append(errs, ErrorObject{
				Status: strconv.Itoa(status),
				Title:  constants.ErrMsgValidationFailed,
				Detail: message,
				Source: &ErrorSource{Pointer: "/" + field},
			})
		}
	}
	write(c, status, ErrorDocument{Errors: errs})
}

func writeError(c *gin.Context, status int, title, detail string) {
	write(c, status, ErrorDocument{
		Errors: []ErrorObject{{
			Status: strconv.Itoa(status),
			Title:  title,
			Detail: detail,
		}},
	})
}
