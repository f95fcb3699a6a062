package jsonapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/resource"
	"inkwell/internal/resource/validation"
	"inkwell/internal/shared/constants"
)

type stubObject struct {
	id    string
	attrs map[string]any
}

func (s stubObject) ResourceID() string         { return s.id }
func (s stubObject) Attributes() map[string]any { return s.attrs }
func (s stubObject) ViewRestricted() bool       { return false }

func newTestContext(t *testing.T, target string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, w
}

func decodeDocument(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var doc map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	return doc
}

func TestFound_EncodesSingleResource(t *testing.T) {
	c, w := newTestContext(t, "/v1/posts/hello")

	Found(c, "posts", stubObject{id: "hello", attrs: map[string]any{"title": "Hello"}})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, constants.ContentTypeJSONAPI, w.Header().Get("Content-Type"))

	doc := decodeDocument(t, w)
	data := doc["data"].(map[string]any)
	assert.Equal(t, "posts", data["type"])
	assert.Equal(t, "hello", data["id"])
	assert.Equal(t, "Hello", data["attributes"].(map[string]any)["title"])
	assert.Equal(t, "/v1/posts/hello", data["links"].(map[string]any)["self"])
}

func TestCollectionFound_EncodesArrayAndLinks(t *testing.T) {
	c, w := newTestContext(t, "/v1/posts?page=1&size=10")

	objs := []resource.Object{
		stubObject{id: "one", attrs: map[string]any{}},
		stubObject{id: "two", attrs: map[string]any{}},
	}
	CollectionFound(c, "posts", objs, resource.PageState{Page: 1, Size: 10, Total: 12, LastPage: 2})

	assert.Equal(t, http.StatusOK, w.Code)

	doc := decodeDocument(t, w)
	data := doc["data"].([]any)
	assert.Len(t, data, 2)

	links := doc["links"].(map[string]any)
	assert.Contains(t, links["next"], "page=2")
	assert.NotContains(t, links, "prev")
}

func TestCollectionFound_EmptyPageEncodesEmptyArray(t *testing.T) {
	c, w := newTestContext(t, "/v1/posts")

	CollectionFound(c, "posts", nil, resource.PageState{Page: 1, Size: 15, Total: 0, LastPage: 0})

	// An empty collection is data: [], never data: null.
	assert.Contains(t, w.Body.String(), `"data":[]`)
}

func TestDeleted_NoBody(t *testing.T) {
	c, w := newTestContext(t, "/v1/posts/hello")

	Deleted(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestNotFound_ErrorDocument(t *testing.T) {
	c, w := newTestContext(t, "/v1/unknown/1")

	NotFound(c)

	assert.Equal(t, http.StatusNotFound, w.Code)

	doc := decodeDocument(t, w)
	errs := doc["errors"].([]any)
	require.Len(t, errs, 1)
	errObj := errs[0].(map[string]any)
	assert.Equal(t, "404", errObj["status"])
	assert.Equal(t, constants.ErrMsgResourceNotFound, errObj["title"])
	_, hasData := doc["data"]
	assert.False(t, hasData)
}

func TestValidationFailed_OneErrorPerViolation(t *testing.T) {
	c, w := newTestContext(t, "/v1/posts")

	result := validation.Result{FieldErrors: map[string][]string{
		"title": {"The title field is required."},
		"email": {"The email field is required.", "The email must be a valid email address."},
	}}
	ValidationFailed(c, result)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	doc := decodeDocument(t, w)
	errs := doc["errors"].([]any)
	require.Len(t, errs, 3)

	first := errs[0].(map[string]any)
	assert.Equal(t, "422", first["status"])
	assert.Equal(t, constants.ErrMsgValidationFailed, first["title"])
	assert.Equal(t, "/email", first["source"].(map[string]any)["pointer"])

	last := errs[2].(map[string]any)
	assert.Equal(t, "/title", last["source"].(map[string]any)["pointer"])
}
