package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/resource"
	"inkwell/internal/resource/validation"
	"inkwell/internal/shared/authorization"
	"inkwell/internal/shared/constants"
	"inkwell/internal/shared/logger"
)

type fakeObject struct {
	id         string
	attrs      map[string]any
	restricted bool
}

func (o fakeObject) ResourceID() string         { return o.id }
func (o fakeObject) Attributes() map[string]any { return o.attrs }
func (o fakeObject) ViewRestricted() bool       { return o.restricted }

// fakeCapability mimics a public-read resource with administrator mutations.
type fakeCapability struct {
	name         string
	objects      map[string]fakeObject
	rules        validation.RuleSet
	authStore    bool
	created      map[string]string
	deletedIDs   []string
	refuseDelete bool
}

func (f *fakeCapability) Type() string { return f.name }

func (f *fakeCapability) FindOne(ctx context.Context, identifier string, params url.Values) (resource.Object, error) {
	obj, ok := f.objects[identifier]
	if !ok {
		return nil, nil
	}
	return obj, nil
}

func (f *fakeCapability) FindMany(ctx context.Context, params url.Values) ([]resource.Object, resource.PageState, error) {
	var objs []resource.Object
	for _, obj := range f.objects {
		objs = append(objs, obj)
	}
	return objs, resource.PageState{Page: 1, Size: 15, Total: int64(len(objs)), LastPage: 1}, nil
}

func (f *fakeCapability) Create(ctx context.Context, attrs map[string]string, principal *authorization.Principal) (resource.Object, error) {
	f.created = attrs
	return fakeObject{id: "created", attrs: map[string]any{"title": attrs["title"]}}, nil
}

func (f *fakeCapability) Update(ctx context.Context, obj resource.Object, attrs map[string]string, principal *authorization.Principal) (resource.Object, error) {
	merged := obj.(fakeObject)
	for k, v := range attrs {
		merged.attrs[k] = v
	}
	return merged, nil
}

func (f *fakeCapability) Delete(ctx context.Context, obj resource.Object) (bool, error) {
	if f.refuseDelete {
		return false, nil
	}
	f.deletedIDs = append(f.deletedIDs, obj.ResourceID())
	return true, nil
}

func (f *fakeCapability) StoreRules(attrs map[string]string) validation.RuleSet {
	return f.rules
}

func (f *fakeCapability) UpdateRules(obj resource.Object, attrs map[string]string) validation.RuleSet {
	return f.rules.ForUpdate(attrs)
}

func (f *fakeCapability) AuthorizeIndex() bool { return false }

func (f *fakeCapability) AuthorizeShow(obj resource.Object) bool { return obj.ViewRestricted() }

func (f *fakeCapability) AuthorizeStore() bool { return f.authStore }

func (f *fakeCapability) AuthorizeUpdate(resource.Object) bool { return true }

func (f *fakeCapability) AuthorizeDelete(resource.Object) bool { return true }

type noopChecker struct{}

func (noopChecker) Exists(ctx context.Context, table, column, value string) (bool, error) {
	return false, nil
}

func (noopChecker) ExistsWithin(ctx context.Context, table, column, value, scopeColumn, scopeValue string) (bool, error) {
	return false, nil
}

func newPostsFake() *fakeCapability {
	return &fakeCapability{
		name: "posts",
		objects: map[string]fakeObject{
			"hello": {id: "hello", attrs: map[string]any{"title": "Hello"}},
			"draft": {id: "draft", attrs: map[string]any{"title": "Draft"}, restricted: true},
		},
		rules: validation.RuleSet{
			"title": {"required", "max:160"},
			"body":  {"required"},
		},
		authStore: true,
	}
}

func setupDispatch(t *testing.T, capability resource.Capability, principal *authorization.Principal) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
	gate, err := authorization.NewGate(log)
	require.NoError(t, err)

	registry := resource.NewRegistry()
	registry.Register(capability)

	handler := NewResourceHandler(registry, gate, validation.NewEngine(noopChecker{}), log)

	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		if principal != nil {
			c.Set(constants.ContextKeyPrincipal, principal)
		}
		c.Next()
	})
	v1 := engine.Group("/v1")
	v1.GET("/:resource", handler.Index)
	v1.POST("/:resource", handler.Store)
	v1.GET("/:resource/*identifier", handler.Show)
	v1.PATCH("/:resource/*identifier", handler.Update)
	v1.DELETE("/:resource/*identifier", handler.Delete)
	return engine
}

func perform(engine *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var doc map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	return doc
}

var admin = &authorization.Principal{UUID: "u-1", Email: "admin@example.com", Role: authorization.RoleAdministrator}

var standard = &authorization.Principal{UUID: "u-2", Email: "user@example.com", Role: authorization.RoleStandard}

func TestDispatch_UnknownTypeIs404(t *testing.T) {
	engine := setupDispatch(t, newPostsFake(), nil)

	w := perform(engine, http.MethodGet, "/v1/widgets", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	doc := decode(t, w)
	assert.NotEmpty(t, doc["errors"])
}

func TestDispatch_MissingRecordIs404WithSameShape(t *testing.T) {
	engine := setupDispatch(t, newPostsFake(), nil)

	unknownType := perform(engine, http.MethodGet, "/v1/widgets/1", "")
	missingRecord := perform(engine, http.MethodGet, "/v1/posts/nope", "")

	assert.Equal(t, http.StatusNotFound, unknownType.Code)
	assert.Equal(t, http.StatusNotFound, missingRecord.Code)
	assert.JSONEq(t, unknownType.Body.String(), missingRecord.Body.String())
}

func TestDispatch_PublicIndexNeedsNoAuth(t *testing.T) {
	engine := setupDispatch(t, newPostsFake(), nil)

	w := perform(engine, http.MethodGet, "/v1/posts", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, constants.ContentTypeJSONAPI, w.Header().Get("Content-Type"))

	doc := decode(t, w)
	assert.NotNil(t, doc["data"])
	assert.NotNil(t, doc["links"])
}

func TestDispatch_PublicShowServesUnrestrictedObject(t *testing.T) {
	engine := setupDispatch(t, newPostsFake(), nil)

	w := perform(engine, http.MethodGet, "/v1/posts/hello", "")

	assert.Equal(t, http.StatusOK, w.Code)
	doc := decode(t, w)
	data := doc["data"].(map[string]any)
	assert.Equal(t, "hello", data["id"])
	assert.Equal(t, "posts", data["type"])
	assert.Equal(t, "/v1/posts/hello", data["links"].(map[string]any)["self"])
}

func TestDispatch_RestrictedShowAsGuestIs401(t *testing.T) {
	engine := setupDispatch(t, newPostsFake(), nil)

	w := perform(engine, http.MethodGet, "/v1/posts/draft", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDispatch_RestrictedShowAsStandardIs403(t *testing.T) {
	engine := setupDispatch(t, newPostsFake(), standard)

	w := perform(engine, http.MethodGet, "/v1/posts/draft", "")

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDispatch_RestrictedShowAsAdminSucceeds(t *testing.T) {
	engine := setupDispatch(t, newPostsFake(), admin)

	w := perform(engine, http.MethodGet, "/v1/posts/draft", "")

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDispatch_StoreAsGuestIs401(t *testing.T) {
	engine := setupDispatch(t, newPostsFake(), nil)

	w := perform(engine, http.MethodPost, "/v1/posts", `{"title":"New","body":"text"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDispatch_StoreAsStandardIs403(t *testing.T) {
	engine := setupDispatch(t, newPostsFake(), standard)

	w := perform(engine, http.MethodPost, "/v1/posts", `{"title":"New","body":"text"}`)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDispatch_StoreValidIs201(t *testing.T) {
	capability := newPostsFake()
	engine := setupDispatch(t, capability, admin)

	w := perform(engine, http.MethodPost, "/v1/posts", `{"title":"New","body":"text"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "New", capability.created["title"])

	doc := decode(t, w)
	data := doc["data"].(map[string]any)
	assert.Equal(t, "created", data["id"])
}

func TestDispatch_StoreInvalidIs422WithPointers(t *testing.T) {
	engine := setupDispatch(t, newPostsFake(), admin)

	w := perform(engine, http.MethodPost, "/v1/posts", `{"body":"text"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	doc := decode(t, w)
	errs := doc["errors"].([]any)
	require.Len(t, errs, 1)
	errObj := errs[0].(map[string]any)
	assert.Equal(t, "422", errObj["status"])
	assert.Equal(t, "/title", errObj["source"].(map[string]any)["pointer"])
	assert.Contains(t, errObj["detail"], "required")
}

func TestDispatch_StoreAcceptsJSONAPIEnvelope(t *testing.T) {
	capability := newPostsFake()
	engine := setupDispatch(t, capability, admin)

	w := perform(engine, http.MethodPost, "/v1/posts",
		`{"data":{"type":"posts","attributes":{"title":"Enveloped","body":"text","live":true}}}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Enveloped", capability.created["title"])
	assert.Equal(t, "1", capability.created["live"])
}

func TestDispatch_UpdateValidatesOnlySubmittedFields(t *testing.T) {
	engine := setupDispatch(t, newPostsFake(), admin)

	// title is required on store, but a body-only update must pass.
	w := perform(engine, http.MethodPatch, "/v1/posts/hello", `{"body":"reworked"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	doc := decode(t, w)
	attrs := doc["data"].(map[string]any)["attributes"].(map[string]any)
	assert.Equal(t, "reworked", attrs["body"])
	assert.Equal(t, "Hello", attrs["title"])
}

func TestDispatch_UpdateBlankRequiredFieldIs422(t *testing.T) {
	engine := setupDispatch(t, newPostsFake(), admin)

	w := perform(engine, http.MethodPatch, "/v1/posts/hello", `{"title":""}`)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestDispatch_DeleteIs204WithNoBody(t *testing.T) {
	capability := newPostsFake()
	engine := setupDispatch(t, capability, admin)

	w := perform(engine, http.MethodDelete, "/v1/posts/hello", "")

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Equal(t, []string{"hello"}, capability.deletedIDs)
}

func TestDispatch_DeleteMissingIs404(t *testing.T) {
	engine := setupDispatch(t, newPostsFake(), admin)

	w := perform(engine, http.MethodDelete, "/v1/posts/nope", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDispatch_DeleteRefusedIs500(t *testing.T) {
	capability := newPostsFake()
	capability.refuseDelete = true
	engine := setupDispatch(t, capability, admin)

	w := perform(engine, http.MethodDelete, "/v1/posts/hello", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, capability.deletedIDs)
}

func TestDispatch_WildcardIdentifierAllowsSlashes(t *testing.T) {
	capability := newPostsFake()
	capability.objects["guides/getting-started"] = fakeObject{
		id:    "guides/getting-started",
		attrs: map[string]any{"title": "Guide"},
	}
	engine := setupDispatch(t, capability, nil)

	w := perform(engine, http.MethodGet, "/v1/posts/guides/getting-started", "")

	assert.Equal(t, http.StatusOK, w.Code)
	doc := decode(t, w)
	assert.Equal(t, "guides/getting-started", doc["data"].(map[string]any)["id"])
}
