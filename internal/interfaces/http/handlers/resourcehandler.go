package handlers

import (
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"inkwell/internal/interfaces/http/middleware"
	"inkwell/internal/resource"
	"inkwell/internal/resource/jsonapi"
	"inkwell/internal/resource/validation"
	"inkwell/internal/shared/authorization"
	"inkwell/internal/shared/errors"
	"inkwell/internal/shared/logger"
)

// ResourceHandler dispatches the five generic operations to whichever
// capability the URL names. Every operation follows the same order: resolve
// the capability, authorize, validate, execute, encode. An unregistered type
// and a missing record produce the same not-found document, so the URL space
// leaks nothing about what exists.
type ResourceHandler struct {
	registry *resource.Registry
	gate     *authorization.Gate
	engine   *validation.Engine
	logger   logger.Interface
}

func NewResourceHandler(registry *resource.Registry, gate *authorization.Gate, engine *validation.Engine, log logger.Interface) *ResourceHandler {
	return &ResourceHandler{
		registry: registry,
		gate:     gate,
		engine:   engine,
		logger:   log.Named("resources"),
	}
}

func (h *ResourceHandler) Index(c *gin.Context) {
	capability, ok := h.resolve(c)
	if !ok {
		return
	}

	if capability.AuthorizeIndex() {
		if !h.authorize(c, authorization.ActionIndex, capability.Type()) {
			return
		}
	}

	objects, page, err := capability.FindMany(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		h.fail(c, capability.Type(), "index", err)
		return
	}

	jsonapi.CollectionFound(c, capability.Type(), objects, page)
}

func (h *ResourceHandler) Show(c *gin.Context) {
	capability, ok := h.resolve(c)
	if !ok {
		return
	}

	obj, ok := h.fetch(c, capability)
	if !ok {
		return
	}

	if capability.AuthorizeShow(obj) {
		if !h.authorize(c, authorization.ActionShow, capability.Type()) {
			return
		}
	}

	jsonapi.Found(c, capability.Type(), obj)
}

func (h *ResourceHandler) Store(c *gin.Context) {
	capability, ok := h.resolve(c)
	if !ok {
		return
	}

	if capability.AuthorizeStore() {
		if !h.authorize(c, authorization.ActionStore, capability.Type()) {
			return
		}
	}

	attrs, err := parseAttributes(c)
	if err != nil {
		jsonapi.ValidationFailed(c, malformedBody())
		return
	}

	result, err := h.engine.Validate(c.Request.Context(), attrs, capability.StoreRules(attrs))
	if err != nil {
		h.fail(c, capability.Type(), "store", err)
		return
	}
	if !result.Valid() {
		jsonapi.ValidationFailed(c, result)
		return
	}

	obj, err := capability.Create(c.Request.Context(), attrs, middleware.PrincipalFrom(c))
	if err != nil {
		h.fail(c, capability.Type(), "store", err)
		return
	}

	jsonapi.Created(c, capability.Type(), obj)
}

func (h *ResourceHandler) Update(c *gin.Context) {
	capability, ok := h.resolve(c)
	if !ok {
		return
	}

	obj, ok := h.fetch(c, capability)
	if !ok {
		return
	}

	if capability.AuthorizeUpdate(obj) {
		if !h.authorize(c, authorization.ActionUpdate, capability.Type()) {
			return
		}
	}

	attrs, err := parseAttributes(c)
	if err != nil {
		jsonapi.ValidationFailed(c, malformedBody())
		return
	}

	result, err := h.engine.Validate(c.Request.Context(), attrs, capability.UpdateRules(obj, attrs))
	if err != nil {
		h.fail(c, capability.Type(), "update", err)
		return
	}
	if !result.Valid() {
		jsonapi.ValidationFailed(c, result)
		return
	}

	updated, err := capability.Update(c.Request.Context(), obj, attrs, middleware.PrincipalFrom(c))
	if err != nil {
		h.fail(c, capability.Type(), "update", err)
		return
	}

	jsonapi.Updated(c, capability.Type(), updated)
}

func (h *ResourceHandler) Delete(c *gin.Context) {
	capability, ok := h.resolve(c)
	if !ok {
		return
	}

	obj, ok := h.fetch(c, capability)
	if !ok {
		return
	}

	if capability.AuthorizeDelete(obj) {
		if !h.authorize(c, authorization.ActionDelete, capability.Type()) {
			return
		}
	}

	deleted, err := capability.Delete(c.Request.Context(), obj)
	if err != nil {
		h.fail(c, capability.Type(), "delete", err)
		return
	}
	if !deleted {
		// A false return is a non-exceptional refusal, so no error-level log.
		h.logger.Warnw("delete refused", "resource", capability.Type(), "id", obj.ResourceID())
		jsonapi.ServerError(c)
		return
	}

	jsonapi.Deleted(c)
}

func (h *ResourceHandler) resolve(c *gin.Context) (resource.Capability, bool) {
	capability, ok := h.registry.Resolve(c.Param("resource"))
	if !ok {
		jsonapi.NotFound(c)
		return nil, false
	}
	return capability, true
}

func (h *ResourceHandler) fetch(c *gin.Context, capability resource.Capability) (resource.Object, bool) {
	identifier := strings.TrimPrefix(c.Param("identifier"), "/")
	if identifier == "" {
		jsonapi.NotFound(c)
		return nil, false
	}

	obj, err := capability.FindOne(c.Request.Context(), identifier, c.Request.URL.Query())
	if err != nil {
		h.fail(c, capability.Type(), "fetch", err)
		return nil, false
	}
	if obj == nil {
		jsonapi.NotFound(c)
		return nil, false
	}
	return obj, true
}

// authorize rejects guests with 401 and insufficient roles with 403.
func (h *ResourceHandler) authorize(c *gin.Context, action authorization.Action, resourceType string) bool {
	principal := middleware.PrincipalFrom(c)
	if principal == nil {
		jsonapi.Unauthorized(c)
		return false
	}
	if !h.gate.Allows(principal, action, resourceType) {
		jsonapi.Forbidden(c)
		return false
	}
	return true
}

// fail logs the underlying cause and answers with an opaque document. Not
// found is the only failure that keeps its shape.
func (h *ResourceHandler) fail(c *gin.Context, resourceType, operation string, err error) {
	if errors.IsNotFoundError(err) {
		jsonapi.NotFound(c)
		return
	}

	h.logger.Errorw("resource operation failed",
		"resource", resourceType,
		"operation", operation,
		"error", err)
	jsonapi.ServerError(c)
}

func malformedBody() validation.Result {
	return validation.Result{FieldErrors: map[string][]string{
		"body": {"The request body could not be parsed."},
	}}
}

// parseAttributes flattens the request body into string attributes. Three
// body shapes are accepted: a flat JSON object, a JSON:API document with
// data.attributes, and a URL-encoded form.
func parseAttributes(c *gin.Context) (map[string]string, error) {
	contentType := c.ContentType()

	if strings.Contains(contentType, "json") {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			return nil, err
		}
		if len(strings.TrimSpace(string(body))) == 0 {
			return map[string]string{}, nil
		}

		var document struct {
			Data *struct {
				Attributes map[string]any `json:"attributes"`
			} `json:"data"`
		}
		if err := json.Unmarshal(body, &document); err == nil && document.Data != nil && document.Data.Attributes != nil {
			return stringifyAttributes(document.Data.Attributes), nil
		}

		var flat map[string]any
		if err := json.Unmarshal(body, &flat); err != nil {
			return nil, err
		}
		delete(flat, "data")
		return stringifyAttributes(flat), nil
	}

	if err := c.Request.ParseForm(); err != nil {
		return nil, err
	}
	attrs := make(map[string]string, len(c.Request.PostForm))
	for key := range c.Request.PostForm {
		attrs[key] = c.Request.PostForm.Get(key)
	}
	return attrs, nil
}

func stringifyAttributes(raw map[string]any) map[string]string {
	attrs := make(map[string]string, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case string:
			attrs[key] = v
		case bool:
			if v {
				attrs[key] = "1"
			} else {
				attrs[key] = "0"
			}
		case nil:
			attrs[key] = ""
		case float64:
			attrs[key] = strconv.FormatFloat(v, 'f', -1, 64)
		default:
			encoded, err := json.Marshal(v)
			if err != nil {
				continue
			}
			attrs[key] = string(encoded)
		}
	}
	return attrs
}
