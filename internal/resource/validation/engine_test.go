package validation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChecker struct {
	taken     map[string]bool
	pairTaken map[string]bool
}

func (f *fakeChecker) Exists(ctx context.Context, table, column, value string) (bool, error) {
	return f.taken[table+"."+column+"="+value], nil
}

func (f *fakeChecker) ExistsWithin(ctx context.Context, table, column, value, scopeColumn, scopeValue string) (bool, error) {
	return f.pairTaken[table+"."+column+"="+value+"&"+scopeColumn+"="+scopeValue], nil
}

func newTestEngine(checker *fakeChecker) *Engine {
	if checker == nil {
		checker = &fakeChecker{}
	}
	return NewEngine(checker)
}

func TestValidate_RequiredRejectsMissingAndBlank(t *testing.T) {
	engine := newTestEngine(nil)
	rules := RuleSet{"title": {"required"}}

	result, err := engine.Validate(context.Background(), map[string]string{}, rules)
	require.NoError(t, err)
	assert.False(t, result.Valid())
	assert.Contains(t, result.FieldErrors["title"][0], "required")

	result, err = engine.Validate(context.Background(), map[string]string{"title": "   "}, rules)
	require.NoError(t, err)
	assert.False(t, result.Valid())
}

func TestValidate_OptionalRulesSkipEmptyValues(t *testing.T) {
	engine := newTestEngine(nil)
	rules := RuleSet{
		"summary": {"max:5"},
		"email":   {"email"},
	}

	result, err := engine.Validate(context.Background(), map[string]string{}, rules)
	require.NoError(t, err)
	assert.True(t, result.Valid())
}

func TestValidate_Max(t *testing.T) {
	engine := newTestEngine(nil)
	rules := RuleSet{"title": {"max:5"}}

	result, err := engine.Validate(context.Background(), map[string]string{"title": "okay"}, rules)
	require.NoError(t, err)
	assert.True(t, result.Valid())

	result, err = engine.Validate(context.Background(), map[string]string{"title": "too long for five"}, rules)
	require.NoError(t, err)
	assert.False(t, result.Valid())
}

func TestValidate_Email(t *testing.T) {
	engine := newTestEngine(nil)
	rules := RuleSet{"email": {"email"}}

	result, err := engine.Validate(context.Background(), map[string]string{"email": "someone@example.com"}, rules)
	require.NoError(t, err)
	assert.True(t, result.Valid())

	result, err = engine.Validate(context.Background(), map[string]string{"email": "not-an-address"}, rules)
	require.NoError(t, err)
	assert.False(t, result.Valid())
}

func TestValidate_Boolean(t *testing.T) {
	engine := newTestEngine(nil)
	rules := RuleSet{"live": {"boolean"}}

	for _, value := range []string{"0", "1", "true", "false", "True"} {
		result, err := engine.Validate(context.Background(), map[string]string{"live": value}, rules)
		require.NoError(t, err)
		assert.True(t, result.Valid(), "value %q should pass", value)
	}

	result, err := engine.Validate(context.Background(), map[string]string{"live": "yes"}, rules)
	require.NoError(t, err)
	assert.False(t, result.Valid())
}

func TestValidate_Confirmed(t *testing.T) {
	engine := newTestEngine(nil)
	rules := RuleSet{"password": {"confirmed"}}

	result, err := engine.Validate(context.Background(), map[string]string{
		"password":              "secret",
		"password_confirmation": "secret",
	}, rules)
	require.NoError(t, err)
	assert.True(t, result.Valid())

	result, err = engine.Validate(context.Background(), map[string]string{
		"password":              "secret",
		"password_confirmation": "different",
	}, rules)
	require.NoError(t, err)
	assert.False(t, result.Valid())
}

func TestValidate_Unique(t *testing.T) {
	checker := &fakeChecker{taken: map[string]bool{"posts.slug=hello": true}}
	engine := newTestEngine(checker)
	rules := RuleSet{"slug": {"unique:posts,slug"}}

	result, err := engine.Validate(context.Background(), map[string]string{"slug": "hello"}, rules)
	require.NoError(t, err)
	assert.False(t, result.Valid())
	assert.Contains(t, result.FieldErrors["slug"][0], "already been taken")

	result, err = engine.Validate(context.Background(), map[string]string{"slug": "fresh"}, rules)
	require.NoError(t, err)
	assert.True(t, result.Valid())
}

func TestValidate_UniquePairScopesTheCheck(t *testing.T) {
	checker := &fakeChecker{pairTaken: map[string]bool{"pages.slug=about&type=legal": true}}
	engine := newTestEngine(checker)
	rules := RuleSet{"slug": {"uniquepair:pages,slug,type"}}

	result, err := engine.Validate(context.Background(), map[string]string{
		"slug": "about",
		"type": "legal",
	}, rules)
	require.NoError(t, err)
	assert.False(t, result.Valid())

	// Same slug is fine in a different scope.
	result, err = engine.Validate(context.Background(), map[string]string{
		"slug": "about",
		"type": "help",
	}, rules)
	require.NoError(t, err)
	assert.True(t, result.Valid())
}

func TestValidate_CollectsEveryFailure(t *testing.T) {
	engine := newTestEngine(nil)
	rules := RuleSet{
		"title": {"required"},
		"email": {"required", "email"},
	}

	result, err := engine.Validate(context.Background(), map[string]string{"email": "bad"}, rules)
	require.NoError(t, err)
	assert.False(t, result.Valid())
	assert.Len(t, result.FieldErrors, 2)
	assert.Equal(t, []string{"email", "title"}, result.Fields())
}

func TestRuleSet_ForUpdateDropsRequiredForUnsubmittedFields(t *testing.T) {
	rules := RuleSet{
		"title": {"required", "max:160"},
		"body":  {"required"},
	}

	derived := rules.ForUpdate(map[string]string{"title": "changed"})

	assert.Equal(t, []string{"required", "max:160"}, derived["title"])
	_, kept := derived["body"]
	assert.False(t, kept)
	// The original set is untouched.
	assert.Equal(t, []string{"required"}, rules["body"])
}

func TestRuleSet_DropRule(t *testing.T) {
	rules := RuleSet{"slug": {"max:160", "unique:posts,slug"}}

	rules.DropRule("slug", "unique")

	assert.Equal(t, []string{"max:160"}, rules["slug"])
}
