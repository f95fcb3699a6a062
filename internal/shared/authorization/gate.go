// Package authorization holds the request principal, the role vocabulary, and
// the gate that decides whether a principal may perform an action on a
// resource type. Decisions come from a static role table; anything the table
// does not grant is denied.
package authorization

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"gopkg.in/yaml.v3"

	"inkwell/internal/shared/logger"
)

// Action is a dispatch verb the gate can decide on.
type Action string

const (
	ActionIndex  Action = "index"
	ActionShow   Action = "show"
	ActionStore  Action = "store"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

//go:embed policy.yaml
var policyYAML []byte

type policyGrant struct {
	Resource string   `yaml:"resource"`
	Actions  []string `yaml:"actions"`
	Role     string   `yaml:"role"`
}

type policyFile struct {
	Grants []policyGrant `yaml:"grants"`
}

// Gate answers allow/deny for (principal, action, resource type). It is a pure
// decision function over the embedded role table; it has no side effects and
// holds no per-request state.
type Gate struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   logger.Interface
}

func NewGate(log logger.Interface) (*Gate, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("failed to build authorization model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create enforcer: %w", err)
	}

	var pf policyFile
	if err := yaml.Unmarshal(policyYAML, &pf); err != nil {
		return nil, fmt.Errorf("failed to parse policy table: %w", err)
	}

	// Administrators hold every grant a standard user holds.
	if _, err := enforcer.AddGroupingPolicy(RoleAdministrator.String(), RoleStandard.String()); err != nil {
		return nil, fmt.Errorf("failed to add role hierarchy: %w", err)
	}

	for _, grant := range pf.Grants {
		for _, action := range grant.Actions {
			if _, err := enforcer.AddPolicy(grant.Role, grant.Resource, action); err != nil {
				return nil, fmt.Errorf("failed to add policy for %s/%s: %w", grant.Resource, action, err)
			}
		}
	}

	return &Gate{
		enforcer: enforcer,
		logger:   log,
	}, nil
}

// Allows reports whether the principal may perform action on the resource
// type. A nil principal is always denied; the caller distinguishes 401 from
// 403 by checking presence before consulting the gate. Enforcement failures
// deny.
func (g *Gate) Allows(principal *Principal, action Action, resourceType string) bool {
	if principal == nil {
		return false
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	allowed, err := g.enforcer.Enforce(principal.Role.String(), resourceType, string(action))
	if err != nil {
		g.logger.Errorw("authorization check failed",
			"error", err,
			"role", principal.Role.String(),
			"resource", resourceType,
			"action", string(action))
		return false
	}

	return allowed
}
