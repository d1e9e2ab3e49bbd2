package authorize

import (
	"fmt"
	"os"

	casbin "github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"github.com/polijecare/polijecare_web/config"
)

// DefaultModel grants a role a set of permissions (g) and each permission
// a set of route patterns and actions (p).
const DefaultModel = `[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch2(r.obj, p.obj) && (p.act == "*" || r.act == p.act)
`

// NewEnforcer loads the model from path, or DefaultModel when path is
// empty or missing, and seeds the built-in policies.
func NewEnforcer(modelPath string) (*casbin.SyncedEnforcer, error) {
	m, err := loadModel(modelPath)
	if err != nil {
		return nil, err
	}
	e, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("create enforcer: %w", err)
	}
	if err := SeedDefaultPolicies(e); err != nil {
		return nil, err
	}
	return e, nil
}

func NewEnforcerFromConfig(cfg *config.Config) (*casbin.SyncedEnforcer, error) {
	return NewEnforcer(cfg.Authorization.CasbinModelPath)
}

func loadModel(path string) (model.Model, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			m, err := model.NewModelFromFile(path)
			if err != nil {
				return nil, fmt.Errorf("load casbin model %s: %w", path, err)
			}
			return m, nil
		}
	}
	m, err := model.NewModelFromString(DefaultModel)
	if err != nil {
		return nil, fmt.Errorf("load default casbin model: %w", err)
	}
	return m, nil
}
