package middlewares

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/gin-gonic/gin"
)

// rbacModel субъект - роль юзера, объект - путь запроса (поддерживает шаблоны вида /course/:id), действие - метод.
const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && keyMatch2(r.obj, p.obj) && r.act == p.act
`

// NewEnforcer создает casbin enforcer с политиками policies вида {роль, путь, метод}.
func NewEnforcer(policies [][]string) (*casbin.Enforcer, error) {
	m, modelErr := model.NewModelFromString(rbacModel)
	if modelErr != nil {
		return nil, fmt.Errorf("rbac model: %w", modelErr)
	}
	e, enfErr := casbin.NewEnforcer(m)
	if enfErr != nil {
		return nil, fmt.Errorf("rbac enforcer: %w", enfErr)
	}
	if len(policies) > 0 {
		if _, err := e.AddPolicies(policies); err != nil {
			return nil, fmt.Errorf("rbac policies: %w", err)
		}
	}
	return e, nil
}

// Authorize пропускает запрос только если роль юзера (CurrentUserRoleKey) допускает метод и путь запроса.
// Должен идти после AuthRequired.
func Authorize(e *casbin.Enforcer) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(CurrentUserRoleKey)

		allowed, err := e.Enforce(role, c.Request.URL.Path, c.Request.Method)
		if err != nil {
			c.Status(http.StatusInternalServerError)
			_ = c.Error(fmt.Errorf("rbac enforce: %w", err)).SetType(gin.ErrorTypePrivate)
			c.Abort()
			return
		}
		if !allowed {
			c.Status(http.StatusForbidden)
			_ = c.Error(errors.New("You do not have permission to access this route")).SetType(gin.ErrorTypePublic) //nolint:staticcheck
			c.Abort()
			return
		}
		c.Next()
	}
}
