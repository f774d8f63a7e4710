package middleware

import (
	"crypto/sha256"
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"

	"github.com/noah-isme/act-survey-api/internal/utils"
)

// AdminRealm is announced in the basic auth challenge.
const AdminRealm = "Admin Access"

// AdminUserKey is the Locals key holding the authenticated admin username.
const AdminUserKey = "admin_user"

// AdminCredentials is the shared username/password pair guarding admin routes.
type AdminCredentials struct {
	Username string
	Password string
}

// AdminAuth checks HTTP basic credentials on every request. There is no session:
// a missing or wrong pair is answered with a challenge before any handler runs.
func AdminAuth(creds AdminCredentials) fiber.Handler {
	return basicauth.New(basicauth.Config{
		Realm: AdminRealm,
		Authorizer: func(username, password string) bool {
			if creds.Username == "" || creds.Password == "" {
				return false
			}
			userOK := secureEqual(username, creds.Username)
			passOK := secureEqual(password, creds.Password)
			return userOK && passOK
		},
		Unauthorized: func(c *fiber.Ctx) error {
			c.Set(fiber.HeaderWWWAuthenticate, `Basic realm="`+AdminRealm+`"`)
			return utils.Fail(c, fiber.StatusUnauthorized, "authentication required", nil)
		},
		ContextUsername: AdminUserKey,
	})
}

// secureEqual compares digests so timing does not leak the length of the secret.
func secureEqual(given, expected string) bool {
	a := sha256.Sum256([]byte(given))
	b := sha256.Sum256([]byte(expected))
	return subtle.ConstantTimeCompare(a[:], b[:]) == 1
}
