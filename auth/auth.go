package auth

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"neonpulse/models"
	"neonpulse/storage"
)

const (
	sessionName   = "neonpulse-session"
	sessionMaxAge = 24 * 60 * 60 // 24 hours
	userIDKey     = "user_id"
)

type AuthModule struct {
	store storage.Storage
}

func NewAuthModule(store storage.Storage) *AuthModule {
	return &AuthModule{store: store}
}

// Setup wires the session middleware and the four auth endpoints onto
// the router, and makes sure the admin account invariant holds.
func (a *AuthModule) Setup(router *gin.Engine) {
	if err := a.EnsureAdminUser(); err != nil {
		log.Printf("Error ensuring admin user exists: %v", err)
	}

	store := a.store.SessionStore()
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		Secure:   false,
	})
	router.Use(sessions.Sessions(sessionName, store))

	router.POST("/api/register", a.register)
	router.POST("/api/login", a.login)
	router.POST("/api/logout", a.logout)
	router.GET("/api/user", a.currentUser)
}

// EnsureAdminUser guarantees an admin account exists after startup. A
// missing account is created with the default credential, hashed; a
// legacy plaintext credential is migrated in place. Running it again
// finds the hashed account and does nothing.
func (a *AuthModule) EnsureAdminUser() error {
	admin := a.store.GetUserByUsername("admin")

	if admin == nil {
		log.Println("Creating admin user...")
		hashed, err := hashPassword("admin")
		if err != nil {
			return err
		}
		a.store.CreateUser("admin", hashed, true)
		log.Println("Admin user created successfully")
		return nil
	}

	if !strings.Contains(admin.Password, ".") {
		log.Println("Fixing admin password hash...")
		hashed, err := hashPassword("admin")
		if err != nil {
			return err
		}
		a.store.SetUserPassword(admin.ID, hashed)
		log.Println("Admin password fixed")
	}

	return nil
}

type credentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (a *AuthModule) register(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation error"})
		return
	}

	if existing := a.store.GetUserByUsername(req.Username); existing != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username already exists"})
		return
	}

	hashed, err := hashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to register"})
		return
	}

	// Self-registration never grants admin.
	user := a.store.CreateUser(req.Username, hashed, false)

	session := sessions.Default(c)
	session.Set(userIDKey, user.ID)
	if err := session.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to register"})
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (a *AuthModule) login(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation error"})
		return
	}

	user := a.store.GetUserByUsername(req.Username)
	if user == nil || !comparePasswords(req.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	session := sessions.Default(c)
	session.Set(userIDKey, user.ID)
	if err := session.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to log in"})
		return
	}

	c.JSON(http.StatusOK, user)
}

func (a *AuthModule) logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	session.Save()

	c.Status(http.StatusOK)
}

func (a *AuthModule) currentUser(c *gin.Context) {
	user := a.resolveUser(c)
	if user == nil {
		c.Status(http.StatusUnauthorized)
		return
	}
	c.JSON(http.StatusOK, user)
}

// RequireAuth rejects unauthenticated requests and rehydrates the full
// user record into the context for downstream handlers.
func (a *AuthModule) RequireAuth(c *gin.Context) {
	user := a.resolveUser(c)
	if user == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}
	c.Set("user", user)
	c.Next()
}

// RequireAdmin assumes RequireAuth ran first.
func (a *AuthModule) RequireAdmin(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil || !user.IsAdmin {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden - Admin access required"})
		return
	}
	c.Next()
}

func (a *AuthModule) resolveUser(c *gin.Context) *models.User {
	session := sessions.Default(c)
	raw := session.Get(userIDKey)
	if raw == nil {
		return nil
	}
	id, ok := raw.(int)
	if !ok {
		return nil
	}
	return a.store.GetUser(id)
}

// CurrentUser returns the user RequireAuth stored on the context, or
// nil when the request is unauthenticated.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get("user"); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}
