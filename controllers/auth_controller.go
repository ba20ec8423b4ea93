package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yatube/yatube/middleware"
	"github.com/yatube/yatube/models"
	"github.com/yatube/yatube/utils"
)

// sessionDuration bounds how long a session cookie stays valid.
const sessionDuration = 14 * 24 * time.Hour

// AuthController handles signup, login and logout.
type AuthController struct {
	db *gorm.DB
}

// NewAuthController creates a new AuthController instance.
func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{db: db}
}

// SignupForm carries the submitted registration fields.
type SignupForm struct {
	Username string
	Errors   map[string]string
}

// SignupPage shows the registration form.
func (a *AuthController) SignupPage(ctx *gin.Context) {
	render(ctx, http.StatusOK, "signup.html", gin.H{
		"Form":      &SignupForm{Errors: map[string]string{}},
		"CSRFToken": csrfToken(ctx),
	})
}

// Signup registers a new user, logs them in and redirects to the index.
func (a *AuthController) Signup(ctx *gin.Context) {
	form := &SignupForm{
		Username: strings.TrimSpace(ctx.PostForm("username")),
		Errors:   map[string]string{},
	}
	password := ctx.PostForm("password")

	if form.Username == "" {
		form.Errors["username"] = "Укажите имя пользователя"
	}
	if password == "" {
		form.Errors["password"] = "Укажите пароль"
	}
	if form.Username != "" {
		var existing models.User
		if err := a.db.Where("username = ?", form.Username).First(&existing).Error; err == nil {
			form.Errors["username"] = "Имя пользователя уже занято"
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			serverError(ctx, err)
			return
		}
	}
	if len(form.Errors) > 0 {
		render(ctx, http.StatusOK, "signup.html", gin.H{"Form": form, "CSRFToken": csrfToken(ctx)})
		return
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		serverError(ctx, err)
		return
	}
	user := models.User{Username: form.Username, PasswordHash: hash}
	if err := a.db.Create(&user).Error; err != nil {
		// Unique index race: someone grabbed the name between check and insert.
		form.Errors["username"] = "Имя пользователя уже занято"
		render(ctx, http.StatusOK, "signup.html", gin.H{"Form": form, "CSRFToken": csrfToken(ctx)})
		return
	}

	if err := a.startSession(ctx, user); err != nil {
		serverError(ctx, err)
		return
	}
	ctx.Redirect(http.StatusFound, "/")
}

// LoginPage shows the login form, keeping the next parameter for the
// post-login redirect.
func (a *AuthController) LoginPage(ctx *gin.Context) {
	render(ctx, http.StatusOK, "login.html", gin.H{
		"Next":      safeNext(ctx.Query("next")),
		"CSRFToken": csrfToken(ctx),
	})
}

// Login verifies credentials, starts a session and redirects to next.
func (a *AuthController) Login(ctx *gin.Context) {
	username := strings.TrimSpace(ctx.PostForm("username"))
	password := ctx.PostForm("password")
	next := safeNext(ctx.PostForm("next"))

	var user models.User
	err := a.db.Where("username = ?", username).First(&user).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		serverError(ctx, err)
		return
	}
	if err != nil || !utils.CheckPassword(user.PasswordHash, password) {
		render(ctx, http.StatusOK, "login.html", gin.H{
			"Error":     "Неверное имя пользователя или пароль",
			"Username":  username,
			"Next":      next,
			"CSRFToken": csrfToken(ctx),
		})
		return
	}

	if err := a.startSession(ctx, user); err != nil {
		serverError(ctx, err)
		return
	}
	ctx.Redirect(http.StatusFound, next)
}

// Logout revokes the current session token, clears the cookie and returns
// to the index.
func (a *AuthController) Logout(ctx *gin.Context) {
	if token, err := ctx.Cookie(middleware.SessionCookieName); err == nil && token != "" {
		if claims, err := utils.ParseToken(token); err == nil && claims.ExpiresAt != nil {
			utils.BlacklistToken(token, claims.ExpiresAt.Time)
		}
	}
	ctx.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
	ctx.Redirect(http.StatusFound, "/")
}

func (a *AuthController) startSession(ctx *gin.Context, user models.User) error {
	token, err := utils.GenerateToken(user.ID, user.Username, sessionDuration)
	if err != nil {
		return err
	}
	ctx.SetCookie(middleware.SessionCookieName, token, int(sessionDuration.Seconds()), "/", "", false, true)
	return nil
}
