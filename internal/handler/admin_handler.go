package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/locale"
	"go.uber.org/zap"
)

const (
	sessionUserIDKey   = "user_id"
	sessionUsernameKey = "username"
)

// ShowLoginPage 渲染登录页面
func (a *API) ShowLoginPage(c *gin.Context) {
	if sessions.Default(c).Get(sessionUserIDKey) != nil {
		c.Redirect(http.StatusFound, "/admin")
		return
	}
	a.renderHTML(c, http.StatusOK, "login.html", gin.H{"titleKey": "adminLogin"})
}

// Login 校验用户名密码，失败次数按 IP 限流
func (a *API) Login(c *gin.Context) {
	lang := a.lang(c)
	ip := c.ClientIP()
	if !a.limiter.Check(ip) {
		a.renderHTML(c, http.StatusTooManyRequests, "login.html", gin.H{
			"titleKey": "adminLogin",
			"error":    locale.T(lang, "tooManyAttempts"),
		})
		return
	}

	username := c.PostForm("username")
	user, err := db.Authenticate(a.users, username, c.PostForm("password"))
	if err != nil {
		if !errors.Is(err, db.ErrInvalidCredentials) {
			c.Error(err)
		}
		a.limiter.Record(ip)
		a.logger.Warn("admin login failed", zap.String("ip", ip), zap.String("username", username))
		a.renderHTML(c, http.StatusUnauthorized, "login.html", gin.H{
			"titleKey": "adminLogin",
			"error":    locale.T(lang, "invalidLogin"),
			"username": username,
		})
		return
	}
	a.limiter.Reset(ip)

	session := sessions.Default(c)
	session.Set(sessionUserIDKey, user.ID)
	session.Set(sessionUsernameKey, user.Username)
	if err := session.Save(); err != nil {
		c.Error(err)
		a.renderHTML(c, http.StatusInternalServerError, "login.html", gin.H{
			"titleKey": "adminLogin",
			"error":    err.Error(),
		})
		return
	}

	c.Redirect(http.StatusFound, "/admin")
}

// Logout 清空会话
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		c.Error(err)
	}
	c.Redirect(http.StatusFound, "/admin/login")
}

// AuthRequired 未登录时页面跳转到登录页，JSON 接口返回 401
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if session.Get(sessionUserIDKey) == nil {
			if strings.HasPrefix(c.Request.URL.Path, "/admin/api/") {
				respondError(c, http.StatusUnauthorized, "unauthorized")
				c.Abort()
				return
			}
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func currentUsername(c *gin.Context) string {
	if value, ok := sessions.Default(c).Get(sessionUsernameKey).(string); ok {
		return value
	}
	return ""
}
