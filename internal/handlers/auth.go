package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mydayflow/MyDayFlow-BE/internal/pkg/httpx"
	"github.com/mydayflow/MyDayFlow-BE/internal/service"
	"github.com/mydayflow/MyDayFlow-BE/pkg/webutil"
)

type Auth struct {
	users  *service.UserService
	secret string
}

func NewAuth(users *service.UserService, secret string) *Auth {
	return &Auth{users: users, secret: secret}
}

type GuestLoginResp struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// GuestLogin POST /guest-login
// 访客 cookie 换 JWT；第一次见到这个访客就建号并装默认分类
func (h *Auth) GuestLogin(c *gin.Context) {
	vid, ok := visitorID(c)
	if !ok {
		return
	}
	user, err := h.users.EnsureUser(c.Request.Context(), vid)
	if err != nil {
		fail(c, err)
		return
	}
	token, err := webutil.SignGuestToken(h.secret, vid)
	if err != nil {
		httpx.Err(c, http.StatusInternalServerError, "token error")
		return
	}
	httpx.OK(c, GuestLoginResp{Token: token, Username: user.Username})
}

// Me GET /me 仅用于校验/拿 visitorId
func (h *Auth) Me(c *gin.Context) {
	vid, ok := visitorID(c)
	if !ok {
		return
	}
	httpx.OK(c, gin.H{"visitor_id": vid})
}
