package api

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/fsdevblog/lms-backend/internal/domain"
	"github.com/fsdevblog/lms-backend/internal/service"
	"github.com/fsdevblog/lms-backend/internal/transport/api/middlewares"
	"github.com/fsdevblog/lms-backend/internal/uploads"
	"github.com/gin-gonic/gin"
)

type CookieConfig struct {
	MaxAge time.Duration
	Secure bool
}

type UserHandler struct {
	userService UserServicer
	avatars     AvatarStorer
	cookie      CookieConfig
}

func NewUserHandler(userService UserServicer, avatars AvatarStorer, cookie CookieConfig) *UserHandler {
	return &UserHandler{
		userService: userService,
		avatars:     avatars,
		cookie:      cookie,
	}
}

type UserRegisterParams struct {
	FullName string                `binding:"required,min=5,max=50"    form:"fullName" json:"fullName"`
	Email    string                `binding:"required,email,max=255"   form:"email"    json:"email"`
	Password string                `binding:"required,lms_password"    form:"password" json:"password"`
	Avatar   *multipart.FileHeader `form:"avatar"                      json:"-"`
}

// Register POST RouteGroup + RegisterRoute. Регистрирует пользователя и аутентифицирует его.
func (h *UserHandler) Register(c *gin.Context) {
	var params UserRegisterParams
	if bindErr := c.ShouldBind(&params); bindErr != nil {
		abortWithBindError(c, bindErr)
		return
	}

	avatarURL, ok := h.saveAvatar(c, params.Avatar)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	user, token, err := h.userService.Register(ctx, service.RegisterUserArgs{
		FullName:  params.FullName,
		Email:     params.Email,
		Password:  params.Password,
		AvatarURL: avatarURL,
	})
	if err != nil {
		h.removeAvatar(c, avatarURL)
		h.abortWithRegisterError(c, err)
		return
	}

	h.setTokenCookie(c, token)
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User registered successfully",
		"user":    newUserResponse(user),
	})
}

// QuickSignup POST QuickSignupRoute. Упрощенная регистрация: аватар обязателен, сессия не выдается.
func (h *UserHandler) QuickSignup(c *gin.Context) {
	fullName := c.PostForm("fullName")
	email := c.PostForm("email")
	password := c.PostForm("password")
	avatar, fileErr := c.FormFile("avatar")

	if fullName == "" || email == "" || password == "" || fileErr != nil {
		abortWithError(c, http.StatusBadRequest, errors.New("Please fill all details"), gin.ErrorTypePublic) //nolint:staticcheck
		return
	}

	avatarURL, ok := h.saveAvatar(c, avatar)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	user, _, err := h.userService.Register(ctx, service.RegisterUserArgs{
		FullName:  fullName,
		Email:     email,
		Password:  password,
		AvatarURL: avatarURL,
	})
	if err != nil {
		h.removeAvatar(c, avatarURL)
		h.abortWithRegisterError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Account created successfully",
		"data": gin.H{
			"fullName":  user.FullName,
			"email":     user.Email,
			"avatarUrl": user.AvatarURL,
		},
	})
}

type UserLoginParams struct {
	Email    string `binding:"required,email" json:"email"`
	Password string `binding:"required"       json:"password"`
}

// Login POST RouteGroup + LoginRoute. Аутентификация по паре email/пароль.
func (h *UserHandler) Login(c *gin.Context) {
	var params UserLoginParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		abortWithBindError(c, bindErr)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	user, token, err := h.userService.Login(ctx, service.LoginUserArgs{
		Email:    params.Email,
		Password: params.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) || errors.Is(err, domain.ErrPasswordMissMatch) {
			abortWithError(c, http.StatusUnauthorized,
				errors.New("Email or Password does not match"), gin.ErrorTypePublic) //nolint:staticcheck
			return
		}
		abortWithError(c, http.StatusInternalServerError, err, gin.ErrorTypePrivate)
		return
	}

	h.setTokenCookie(c, token)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User loggedin successfully",
		"user":    newUserResponse(user),
	})
}

// Logout POST RouteGroup + LogoutRoute. Удаляет cookie с токеном.
func (h *UserHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middlewares.TokenCookieName, "", -1, "/", "", h.cookie.Secure, true)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User logged out successfully",
	})
}

// Me GET RouteGroup + MeRoute. Профиль текущего юзера.
func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := middlewares.CurrentUserID(c)
	if !ok {
		abortWithError(c, http.StatusInternalServerError, errors.New("current user id not set"), gin.ErrorTypePrivate)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	user, err := h.userService.Profile(ctx, userID)
	if err != nil {
		h.abortWithUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User details",
		"user":    newUserResponse(user),
	})
}

type UserUpdateParams struct {
	FullName string                `binding:"omitempty,min=5,max=50" form:"fullName"`
	Avatar   *multipart.FileHeader `form:"avatar"`
}

// Update PUT RouteGroup + UpdateProfileRoute. Обновляет имя и/или аватар текущего юзера.
func (h *UserHandler) Update(c *gin.Context) {
	userID, ok := middlewares.CurrentUserID(c)
	if !ok {
		abortWithError(c, http.StatusInternalServerError, errors.New("current user id not set"), gin.ErrorTypePrivate)
		return
	}

	var params UserUpdateParams
	if bindErr := c.ShouldBind(&params); bindErr != nil {
		abortWithBindError(c, bindErr)
		return
	}
	if params.FullName == "" && params.Avatar == nil {
		abortWithError(c, http.StatusBadRequest, errors.New("Nothing to update"), gin.ErrorTypePublic) //nolint:staticcheck
		return
	}

	var args service.UpdateProfileArgs
	if params.FullName != "" {
		args.FullName = &params.FullName
	}
	if params.Avatar != nil {
		avatarURL, saved := h.saveAvatar(c, params.Avatar)
		if !saved {
			return
		}
		args.AvatarURL = &avatarURL
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	user, err := h.userService.UpdateProfile(ctx, userID, args)
	if err != nil {
		if args.AvatarURL != nil {
			h.removeAvatar(c, *args.AvatarURL)
		}
		h.abortWithUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User details updated successfully",
		"user":    newUserResponse(user),
	})
}

type ForgotPasswordParams struct {
	Email string `binding:"required,email" json:"email"`
}

// ForgotPassword POST RouteGroup + ForgotPasswordRoute. Отправляет ссылку на сброс пароля.
func (h *UserHandler) ForgotPassword(c *gin.Context) {
	var params ForgotPasswordParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		abortWithBindError(c, bindErr)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	if err := h.userService.ForgotPassword(ctx, params.Email); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			abortWithError(c, http.StatusBadRequest, errors.New("Email not registered"), gin.ErrorTypePublic) //nolint:staticcheck
			return
		}
		abortWithError(c, http.StatusInternalServerError, err, gin.ErrorTypePrivate)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Reset password token has been sent to " + params.Email + " successfully",
	})
}

type ResetPasswordParams struct {
	Password string `binding:"required,lms_password" json:"password"`
}

// ResetPassword POST RouteGroup + ResetPasswordRoute. Устанавливает новый пароль по токену из ссылки.
func (h *UserHandler) ResetPassword(c *gin.Context) {
	var params ResetPasswordParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		abortWithBindError(c, bindErr)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	if err := h.userService.ResetPassword(ctx, c.Param("resetToken"), params.Password); err != nil {
		if errors.Is(err, domain.ErrTokenInvalid) {
			abortWithError(c, http.StatusBadRequest,
				errors.New("Token is invalid or expired, please try again"), gin.ErrorTypePublic) //nolint:staticcheck
			return
		}
		abortWithError(c, http.StatusInternalServerError, err, gin.ErrorTypePrivate)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Password changed successfully",
	})
}

type ChangePasswordParams struct {
	OldPassword string `binding:"required"              json:"oldPassword"`
	NewPassword string `binding:"required,lms_password" json:"newPassword"`
}

// ChangePassword POST RouteGroup + ChangePasswordRoute. Смена пароля текущего юзера.
func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID, ok := middlewares.CurrentUserID(c)
	if !ok {
		abortWithError(c, http.StatusInternalServerError, errors.New("current user id not set"), gin.ErrorTypePrivate)
		return
	}

	var params ChangePasswordParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		abortWithBindError(c, bindErr)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	if err := h.userService.ChangePassword(ctx, userID, params.OldPassword, params.NewPassword); err != nil {
		if errors.Is(err, domain.ErrPasswordMissMatch) {
			abortWithError(c, http.StatusBadRequest, errors.New("Invalid old password"), gin.ErrorTypePublic) //nolint:staticcheck
			return
		}
		h.abortWithUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Password changed successfully",
	})
}

// saveAvatar сохраняет аватар, если он передан. При ошибке прерывает запрос и возвращает false.
func (h *UserHandler) saveAvatar(c *gin.Context, fh *multipart.FileHeader) (string, bool) {
	if fh == nil {
		return "", true
	}
	url, err := h.avatars.SaveAvatar(fh)
	switch {
	case err == nil:
		return url, true
	case errors.Is(err, uploads.ErrUnsupportedType):
		abortWithError(c, http.StatusBadRequest, errors.New("Avatar must be an image"), gin.ErrorTypePublic) //nolint:staticcheck
	case errors.Is(err, uploads.ErrTooLarge):
		abortWithError(c, http.StatusRequestEntityTooLarge, errors.New("Avatar is too large"), gin.ErrorTypePublic) //nolint:staticcheck
	default:
		abortWithError(c, http.StatusInternalServerError, err, gin.ErrorTypePrivate)
	}
	return "", false
}

func (h *UserHandler) removeAvatar(c *gin.Context, url string) {
	if url == "" {
		return
	}
	if err := h.avatars.Remove(url); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypePrivate)
	}
}

func (h *UserHandler) abortWithRegisterError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrDuplicateKey) {
		abortWithError(c, http.StatusConflict, errors.New("Email already exists"), gin.ErrorTypePublic) //nolint:staticcheck
		return
	}
	abortWithError(c, http.StatusInternalServerError, err, gin.ErrorTypePrivate)
}

func (h *UserHandler) abortWithUserError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrRecordNotFound) {
		abortWithError(c, http.StatusNotFound, errors.New("User not found"), gin.ErrorTypePublic) //nolint:staticcheck
		return
	}
	abortWithError(c, http.StatusInternalServerError, err, gin.ErrorTypePrivate)
}

// setTokenCookie выдает токен и в httpOnly cookie, и в заголовке Authorization.
func (h *UserHandler) setTokenCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middlewares.TokenCookieName, token, int(h.cookie.MaxAge.Seconds()), "/", "", h.cookie.Secure, true)
	c.Header("Authorization", "Bearer "+token)
}
