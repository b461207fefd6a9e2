// Package account implements the pages to register, log in and log out.
package account

import (
	"errors"
	"net/http"

	"github.com/expense-tracker/backend/internal/auth"
	"github.com/expense-tracker/backend/internal/httputil"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/expense-tracker/backend/internal/validation"
	"github.com/expense-tracker/backend/internal/views"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"gorm.io/gorm"
)

// RegisterForm is submitted to create an account.
type RegisterForm struct {
	Username  string `form:"username" binding:"required,notblank,min=3,max=64"`
	Email     string `form:"email" binding:"required,email,max=120"`
	Password  string `form:"password" binding:"required,min=6"`
	Password2 string `form:"password2" binding:"required,eqfield=Password"`
}

// LoginForm is submitted to log in.
type LoginForm struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

type registerPage struct {
	Form   RegisterForm
	Errors map[string]string
}

type loginPage struct {
	Form   LoginForm
	Errors map[string]string
	Next   string
}

func RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", GetWelcome)
	r.GET("/logout", GetLogout)
	r.OPTIONS("/register", httputil.OptionsGetPost)
	r.OPTIONS("/login", httputil.OptionsGetPost)

	anonymous := r.Group("", auth.Anonymous())
	{
		anonymous.GET("/register", GetRegister)
		anonymous.POST("/register", PostRegister)
		anonymous.GET("/login", GetLogin)
		anonymous.POST("/login", PostLogin)
	}
}

// GetWelcome shows the start page. Logged in users go to their dashboard.
func GetWelcome(c *gin.Context) {
	if _, ok := auth.User(c); ok {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}

	views.Render(c, http.StatusOK, "welcome.html", views.Page{Title: "Welcome"})
}

func GetRegister(c *gin.Context) {
	views.Render(c, http.StatusOK, "register.html", views.Page{
		Title: "Register",
		Data:  registerPage{},
	})
}

func PostRegister(c *gin.Context) {
	var form RegisterForm
	page := registerPage{Errors: map[string]string{}}

	render := func(status int) {
		// Never send passwords back
		form.Password, form.Password2 = "", ""
		page.Form = form
		views.Render(c, status, "register.html", views.Page{Title: "Register", Data: page})
	}

	if err := c.ShouldBindWith(&form, binding.Form); err != nil {
		page.Errors = validation.Messages(err)
		render(http.StatusBadRequest)
		return
	}

	taken, err := models.UsernameTaken(models.DB, form.Username)
	if err != nil {
		views.Error(c, err)
		return
	}
	if taken {
		page.Errors["username"] = models.ErrUsernameNotUnique.Error()
	}

	taken, err = models.EmailTaken(models.DB, form.Email)
	if err != nil {
		views.Error(c, err)
		return
	}
	if taken {
		page.Errors["email"] = models.ErrEmailNotUnique.Error()
	}

	if len(page.Errors) > 0 {
		render(http.StatusBadRequest)
		return
	}

	user := models.User{Username: form.Username, Email: form.Email}
	if err := user.SetPassword(form.Password); err != nil {
		views.Error(c, err)
		return
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&user).Error
	})

	// A concurrent registration can still claim the name or email
	switch {
	case errors.Is(err, models.ErrUsernameNotUnique):
		page.Errors["username"] = err.Error()
		render(http.StatusBadRequest)
		return
	case errors.Is(err, models.ErrEmailNotUnique):
		page.Errors["email"] = err.Error()
		render(http.StatusBadRequest)
		return
	case err != nil:
		views.Error(c, err)
		return
	}

	httputil.AddFlash(c, httputil.FlashSuccess, "Your account has been created! You can now log in.")
	c.Redirect(http.StatusFound, "/login")
}

func GetLogin(c *gin.Context) {
	views.Render(c, http.StatusOK, "login.html", views.Page{
		Title: "Login",
		Data:  loginPage{Next: c.Query("next")},
	})
}

func PostLogin(c *gin.Context) {
	var form LoginForm
	page := loginPage{Next: c.Query("next")}

	render := func(status int) {
		form.Password = ""
		page.Form = form
		views.Render(c, status, "login.html", views.Page{Title: "Login", Data: page})
	}

	if err := c.ShouldBindWith(&form, binding.Form); err != nil {
		page.Errors = validation.Messages(err)
		render(http.StatusBadRequest)
		return
	}

	user, err := models.UserByEmail(models.DB, form.Email)
	if err != nil && !errors.Is(err, models.ErrResourceNotFound) {
		views.Error(c, err)
		return
	}

	if err != nil || !user.CheckPassword(form.Password) {
		httputil.AddFlash(c, httputil.FlashDanger, "Login unsuccessful. Please check your email and password.")
		render(http.StatusUnauthorized)
		return
	}

	if _, err := auth.Login(c, user); err != nil {
		views.Error(c, err)
		return
	}

	httputil.AddFlash(c, httputil.FlashSuccess, "Welcome back, "+user.Username+"!")
	c.Redirect(http.StatusFound, httputil.LocalPath(page.Next, "/dashboard"))
}

func GetLogout(c *gin.Context) {
	if err := auth.Logout(c); err != nil {
		views.Error(c, err)
		return
	}

	httputil.AddFlash(c, httputil.FlashInfo, "You have been logged out.")
	c.Redirect(http.StatusFound, "/")
}
