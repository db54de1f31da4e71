package handlers

import (
	"errors"
	"net/http"

	"job-tracker/internal/middleware"
	"job-tracker/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ShowRegister(c *gin.Context) {
	render(c, http.StatusOK, "register.html", gin.H{"error": ""})
}

type registerForm struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required,min=6"`
	Name     string `form:"name" binding:"required"`
	CityFrom string `form:"city_from" binding:"required"`
}

func (h *Handler) Register(c *gin.Context) {
	var form registerForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusBadRequest, "register.html", gin.H{
			"error": "Заполните все поля: корректный email и пароль не короче 6 символов",
			"form":  form,
		})
		return
	}

	_, err := h.users.Create(c.Request.Context(), nil, services.UserInput{
		Email:    &form.Email,
		Password: &form.Password,
		Name:     &form.Name,
		CityFrom: &form.CityFrom,
	})
	if err != nil {
		msg := "Ошибка сохранения пользователя"
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			msg = "Пользователь с таким email уже существует."
		case services.KindOf(err) == services.KindBadRequest:
			msg = services.PublicMessage(err)
		default:
			reportInternal(c, err)
		}
		render(c, statusFor(services.KindOf(err)), "register.html", gin.H{"error": msg, "form": form})
		return
	}

	redirectWithFlash(c, "/login", "Вы успешно зарегистрировались!")
}

func (h *Handler) ShowLogin(c *gin.Context) {
	render(c, http.StatusOK, "login.html", gin.H{"error": ""})
}

type loginForm struct {
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusBadRequest, "login.html", gin.H{"error": "Некорректные данные"})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), form.Email, form.Password)
	if err != nil {
		if services.KindOf(err) == services.KindInternal {
			reportInternal(c, err)
		}
		// одно сообщение и для неизвестного email, и для неверного пароля
		render(c, http.StatusBadRequest, "login.html", gin.H{"error": "Неправильный логин или пароль."})
		return
	}

	if err := middleware.Login(c, user); err != nil {
		reportInternal(c, err)
		render(c, http.StatusInternalServerError, "login.html", gin.H{"error": "Не удалось создать сессию"})
		return
	}

	redirectWithFlash(c, "/", "Вы успешно вошли!")
}

func (h *Handler) Logout(c *gin.Context) {
	_ = middleware.Logout(c)
	c.Redirect(http.StatusFound, "/login")
}
