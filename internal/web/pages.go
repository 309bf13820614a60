package web

import (
	"encoding/json"
	"html/template"
	"net/http"
	"strconv"

	"gym_backend/internal/dto"
	"gym_backend/internal/events"
	"gym_backend/internal/handlers"
	"gym_backend/internal/logger"
	"gym_backend/internal/services"
	"gym_backend/internal/validator"
	"gym_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
)

// Pages - серверные страницы /ui. Данные берутся из тех же сервисов,
// что и REST API; сессия передается каждой странице аргументом.
type Pages struct {
	*handlers.BaseHandler
	services  *services.ServiceContainer
	sessions  *SessionStore
	validator *validator.Validator
	templates map[string]*template.Template
}

func NewPages(base *handlers.BaseHandler, svc *services.ServiceContainer, sessions *SessionStore, v *validator.Validator) (*Pages, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	return &Pages{
		BaseHandler: base,
		services:    svc,
		sessions:    sessions,
		validator:   v,
		templates:   tmpl,
	}, nil
}

type pageFunc func(c *gin.Context, s *Session)

const maxFormMemory = 8 << 20

// pageEntities - события /ws, после которых страница перезагружает список
var pageEntities = map[string]events.Entity{
	"dashboard":   events.EntitySubscription,
	"members":     events.EntityMember,
	"equipment":   events.EntityEquipment,
	"trainers":    events.EntityTrainer,
	"memberships": events.EntityMembership,
	"finance":     events.EntityTransaction,
}

func (p *Pages) RegisterRoutes(r *gin.Engine) {
	ui := r.Group("/ui")
	ui.GET("/login", p.LoginForm)
	ui.POST("/login", p.Login)
	ui.POST("/logout", p.Logout)

	pages := ui.Group("", p.sessions.RequireSession())
	{
		pages.GET("/", p.page(p.Dashboard))
		pages.GET("/reports/:kind", p.page(p.Report))

		pages.GET("/members", p.page(p.Members))
		pages.POST("/members", p.page(p.CreateMember))
		pages.GET("/members/:id", p.page(p.MemberDetail))
		pages.POST("/members/:id", p.page(p.UpdateMember))
		pages.POST("/members/:id/delete", p.page(p.DeleteMember))

		pages.GET("/equipment", p.page(p.Equipment))
		pages.POST("/equipment", p.page(p.CreateEquipment))
		pages.GET("/equipment/:id", p.page(p.EquipmentDetail))
		pages.POST("/equipment/:id", p.page(p.UpdateEquipment))
		pages.POST("/equipment/:id/delete", p.page(p.DeleteEquipment))

		pages.GET("/trainers", p.page(p.Trainers))
		pages.POST("/trainers", p.page(p.CreateTrainer))
		pages.GET("/trainers/:id", p.page(p.TrainerDetail))
		pages.POST("/trainers/:id", p.page(p.UpdateTrainer))
		pages.POST("/trainers/:id/delete", p.page(p.DeleteTrainer))

		pages.GET("/memberships", p.page(p.Memberships))
		pages.POST("/memberships", p.page(p.CreateMembership))
		pages.POST("/memberships/:id/delete", p.page(p.DeleteMembership))

		pages.GET("/finance", p.page(p.Finance))
		pages.POST("/finance", p.page(p.CreateTransaction))
		pages.POST("/finance/:id/delete", p.page(p.DeleteTransaction))
	}
}

func (p *Pages) page(fn pageFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := sessionFrom(c)
		if s == nil {
			c.Redirect(http.StatusSeeOther, "/ui/login")
			return
		}
		fn(c, s)
	}
}

// render выводит страницу в layout; data дополняется сессией
func (p *Pages) render(c *gin.Context, status int, name string, s *Session, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Session"] = s
	data["Nav"] = name
	if entity, ok := pageEntities[name]; ok {
		data["Entity"] = entity
	}
	c.Render(status, render.HTML{
		Template: p.templates[name],
		Name:     "layout",
		Data:     data,
	})
}

// errorMessage - текст баннера; внутренние ошибки не раскрываются
func errorMessage(c *gin.Context, err error) string {
	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) && appErr.HTTPCode < http.StatusInternalServerError {
		return appErr.Message
	}
	logger.CtxWithError(c.Request.Context(), "Page data error", err, "path", c.Request.URL.Path)
	return "Не удалось загрузить данные. Попробуйте позже."
}

func errorStatus(err error) int {
	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		return appErr.HTTPCode
	}
	return http.StatusInternalServerError
}

// bindForm привязывает форму и проверяет ее тем же валидатором, что и API
func (p *Pages) bindForm(c *gin.Context, obj interface{}, prepare func()) error {
	if err := c.ShouldBind(obj); err != nil {
		return apperrors.NewBadRequestError("Некорректные данные формы")
	}
	if prepare != nil {
		prepare()
	}
	if err := p.validator.Validate(obj); err != nil {
		if vErr, ok := err.(*validator.ValidationError); ok {
			return apperrors.ValidationError(vErr.Summary(), vErr.Errors)
		}
		return err
	}
	return nil
}

// formPatch - поля формы редактирования через allow-list API.
// Зал из формы не меняется; фото берется только из загруженного файла.
func (p *Pages) formPatch(c *gin.Context, allow dto.AllowList) (dto.Patch, error) {
	if err := c.Request.ParseMultipartForm(maxFormMemory); err != nil && err != http.ErrNotMultipart {
		return nil, apperrors.NewBadRequestError("Некорректные данные формы")
	}
	raw := dto.RawFromForm(c.Request.PostForm)
	delete(raw, "gymId")
	delete(raw, "profilePic")

	if _, ok := allow["profilePic"]; ok {
		url, err := p.formAvatar(c)
		if err != nil {
			return nil, err
		}
		if url != "" {
			b, _ := json.Marshal(url)
			raw["profilePic"] = b
		}
	}
	return allow.Build(raw)
}

// formAvatar сохраняет файл из поля profilePic; без файла - ""
func (p *Pages) formAvatar(c *gin.Context) (string, error) {
	file, err := c.FormFile("profilePic")
	if err != nil {
		return "", nil
	}
	return p.services.UploadService.SaveAvatar(c.Request.Context(), file)
}

func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil {
		return 1
	}
	return page
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// ---------------------------------------------------------------------------
// Вход
// ---------------------------------------------------------------------------

func (p *Pages) LoginForm(c *gin.Context) {
	if _, err := p.sessions.Load(c); err == nil {
		c.Redirect(http.StatusSeeOther, "/ui/")
		return
	}
	p.render(c, http.StatusOK, "login", nil, gin.H{"Email": ""})
}

func (p *Pages) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := p.bindForm(c, &req, nil); err != nil {
		p.render(c, http.StatusBadRequest, "login", nil, gin.H{"Error": errorMessage(c, err), "Email": req.Email})
		return
	}

	resp, err := p.services.AuthService.Login(p.GetDB(c), &req)
	if err != nil {
		p.render(c, errorStatus(err), "login", nil, gin.H{"Error": errorMessage(c, err), "Email": req.Email})
		return
	}

	if err := p.sessions.Save(c, Session{Token: resp.Token, GymID: resp.GymID}); err != nil {
		p.render(c, http.StatusInternalServerError, "login", nil, gin.H{"Error": errorMessage(c, err), "Email": req.Email})
		return
	}
	c.Redirect(http.StatusSeeOther, "/ui/")
}

func (p *Pages) Logout(c *gin.Context) {
	p.sessions.Clear(c)
	c.Redirect(http.StatusSeeOther, "/ui/login")
}

// ---------------------------------------------------------------------------
// Дашборд и отчеты
// ---------------------------------------------------------------------------

// Dashboard - карточки отчетов; выбранный отчет передается в URL
func (p *Pages) Dashboard(c *gin.Context, s *Session) {
	cards, err := p.services.ReportService.Dashboard(p.GetDB(c), s.GymFilter())
	if err != nil {
		p.render(c, http.StatusOK, "dashboard", s, gin.H{"Error": errorMessage(c, err), "Cards": []dto.ReportCard{}})
		return
	}
	p.render(c, http.StatusOK, "dashboard", s, gin.H{"Cards": cards})
}

func (p *Pages) Report(c *gin.Context, s *Session) {
	kind := dto.ReportKind(c.Param("kind"))
	if !kind.Valid() {
		p.render(c, http.StatusBadRequest, "report", s, gin.H{
			"Error": apperrors.ErrInvalidReportKind.Message,
			"Title": "Отчет",
			"List":  NewListView([]dto.MemberResponse{}, 1, "", memberText),
		})
		return
	}

	data := gin.H{"Title": kind.Title(), "Kind": kind}
	report, err := p.services.ReportService.Report(p.GetDB(c), kind, s.GymFilter())
	if err != nil {
		data["Error"] = errorMessage(c, err)
		data["List"] = NewListView([]dto.MemberResponse{}, 1, "", memberText)
		p.render(c, http.StatusOK, "report", s, data)
		return
	}
	data["List"] = NewListView(report.Members, pageParam(c), c.Query("q"), memberText)
	p.render(c, http.StatusOK, "report", s, data)
}
