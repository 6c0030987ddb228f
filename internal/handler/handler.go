package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/workhive/backend/internal/config"
	"github.com/workhive/backend/internal/domain"
	"github.com/workhive/backend/internal/repository"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	en := en.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// everything below requires a logged-in user
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.With(h.RequiredRole([]domain.Role{domain.RoleProfessional})).Get("/employee", h.GetMyEmployeeRecord)
			r.Patch("/", h.UpdateMyProfile)
			r.Patch("/password", h.UpdateMyPassword)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", h.ListUsers)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.Get("/", h.GetUserInfo)
				r.Group(func(r chi.Router) {
					r.Use(h.myInfo)
					r.Post("/follow", h.FollowUser)
					r.Delete("/follow", h.UnfollowUser)
					r.Post("/evaluations", h.CreateEvaluation)
				})
				r.Get("/evaluations", h.ListEvaluations)
			})
		})

		r.Route("/projects", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Post("/", h.CreateProject)
			r.Get("/", h.ListMyProjects)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.projectRecord)
				r.Get("/", h.GetProject)
				r.Patch("/", h.UpdateProject)
				r.Patch("/status", h.UpdateProjectStatus)
				r.Post("/participants", h.AddParticipant)
				r.Post("/employees", h.AssignEmployee)
				r.Delete("/employees/{employeeID}", h.RemoveEmployee)
			})
		})

		r.Route("/employees", func(r chi.Router) {
			r.Use(h.myInfo)
			r.With(h.RequiredRole([]domain.Role{domain.RoleCompany})).Get("/", h.ListCompanyEmployees)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.employeeRecord)
				r.Get("/", h.GetEmployee)
				r.Patch("/status", h.UpdateEmployeeStatus)
				r.Get("/current-project", h.GetEmployeeCurrentProject)
				r.Get("/history", h.GetEmployeeHistory)
				r.With(h.RequiredRole([]domain.Role{domain.RoleCompany})).Delete("/link", h.UnlinkEmployee)
			})
		})

		r.Route("/invitations", func(r chi.Router) {
			r.Use(h.myInfo)
			r.With(h.RequiredRole([]domain.Role{domain.RoleCompany})).Post("/", h.CreateInvitation)
			r.Get("/", h.ListInvitations)
			r.With(h.RequiredRole([]domain.Role{domain.RoleProfessional})).Post("/{id}/respond", h.RespondInvitation)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.ListNotifications)
			r.Patch("/{id}/read", h.MarkNotificationRead)
		})

		r.Route("/vehicles", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Use(h.RequiredRole([]domain.Role{domain.RoleCompany}))
			r.Post("/", h.CreateVehicle)
			r.Get("/", h.ListVehicles)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.vehicleRecord)
				r.Get("/", h.GetVehicle)
				r.Patch("/", h.UpdateVehicle)
				r.Delete("/", h.DeleteVehicle)
				r.Post("/assign", h.AssignVehicle)
				r.Post("/release", h.ReleaseVehicle)
			})
		})
	})
}
