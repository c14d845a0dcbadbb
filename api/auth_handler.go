package api

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/rpupo63/blog-platform-backend/auth"
	"github.com/rpupo63/blog-platform-backend/database"
	"github.com/rpupo63/blog-platform-backend/errs"
	"github.com/rpupo63/blog-platform-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type authHandler struct {
	responder        Responder
	logger           zerolog.Logger
	userRepo         *database.UserRepo
	tokens           *auth.TokenService
	adminAccessToken string
}

func newAuthHandler(userRepo *database.UserRepo, tokens *auth.TokenService, adminAccessToken string) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder:        NewResponder(logger),
		logger:           logger,
		userRepo:         userRepo,
		tokens:           tokens,
		adminAccessToken: adminAccessToken,
	}
}

// roleFor grants admin only for an exact match of a configured access token
func (h authHandler) roleFor(presented string) models.Role {
	if h.adminAccessToken == "" || presented == "" {
		return models.RoleMember
	}
	if subtle.ConstantTimeCompare([]byte(presented), []byte(h.adminAccessToken)) == 1 {
		return models.RoleAdmin
	}
	return models.RoleMember
}

func (h authHandler) issue(user *models.User) (authResponse, error) {
	token, err := h.tokens.Generate(user.ID, string(user.Role))
	if err != nil {
		return authResponse{}, err
	}
	return authResponse{User: user, Token: token}, nil
}

// register creates an account and returns it with a token
// @Summary Register
// @Tags Auth
// @Accept json
// @Produce json
// @Param user body registerRequest true "Account data"
// @Success 201 {object} authResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Router /auth/register [post]
func (h authHandler) register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := decodeRequest(w, r, "registration", func(req *registerRequest) {
			req.Name = strings.TrimSpace(req.Name)
			req.Email = strings.ToLower(strings.TrimSpace(req.Email))
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if _, err := h.userRepo.FindByEmail(r.Context(), req.Email); err == nil {
			h.responder.WriteError(w, errs.NewAlreadyExists("user"))
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user := models.User{
			Name:            req.Name,
			Email:           req.Email,
			Password:        hash,
			Role:            h.roleFor(req.AdminAccessToken),
			ProfileImageURL: req.ProfileImageURL,
			Bio:             req.Bio,
		}
		if err := h.userRepo.Add(r.Context(), &user); err != nil {
			h.responder.WriteError(w, userCreateError(err))
			return
		}

		response, err := h.issue(&user)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Str("userID", user.ID.String()).Str("role", string(user.Role)).Msg("User registered")
		h.responder.WriteCreated(w, response)
	}
}

// login exchanges credentials for a token
// @Summary Login
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body loginRequest true "Email and password"
// @Success 200 {object} authResponse
// @Failure 401 {object} ErrorResponse "Wrong password"
// @Failure 404 {object} ErrorResponse "Unknown email"
// @Router /auth/login [post]
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := decodeRequest(w, r, "login", func(req *loginRequest) {
			req.Email = strings.ToLower(strings.TrimSpace(req.Email))
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user, err := h.userRepo.FindByEmail(r.Context(), req.Email)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.responder.WriteError(w, errs.NewNotFoundError("user not found"))
			return
		}
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		}

		if err := auth.ComparePassword(user.Password, req.Password); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		response, err := h.issue(user)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, response)
	}
}

func (h authHandler) profile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := ctxGetUser(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		h.responder.WriteJSON(w, user)
	}
}

// userCreateError reports a concurrent registration of the same email as a conflict
func userCreateError(cause error) error {
	err := wrapDatabaseError("create", "user", cause)
	if errs.IsUniqueConstraintViolationError(err) {
		return errs.NewAlreadyExists("user")
	}
	return err
}
