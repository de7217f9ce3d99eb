package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	userRepo  *database.UserRepo
	tokens    tokens
}

func newAuthHandler(userRepo *database.UserRepo, t tokens) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		userRepo:  userRepo,
		tokens:    t,
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
}

// login exchanges admin credentials for an access token
// @Summary Log in
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Email and password"
// @Success 200 {object} LoginResponse
// @Failure 401 {object} ErrorResponse "Invalid credentials"
// @Router /api/auth/login [post]
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		v := errs.ValidationErrors{}
		if strings.TrimSpace(req.Email) == "" {
			v.Add("email", "The email field is required.")
		}
		if req.Password == "" {
			v.Add("password", "The password field is required.")
		}
		if err := v.OrNil(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user, err := h.userRepo.FindByEmail(r.Context(), req.Email)
		if err != nil {
			if database.IsNotFound(err) {
				// unknown emails take as long as wrong passwords
				_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(req.Password))
				h.responder.WriteError(w, errs.NewInvalidCredentialsError())
				return
			}
			h.responder.WriteError(w, errs.NewDatabaseError("find", "user", err))
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			h.logger.Warn().Str("user_id", user.ID.String()).Msg("Failed login attempt")
			h.responder.WriteError(w, errs.NewInvalidCredentialsError())
			return
		}

		token, expires, err := h.tokens.issue(user.ID)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("could not issue token", err))
			return
		}

		h.logger.Info().Str("user_id", user.ID.String()).Msg("User logged in")
		h.responder.WriteJSON(w, LoginResponse{Token: token, ExpiresAt: expires, User: user})
	}
}

// me returns the authenticated user
// @Summary Current user
// @Tags Auth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} ErrorResponse
// @Router /api/auth/me [get]
func (h authHandler) me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		user, err := h.userRepo.FindByID(r.Context(), userID)
		if err != nil {
			if database.IsNotFound(err) {
				// Token for a user that no longer exists
				h.responder.WriteError(w, errs.NewInvalidTokenError())
				return
			}
			h.responder.WriteError(w, errs.NewDatabaseError("find", "user", err))
			return
		}
		h.responder.WriteJSON(w, user)
	}
}

var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)
