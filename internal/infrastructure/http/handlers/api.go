// Package handlers provides HTTP handlers for the REST API
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/proteinempire/ingredients/internal/domain/ingredient"
	"github.com/proteinempire/ingredients/internal/infrastructure/config"
	"github.com/proteinempire/ingredients/internal/ports/inbound"
	"github.com/proteinempire/ingredients/pkg/errors"
)

// APIHandlers handles REST API requests
type APIHandlers struct {
	service  inbound.SubstitutionService
	catalog  *ingredient.Catalog
	config   *config.Config
	validate *validator.Validate
	logger   *zap.Logger
}

// NewAPIHandlers creates a new API handlers instance
func NewAPIHandlers(
	service inbound.SubstitutionService,
	catalog *ingredient.Catalog,
	cfg *config.Config,
	logger *zap.Logger,
) *APIHandlers {
	return &APIHandlers{
		service:  service,
		catalog:  catalog,
		config:   cfg,
		validate: validator.New(),
		logger:   logger,
	}
}

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// CreateSessionRequest is the payload for POST /api/v1/sessions. Missing
// yield, serving size, and macros fall back to engine defaults; only
// structurally invalid values are rejected.
type CreateSessionRequest struct {
	RecipeID    string  `json:"recipeId"`
	Yield       int     `json:"yield" validate:"omitempty,gte=0"`
	ServingSize float64 `json:"servingSize" validate:"omitempty,gte=0"`
	Ingredients []struct {
		ID            string  `json:"id" validate:"required"`
		Name          string  `json:"name"`
		Amount        float64 `json:"amount" validate:"gte=0"`
		Unit          string  `json:"unit"`
		DisplayAmount string  `json:"displayAmount"`
	} `json:"ingredients" validate:"dive"`
	BaseNutrition struct {
		Calories float64 `json:"calories" validate:"gte=0"`
		Protein  float64 `json:"protein" validate:"gte=0"`
		Fat      float64 `json:"fat" validate:"gte=0"`
		Carbs    float64 `json:"carbs" validate:"gte=0"`
		Fiber    float64 `json:"fiber" validate:"gte=0"`
		Sugar    float64 `json:"sugar" validate:"gte=0"`
	} `json:"baseNutrition"`
}

// SelectSubstituteRequest is the payload for the substitutions endpoint
type SelectSubstituteRequest struct {
	OriginalID string `json:"originalId" validate:"required"`
	NewID      string `json:"newId" validate:"required"`
}

// RevertRequest is the payload for the revert endpoint
type RevertRequest struct {
	OriginalID string `json:"originalId" validate:"required"`
}

// TogglePickerRequest is the payload for the picker endpoint
type TogglePickerRequest struct {
	IngredientID string `json:"ingredientId" validate:"required"`
}

// CreateSession handles POST /api/v1/sessions
func (h *APIHandlers) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	cmd := inbound.CreateSessionCommand{
		RecipeID:    req.RecipeID,
		Yield:       req.Yield,
		ServingSize: req.ServingSize,
		BaseNutrition: inbound.NutritionInput{
			Calories: req.BaseNutrition.Calories,
			Protein:  req.BaseNutrition.Protein,
			Fat:      req.BaseNutrition.Fat,
			Carbs:    req.BaseNutrition.Carbs,
			Fiber:    req.BaseNutrition.Fiber,
			Sugar:    req.BaseNutrition.Sugar,
		},
	}
	for _, in := range req.Ingredients {
		cmd.Ingredients = append(cmd.Ingredients, inbound.IngredientLineInput{
			ID:            in.ID,
			Name:          in.Name,
			Amount:        in.Amount,
			Unit:          in.Unit,
			DisplayAmount: in.DisplayAmount,
		})
	}

	view, err := h.service.CreateSession(r.Context(), cmd)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, APIResponse{
		Success: true,
		Data:    view,
		Message: "Session created successfully",
	})
}

// GetSession handles GET /api/v1/sessions/{id}
func (h *APIHandlers) GetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	view, err := h.service.GetSession(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: view})
}

// SelectSubstitute handles POST /api/v1/sessions/{id}/substitutions
func (h *APIHandlers) SelectSubstitute(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	var req SelectSubstituteRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	view, err := h.service.SelectSubstitute(r.Context(), id, req.OriginalID, req.NewID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: view})
}

// RevertIngredient handles POST /api/v1/sessions/{id}/revert
func (h *APIHandlers) RevertIngredient(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	var req RevertRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	view, err := h.service.RevertIngredient(r.Context(), id, req.OriginalID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: view})
}

// ResetSession handles POST /api/v1/sessions/{id}/reset
func (h *APIHandlers) ResetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	view, err := h.service.ResetSession(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: view})
}

// TogglePicker handles POST /api/v1/sessions/{id}/picker
func (h *APIHandlers) TogglePicker(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	var req TogglePickerRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	view, err := h.service.TogglePicker(r.Context(), id, req.IngredientID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: view})
}

// DeleteSession handles DELETE /api/v1/sessions/{id}
func (h *APIHandlers) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteSession(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Message: "Session deleted successfully",
	})
}

// ingredientResponse adds the catalog key to the ingredient payload
type ingredientResponse struct {
	ID string `json:"id"`
	ingredient.Ingredient
}

// GetIngredient handles GET /api/v1/ingredients/{id}
func (h *APIHandlers) GetIngredient(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ing, ok := h.catalog.Ingredient(id)
	if !ok {
		h.writeError(w, r, errors.NewIngredientNotFoundError(id))
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    ingredientResponse{ID: ing.ID, Ingredient: ing},
	})
}

// GetSubstitutes handles GET /api/v1/ingredients/{id}/substitutes
func (h *APIHandlers) GetSubstitutes(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, ok := h.catalog.Ingredient(id); !ok {
		h.writeError(w, r, errors.NewIngredientNotFoundError(id))
		return
	}

	subs := h.catalog.Substitutes(id)
	if subs == nil {
		subs = []ingredient.Substitute{}
	}

	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: subs})
}

// ListGroups handles GET /api/v1/groups
func (h *APIHandlers) ListGroups(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    map[string]interface{}{"groups": h.catalog.GroupNames()},
	})
}

// GetGroup handles GET /api/v1/groups/{name}
func (h *APIHandlers) GetGroup(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	members := h.catalog.Group(name)
	if members == nil {
		h.writeError(w, r, errors.NewGroupNotFoundError(name))
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"name":        name,
			"ingredients": members,
		},
	})
}

// HealthCheck handles GET /api/v1/health
func (h *APIHandlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"status":      "healthy",
			"timestamp":   time.Now().Unix(),
			"version":     h.config.App.Version,
			"ingredients": h.catalog.Len(),
		},
		Message: "Service is healthy",
	})
}

// sessionID parses the {id} route parameter
func (h *APIHandlers) sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		h.writeError(w, r, errors.NewBadRequestError(fmt.Sprintf("Invalid session ID %q", raw)))
		return uuid.Nil, false
	}
	return id, true
}

// decodeAndValidate decodes a JSON body into dst and runs struct validation.
// Writes the error response and returns false on failure.
func (h *APIHandlers) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.writeError(w, r, errors.NewBadRequestError("Invalid JSON body"))
		return false
	}

	if err := h.validate.Struct(dst); err != nil {
		var fieldErrors []errors.ValidationError
		if invalid, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range invalid {
				fieldErrors = append(fieldErrors, errors.ValidationError{
					Field:   fe.Field(),
					Value:   fe.Value(),
					Tag:     fe.Tag(),
					Message: fmt.Sprintf("field %s failed on the %s rule", fe.Field(), fe.Tag()),
				})
			}
		}
		h.writeError(w, r, errors.NewValidationErrors(fieldErrors))
		return false
	}

	return true
}

// writeError maps an error to its HTTP status and response shape
func (h *APIHandlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := errors.Wrap(err, "request failed")
	requestID := chimiddleware.GetReqID(r.Context())

	if appErr.StatusCode() >= http.StatusInternalServerError {
		h.logger.Error("Request failed",
			zap.String("request_id", requestID),
			zap.String("path", r.URL.Path),
			zap.Error(appErr),
		)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode())
	if encodeErr := json.NewEncoder(w).Encode(errors.ToErrorResponse(appErr, requestID)); encodeErr != nil {
		h.logger.Error("Failed to encode error response", zap.Error(encodeErr))
	}
}

// writeJSON writes a JSON response
func (h *APIHandlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode JSON response", zap.Error(err))
	}
}
