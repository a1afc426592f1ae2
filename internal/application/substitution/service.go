// Package substitution implements the application service that owns
// substitution session lifecycle and view rendering.
package substitution

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/proteinempire/ingredients/internal/domain/ingredient"
	"github.com/proteinempire/ingredients/internal/domain/substitution"
	"github.com/proteinempire/ingredients/internal/ports/inbound"
	"github.com/proteinempire/ingredients/internal/ports/outbound"
	"github.com/proteinempire/ingredients/pkg/errors"
)

// Service implements the SubstitutionService inbound port
type Service struct {
	catalog  *ingredient.Catalog
	sessions outbound.SessionRepository
	logger   *zap.Logger
}

// NewService creates the substitution application service
func NewService(
	catalog *ingredient.Catalog,
	sessions outbound.SessionRepository,
	logger *zap.Logger,
) inbound.SubstitutionService {
	return &Service{
		catalog:  catalog,
		sessions: sessions,
		logger:   logger.Named("substitution-service"),
	}
}

// CreateSession starts a substitution session from a recipe config
func (s *Service) CreateSession(ctx context.Context, cmd inbound.CreateSessionCommand) (*inbound.SessionView, error) {
	lines := make([]substitution.Line, len(cmd.Ingredients))
	for i, in := range cmd.Ingredients {
		lines[i] = substitution.Line{
			ID:            in.ID,
			Name:          in.Name,
			Amount:        in.Amount,
			Unit:          in.Unit,
			DisplayAmount: in.DisplayAmount,
		}
	}

	session := substitution.NewSession(s.catalog, substitution.Config{
		RecipeID:    cmd.RecipeID,
		Yield:       cmd.Yield,
		ServingSize: cmd.ServingSize,
		Ingredients: lines,
		BaseNutrition: substitution.Nutrition{
			Calories: cmd.BaseNutrition.Calories,
			Protein:  cmd.BaseNutrition.Protein,
			Fat:      cmd.BaseNutrition.Fat,
			Carbs:    cmd.BaseNutrition.Carbs,
			Fiber:    cmd.BaseNutrition.Fiber,
			Sugar:    cmd.BaseNutrition.Sugar,
		},
	})

	id := uuid.New()
	if err := s.sessions.Save(ctx, id, session); err != nil {
		return nil, errors.NewStorageError("save session", err)
	}

	s.logger.Info("Session created",
		zap.String("session_id", id.String()),
		zap.String("recipe_id", session.RecipeID()),
		zap.Int("ingredients", len(lines)),
	)

	return s.toView(id, session), nil
}

// GetSession returns the full view of an existing session
func (s *Service) GetSession(ctx context.Context, id uuid.UUID) (*inbound.SessionView, error) {
	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toView(id, session), nil
}

// SelectSubstitute swaps an ingredient line and returns the updated view.
// Swaps that the engine rejects (unknown line or IDs) leave the session
// unchanged; the caller still gets the current view.
func (s *Service) SelectSubstitute(ctx context.Context, id uuid.UUID, originalID, newID string) (*inbound.SessionView, error) {
	return s.mutate(ctx, id, "select substitute", func(session *substitution.Session) {
		session.SelectSubstitute(originalID, newID)
	}, zap.String("original_id", originalID), zap.String("new_id", newID))
}

// RevertIngredient restores a single line to its original ingredient
func (s *Service) RevertIngredient(ctx context.Context, id uuid.UUID, originalID string) (*inbound.SessionView, error) {
	return s.mutate(ctx, id, "revert ingredient", func(session *substitution.Session) {
		session.Revert(originalID)
	}, zap.String("original_id", originalID))
}

// ResetSession reverts every line and closes any open picker
func (s *Service) ResetSession(ctx context.Context, id uuid.UUID) (*inbound.SessionView, error) {
	return s.mutate(ctx, id, "reset session", func(session *substitution.Session) {
		session.ResetAll()
	})
}

// TogglePicker opens or closes the substitute picker for an ingredient
func (s *Service) TogglePicker(ctx context.Context, id uuid.UUID, ingredientID string) (*inbound.SessionView, error) {
	return s.mutate(ctx, id, "toggle picker", func(session *substitution.Session) {
		session.TogglePicker(ingredientID)
	}, zap.String("ingredient_id", ingredientID))
}

// DeleteSession removes a session from the store
func (s *Service) DeleteSession(ctx context.Context, id uuid.UUID) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.sessions.Delete(ctx, id); err != nil {
		return errors.NewStorageError("delete session", err)
	}
	s.logger.Info("Session deleted", zap.String("session_id", id.String()))
	return nil
}

func (s *Service) load(ctx context.Context, id uuid.UUID) (*substitution.Session, error) {
	session, err := s.sessions.Find(ctx, id)
	if err != nil {
		return nil, errors.NewStorageError("find session", err)
	}
	if session == nil {
		return nil, errors.NewSessionNotFoundError(id.String())
	}
	return session, nil
}

func (s *Service) mutate(
	ctx context.Context,
	id uuid.UUID,
	operation string,
	apply func(*substitution.Session),
	fields ...zap.Field,
) (*inbound.SessionView, error) {
	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	apply(session)

	if err := s.sessions.Save(ctx, id, session); err != nil {
		return nil, errors.NewStorageError("save session", err)
	}

	s.logger.Debug("Session updated",
		append([]zap.Field{
			zap.String("session_id", id.String()),
			zap.String("operation", operation),
			zap.Int("substitutions", session.SubstitutionCount()),
		}, fields...)...,
	)

	return s.toView(id, session), nil
}

func (s *Service) toView(id uuid.UUID, session *substitution.Session) *inbound.SessionView {
	lines := session.Ingredients()
	lineViews := make([]inbound.IngredientLineView, len(lines))
	for i, ln := range lines {
		var subs []inbound.SubstituteView
		for _, sub := range s.catalog.Substitutes(ln.OriginalID) {
			subs = append(subs, inbound.SubstituteView{
				ID:            sub.ID,
				Name:          sub.Name,
				SwapNote:      sub.SwapNote,
				IsSpecialSwap: sub.IsSpecialSwap,
			})
		}
		lineViews[i] = inbound.IngredientLineView{
			ID:              ln.ID,
			Name:            session.DisplayName(ln.ID),
			Amount:          ln.Amount,
			FormattedAmount: ln.FormattedAmount(),
			Unit:            ln.Unit,
			DisplayAmount:   ln.DisplayAmount,
			OriginalID:      ln.OriginalID,
			OriginalAmount:  ln.OriginalAmount,
			IsSwapped:       ln.IsSwapped,
			CanSubstitute:   s.catalog.CanSubstitute(ln.OriginalID),
			IsExpanded:      session.IsExpanded(ln.ID) || session.IsExpanded(ln.OriginalID),
			Substitutes:     subs,
		}
	}

	adjustments := session.HydrationAdjustments()
	adjViews := make([]inbound.HydrationAdjustmentView, len(adjustments))
	for i, adj := range adjustments {
		adjViews[i] = inbound.HydrationAdjustmentView{
			Ingredient:         adj.IngredientName,
			OriginalIngredient: adj.OriginalName,
			AdjustmentML:       adj.AdjustmentML,
			Message:            adj.Message,
		}
	}

	dv := session.DailyValuePercents()

	return &inbound.SessionView{
		ID:                 id.String(),
		RecipeID:           session.RecipeID(),
		Yield:              session.Yield(),
		ServingSize:        session.ServingSize(),
		Ingredients:        lineViews,
		ExpandedIngredient: session.ExpandedIngredient(),
		BaseNutrition:      toNutritionView(session.BaseNutrition()),
		CurrentNutrition:   toNutritionView(session.CurrentNutrition()),
		NutritionDeltas:    toDeltaViews(session.NutritionDeltas()),
		BatchDeltas:        toDeltaViews(session.BatchNutritionDeltas()),
		Hydration: inbound.HydrationView{
			Adjustments:   adjViews,
			TotalML:       session.TotalHydrationAdjustment(),
			HasAdjustment: session.HasHydrationAdjustment(),
		},
		DailyValues: inbound.DailyValueView{
			Fat:     dv.Fat,
			Carbs:   dv.Carbs,
			Fiber:   dv.Fiber,
			Protein: dv.Protein,
		},
		ProteinEnergy: inbound.ProteinEnergyView{
			Ratio:  session.ProteinEnergyRatio(),
			Rating: session.ProteinEnergyRating(),
		},
		SubstitutionCount: session.SubstitutionCount(),
		HasSubstitutions:  session.HasSubstitutions(),
	}
}

func toNutritionView(n substitution.Nutrition) inbound.NutritionView {
	return inbound.NutritionView{
		Calories: n.Calories,
		Protein:  n.Protein,
		Fat:      n.Fat,
		Carbs:    n.Carbs,
		Fiber:    n.Fiber,
		Sugar:    n.Sugar,
	}
}

func toDeltaViews(deltas []substitution.NutritionDelta) []inbound.DeltaView {
	views := make([]inbound.DeltaView, len(deltas))
	for i, d := range deltas {
		views[i] = inbound.DeltaView{Name: d.Name, Delta: d.Delta, Formatted: d.Formatted}
	}
	return views
}
