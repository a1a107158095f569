package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	variantUC "github.com/khoahotran/profile-studio/internal/application/usecase/variant"
)

type VariantHandler struct {
	variantUseCase *variantUC.VariantUseCase
}

func NewVariantHandler(uc *variantUC.VariantUseCase) *VariantHandler {
	return &VariantHandler{variantUseCase: uc}
}

func (h *VariantHandler) AddVariant(c *gin.Context) {
	sessionID, err := pathUUID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	var req AddVariantRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	v, err := h.variantUseCase.AddVariant(c.Request.Context(), variantUC.AddVariantInput{
		Caller:       CallerFromGinContext(c),
		SessionID:    sessionID,
		VariantLabel: req.VariantLabel,
		Headline:     req.Headline,
		AboutText:    req.AboutText,
		Tone:         req.Tone,
		LengthHint:   req.LengthHint,
		IsFavorite:   req.IsFavorite,
	})
	if err != nil {
		c.Error(err)
		return
	}

	respond(c, http.StatusCreated, gin.H{"variant": ToVariantDTO(v)})
}

func (h *VariantHandler) UpdateVariant(c *gin.Context) {
	sessionID, err := pathUUID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	variantID, err := pathUUID(c, "variantId")
	if err != nil {
		c.Error(err)
		return
	}

	var req UpdateVariantRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	v, err := h.variantUseCase.UpdateVariant(c.Request.Context(), variantUC.UpdateVariantInput{
		Caller:    CallerFromGinContext(c),
		VariantID: variantID,
		SessionID: sessionID,
		Patch:     req.ToPatch(),
	})
	if err != nil {
		c.Error(err)
		return
	}

	respond(c, http.StatusOK, gin.H{"variant": ToVariantDTO(v)})
}

func (h *VariantHandler) ListVariants(c *gin.Context) {
	sessionID, err := pathUUID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	favoritesOnly, err := queryBool(c, "favoritesOnly")
	if err != nil {
		c.Error(err)
		return
	}

	output, err := h.variantUseCase.ListVariants(c.Request.Context(), variantUC.ListVariantsInput{
		Caller:        CallerFromGinContext(c),
		SessionID:     sessionID,
		FavoritesOnly: favoritesOnly,
	})
	if err != nil {
		c.Error(err)
		return
	}

	respond(c, http.StatusOK, gin.H{
		"items": ToVariantDTOs(output.Items),
		"total": output.Total,
	})
}

func (h *VariantHandler) GetVariant(c *gin.Context) {
	sessionID, err := pathUUID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	variantID, err := pathUUID(c, "variantId")
	if err != nil {
		c.Error(err)
		return
	}

	v, err := h.variantUseCase.GetVariant(c.Request.Context(), CallerFromGinContext(c), variantID, sessionID)
	if err != nil {
		c.Error(err)
		return
	}

	respond(c, http.StatusOK, gin.H{"variant": ToVariantDTO(v)})
}
