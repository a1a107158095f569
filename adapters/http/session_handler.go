package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	sessionUC "github.com/khoahotran/profile-studio/internal/application/usecase/session"
)

type SessionHandler struct {
	createSessionUseCase *sessionUC.CreateSessionUseCase
	updateSessionUseCase *sessionUC.UpdateSessionUseCase
	listSessionsUseCase  *sessionUC.ListSessionsUseCase
	getSessionUseCase    *sessionUC.GetSessionUseCase
}

func NewSessionHandler(
	createUC *sessionUC.CreateSessionUseCase,
	updateUC *sessionUC.UpdateSessionUseCase,
	listUC *sessionUC.ListSessionsUseCase,
	getUC *sessionUC.GetSessionUseCase,
) *SessionHandler {
	return &SessionHandler{
		createSessionUseCase: createUC,
		updateSessionUseCase: updateUC,
		listSessionsUseCase:  listUC,
		getSessionUseCase:    getUC,
	}
}

func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	output, err := h.createSessionUseCase.Execute(c.Request.Context(), sessionUC.CreateSessionInput{
		Caller:          CallerFromGinContext(c),
		CurrentHeadline: req.CurrentHeadline,
		CurrentAbout:    req.CurrentAbout,
		CurrentTitle:    req.CurrentTitle,
		Industry:        req.Industry,
		Location:        req.Location,
		Goals:           req.Goals,
	})
	if err != nil {
		c.Error(err)
		return
	}

	respond(c, http.StatusCreated, gin.H{"session": ToSessionDTO(output.Session)})
}

func (h *SessionHandler) UpdateSession(c *gin.Context) {
	sessionID, err := pathUUID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	var req UpdateSessionRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	output, err := h.updateSessionUseCase.Execute(c.Request.Context(), sessionUC.UpdateSessionInput{
		Caller:    CallerFromGinContext(c),
		SessionID: sessionID,
		Patch:     req.ToPatch(),
	})
	if err != nil {
		c.Error(err)
		return
	}

	respond(c, http.StatusOK, gin.H{"session": ToSessionDTO(output.Session)})
}

func (h *SessionHandler) ListSessions(c *gin.Context) {
	output, err := h.listSessionsUseCase.Execute(c.Request.Context(), sessionUC.ListSessionsInput{
		Caller: CallerFromGinContext(c),
	})
	if err != nil {
		c.Error(err)
		return
	}

	respond(c, http.StatusOK, gin.H{
		"items": ToSessionDTOs(output.Items),
		"total": output.Total,
	})
}

func (h *SessionHandler) GetSession(c *gin.Context) {
	sessionID, err := pathUUID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	output, err := h.getSessionUseCase.Execute(c.Request.Context(), sessionUC.GetSessionInput{
		Caller:    CallerFromGinContext(c),
		SessionID: sessionID,
	})
	if err != nil {
		c.Error(err)
		return
	}

	respond(c, http.StatusOK, gin.H{"session": ToSessionDTO(output.Session)})
}
