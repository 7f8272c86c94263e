package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) openSplit(c *gin.Context) {
	sid, err := s.splits.Open(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	splitSessionsOpened.Inc()
	c.JSON(http.StatusCreated, gin.H{"session_id": sid})
}

func (s *Server) viewSplit(c *gin.Context) {
	view, err := s.splits.View(c.Param("sid"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *Server) closeSplit(c *gin.Context) {
	if err := s.splits.Close(c.Param("sid")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type participantRequest struct {
	// Name may be blank: the UI adds a row before the name is typed.
	Name string `json:"name"`
}

func (s *Server) addParticipant(c *gin.Context) {
	var req participantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	pid, err := s.splits.AddParticipant(c.Param("sid"), req.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"participant_id": pid})
}

func (s *Server) removeParticipant(c *gin.Context) {
	if err := s.splits.RemoveParticipant(c.Param("sid"), c.Param("pid")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) renameParticipant(c *gin.Context) {
	var req participantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := s.splits.RenameParticipant(c.Param("sid"), c.Param("pid"), req.Name); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type assignmentRequest struct {
	ParticipantID string `json:"participant_id" binding:"required"`
	Item          string `json:"item" binding:"required"`
	Delta         int    `json:"delta" binding:"required"`
}

func (s *Server) assignQuantity(c *gin.Context) {
	var req assignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := s.splits.AssignQuantity(c.Param("sid"), req.ParticipantID, req.Item, req.Delta); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) remainingQuantities(c *gin.Context) {
	view, err := s.splits.View(c.Param("sid"))
	if err != nil {
		writeError(c, err)
		return
	}
	remaining := make(map[string]int, len(view.Items))
	for _, item := range view.Items {
		remaining[item.Name] = item.Remaining
	}
	c.JSON(http.StatusOK, gin.H{"remaining": remaining})
}

func (s *Server) calculateSplit(c *gin.Context) {
	result, err := s.splits.Calculate(c.Param("sid"))
	if err != nil {
		writeError(c, err)
		return
	}
	resp, err := toSplitResultResponse(result)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) editSplit(c *gin.Context) {
	if err := s.splits.Edit(c.Param("sid")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
