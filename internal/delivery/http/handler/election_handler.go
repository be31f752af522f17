package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ibasrj23/PilihJagoanMu/internal/delivery/http/middleware"
	"github.com/ibasrj23/PilihJagoanMu/internal/domain/entity"
	"github.com/ibasrj23/PilihJagoanMu/internal/service"
)

type ElectionHandler struct {
	electionService service.ElectionService
	voteService     service.VoteService
}

func NewElectionHandler(es service.ElectionService, vs service.VoteService) *ElectionHandler {
	return &ElectionHandler{electionService: es, voteService: vs}
}

func (h *ElectionHandler) List(c *gin.Context) {
	elections, err := h.electionService.List(c.Request.Context(), c.Query("status"), c.Query("type"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"elections": elections, "total": len(elections)})
}

func (h *ElectionHandler) Get(c *gin.Context) {
	election, err := h.electionService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrElectionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, election)
}

type electionInput struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Type        string `json:"type"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
	IsPublic    *bool  `json:"is_public"`
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t, err = time.Parse("2006-01-02", s)
	}
	return t, err
}

func (h *ElectionHandler) Create(c *gin.Context) {
	var input electionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	startDate, err := parseDate(input.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date (want YYYY-MM-DD or RFC3339)"})
		return
	}
	endDate, err := parseDate(input.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date (want YYYY-MM-DD or RFC3339)"})
		return
	}
	if !endDate.After(startDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be after start_date"})
		return
	}

	userID, _ := middleware.UserID(c)

	isPublic := true
	if input.IsPublic != nil {
		isPublic = *input.IsPublic
	}

	election := &entity.Election{
		Title:       input.Title,
		Description: input.Description,
		Type:        input.Type,
		StartDate:   startDate,
		EndDate:     endDate,
		Status:      entity.ElectionPending,
		IsPublic:    isPublic,
		CreatedBy:   userID,
	}

	if err := h.electionService.Create(c.Request.Context(), election); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Pemilihan berhasil dibuat", "election": election})
}

func (h *ElectionHandler) Update(c *gin.Context) {
	var input electionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	startDate, err := parseDate(input.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date (want YYYY-MM-DD or RFC3339)"})
		return
	}
	endDate, err := parseDate(input.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date (want YYYY-MM-DD or RFC3339)"})
		return
	}

	isPublic := true
	if input.IsPublic != nil {
		isPublic = *input.IsPublic
	}

	election := &entity.Election{
		ID:          c.Param("id"),
		Title:       input.Title,
		Description: input.Description,
		Type:        input.Type,
		StartDate:   startDate,
		EndDate:     endDate,
		IsPublic:    isPublic,
	}
	if err := h.electionService.Update(c.Request.Context(), election); err != nil {
		if errors.Is(err, service.ErrElectionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Pemilihan berhasil diperbarui"})
}

func (h *ElectionHandler) UpdateStatus(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := entity.ElectionStatus(input.Status)
	switch status {
	case entity.ElectionPending, entity.ElectionActive, entity.ElectionCompleted:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	if err := h.electionService.UpdateStatus(c.Request.Context(), c.Param("id"), status); err != nil {
		switch {
		case errors.Is(err, service.ErrElectionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrInvalidStatusTransition):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Status diperbarui"})
}

func (h *ElectionHandler) Delete(c *gin.Context) {
	if err := h.electionService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrElectionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Pemilihan berhasil dihapus"})
}

// Stats handles GET /elections/:id/stats
func (h *ElectionHandler) Stats(c *gin.Context) {
	stats, err := h.voteService.GetStats(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrElectionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// RebuildTallies handles POST /elections/:id/tallies/rebuild
func (h *ElectionHandler) RebuildTallies(c *gin.Context) {
	update, err := h.electionService.RebuildTallies(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrElectionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Tallies rebuilt", "tally": update})
}
