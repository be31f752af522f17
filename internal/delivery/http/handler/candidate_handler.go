package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ibasrj23/PilihJagoanMu/internal/delivery/http/middleware"
	"github.com/ibasrj23/PilihJagoanMu/internal/domain/entity"
	"github.com/ibasrj23/PilihJagoanMu/internal/domain/repository"
)

type CandidateHandler struct {
	candidateRepo repository.CandidateRepository
	electionRepo  repository.ElectionRepository
}

func NewCandidateHandler(cr repository.CandidateRepository, er repository.ElectionRepository) *CandidateHandler {
	return &CandidateHandler{candidateRepo: cr, electionRepo: er}
}

// List handles GET /candidates?election_id=...
func (h *CandidateHandler) List(c *gin.Context) {
	electionID := c.Query("election_id")
	if electionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "election_id query param is required"})
		return
	}

	candidates, err := h.candidateRepo.GetByElection(c.Request.Context(), electionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, candidates)
}

func (h *CandidateHandler) Get(c *gin.Context) {
	candidate, err := h.candidateRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if candidate == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Kandidat tidak ditemukan"})
		return
	}
	c.JSON(http.StatusOK, candidate)
}

type candidateInput struct {
	ElectionID    string `json:"election_id" binding:"required"`
	Name          string `json:"name" binding:"required"`
	Position      string `json:"position" binding:"required"`
	Description   string `json:"description"`
	VisionMission string `json:"vision_mission"`
	Experience    string `json:"experience"`
	PhotoURL      string `json:"photo_url"`
}

func (h *CandidateHandler) Create(c *gin.Context) {
	var input candidateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	election, err := h.electionRepo.GetByID(c.Request.Context(), input.ElectionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if election == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pemilihan tidak ditemukan"})
		return
	}

	userID, _ := middleware.UserID(c)

	candidate := &entity.Candidate{
		ID:            uuid.New().String(),
		ElectionID:    input.ElectionID,
		Name:          input.Name,
		Position:      input.Position,
		Description:   input.Description,
		VisionMission: input.VisionMission,
		Experience:    input.Experience,
		PhotoURL:      input.PhotoURL,
		Status:        entity.CandidateActive,
		CreatedBy:     userID,
	}

	if err := h.candidateRepo.Create(c.Request.Context(), candidate); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Kandidat berhasil dibuat", "candidate": candidate})
}

func (h *CandidateHandler) Update(c *gin.Context) {
	existing, err := h.candidateRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Kandidat tidak ditemukan"})
		return
	}

	var input struct {
		Name          string `json:"name"`
		Position      string `json:"position"`
		Description   string `json:"description"`
		VisionMission string `json:"vision_mission"`
		Experience    string `json:"experience"`
		PhotoURL      string `json:"photo_url"`
		Status        string `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Name != "" {
		existing.Name = input.Name
	}
	if input.Position != "" {
		existing.Position = input.Position
	}
	if input.Description != "" {
		existing.Description = input.Description
	}
	if input.VisionMission != "" {
		existing.VisionMission = input.VisionMission
	}
	if input.Experience != "" {
		existing.Experience = input.Experience
	}
	if input.PhotoURL != "" {
		existing.PhotoURL = input.PhotoURL
	}
	if input.Status != "" {
		status := entity.CandidateStatus(input.Status)
		if status != entity.CandidateActive && status != entity.CandidateInactive {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		existing.Status = status
	}

	if err := h.candidateRepo.Update(c.Request.Context(), existing); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Kandidat berhasil diperbarui", "candidate": existing})
}

func (h *CandidateHandler) Delete(c *gin.Context) {
	existing, err := h.candidateRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Kandidat tidak ditemukan"})
		return
	}

	if err := h.candidateRepo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Kandidat berhasil dihapus"})
}
