package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ibasrj23/PilihJagoanMu/internal/delivery/http/middleware"
	"github.com/ibasrj23/PilihJagoanMu/internal/service"
)

type VoteHandler struct {
	voteService service.VoteService
}

func NewVoteHandler(vs service.VoteService) *VoteHandler {
	return &VoteHandler{voteService: vs}
}

type CastVoteRequest struct {
	ElectionID  string `json:"election_id" binding:"required"`
	CandidateID string `json:"candidate_id" binding:"required"`
}

func (h *VoteHandler) Cast(c *gin.Context) {
	var req CastVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	voterID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	receipt, err := h.voteService.CastVote(c.Request.Context(), voterID, req.ElectionID, req.CandidateID)
	if err != nil {
		status := voteErrorStatus(err)
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Voting berhasil",
		"vote":    receipt,
	})
}

func voteErrorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrElectionNotFound),
		errors.Is(err, service.ErrCandidateNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrCandidateNotInElection):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrAlreadyVoted),
		errors.Is(err, service.ErrElectionNotActive):
		return http.StatusConflict
	case errors.Is(err, service.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Stats handles GET /votes/stats?election_id=...
func (h *VoteHandler) Stats(c *gin.Context) {
	electionID := c.Query("election_id")
	if electionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "election_id query param is required"})
		return
	}

	stats, err := h.voteService.GetStats(c.Request.Context(), electionID)
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

// HasVoted handles GET /votes/has-voted?election_id=...
func (h *VoteHandler) HasVoted(c *gin.Context) {
	electionID := c.Query("election_id")
	if electionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "election_id query param is required"})
		return
	}

	voterID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	voted, err := h.voteService.HasVoted(c.Request.Context(), voterID, electionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"has_voted": voted})
}

// UserVotes handles GET /votes/user-votes
func (h *VoteHandler) UserVotes(c *gin.Context) {
	voterID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	votes, err := h.voteService.VoterVotes(c.Request.Context(), voterID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, votes)
}
