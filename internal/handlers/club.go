package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/vibevent/vibevent-api/internal/dto"
	apierrors "github.com/vibevent/vibevent-api/internal/errors"
	"github.com/vibevent/vibevent-api/internal/middleware"
	"github.com/vibevent/vibevent-api/internal/models"
	"github.com/vibevent/vibevent-api/internal/services"
	"github.com/vibevent/vibevent-api/internal/utils"
)

// ClubHandler serves club accounts, login and the club leaderboard.
type ClubHandler struct {
	clubService *services.ClubService
}

// NewClubHandler creates a new ClubHandler.
func NewClubHandler(clubService *services.ClubService) *ClubHandler {
	return &ClubHandler{
		clubService: clubService,
	}
}

// Signup registers a new club.
func (h *ClubHandler) Signup(c *gin.Context) {
	type SignupRequest struct {
		Name        string `json:"name" binding:"required,max=255"`
		Email       string `json:"email" binding:"required,email"`
		Password    string `json:"password" binding:"required"`
		Description string `json:"description"`
		Picture     string `json:"picture"`
	}

	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	club, err := h.clubService.Signup(services.SignupClubInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Description: req.Description,
		Picture:     req.Picture,
	})
	if err != nil {
		respondClubError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToClubDTO(*club))
}

// Login checks credentials, returns a token and starts a session.
func (h *ClubHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	identifier := req.Email
	if identifier == "" {
		identifier = req.Name
	}
	if identifier == "" {
		apierrors.BadRequest(c, "email or name is required")
		return
	}

	result, err := h.clubService.Authenticate(identifier, req.Password)
	if err != nil {
		respondClubError(c, err)
		return
	}

	if err := middleware.SavePrincipal(c, services.Principal{Kind: models.TargetClub, ID: result.Account.ID}); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, dto.ClubAuthResponse{
		Token: result.Token,
		Club:  dto.ToClubDTO(*result.Account),
	})
}

// Logout removes the authentication session.
func (h *ClubHandler) Logout(c *gin.Context) {
	logout(c)
}

// GetCurrentClub returns the authenticated club.
func (h *ClubHandler) GetCurrentClub(c *gin.Context) {
	clubID, exists := middleware.GetClubID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated as a club")
		return
	}

	club, err := h.clubService.Get(clubID)
	if err != nil {
		respondClubError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToClubDTO(*club))
}

// ListClubs returns clubs filtered by q and paginated.
func (h *ClubHandler) ListClubs(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	clubs, total, err := h.clubService.List(services.ListClubsInput{
		Search:     c.Query("q"),
		Pagination: params,
	})
	if err != nil {
		respondClubError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"clubs":      dto.ToClubDTOs(clubs),
		"pagination": params.Response(total),
	})
}

func (h *ClubHandler) CountClubs(c *gin.Context) {
	count, err := h.clubService.Count()
	if err != nil {
		respondClubError(c, err)
		return
	}
	respondCount(c, count)
}

// TopClubs returns the club leaderboard.
func (h *ClubHandler) TopClubs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	clubs, err := h.clubService.Top(limit)
	if err != nil {
		respondClubError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clubs": dto.ToClubDTOs(clubs)})
}

// ClubExists answers whether a club name or email is taken.
func (h *ClubHandler) ClubExists(c *gin.Context) {
	var (
		exists bool
		err    error
	)
	switch {
	case c.Query("name") != "":
		exists, err = h.clubService.NameExists(c.Query("name"))
	case c.Query("email") != "":
		exists, err = h.clubService.EmailExists(c.Query("email"))
	default:
		apierrors.BadRequest(c, "name or email is required")
		return
	}
	if err != nil {
		respondClubError(c, err)
		return
	}
	respondExists(c, exists)
}

// LookupClub finds a club by email or name.
func (h *ClubHandler) LookupClub(c *gin.Context) {
	identifier := c.Query("identifier")
	if identifier == "" {
		apierrors.BadRequest(c, "identifier is required")
		return
	}

	club, err := h.clubService.GetByIdentifier(identifier)
	if err != nil {
		respondClubError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToClubDTO(*club))
}

func (h *ClubHandler) GetClub(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	club, err := h.clubService.Get(id)
	if err != nil {
		respondClubError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToClubDTO(*club))
}

func (h *ClubHandler) GetClubRank(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	rank, err := h.clubService.Rank(id)
	if err != nil {
		respondClubError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":   id,
		"rank": rank,
	})
}

// UpdateClub merges the non-empty fields of the request.
func (h *ClubHandler) UpdateClub(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	type UpdateRequest struct {
		Name        *string `json:"name"`
		Email       *string `json:"email" binding:"omitempty,email"`
		Password    *string `json:"password"`
		Description *string `json:"description"`
		Picture     *string `json:"picture"`
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	club, err := h.clubService.Update(id, services.UpdateClubInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Description: req.Description,
		Picture:     req.Picture,
	})
	if err != nil {
		respondClubError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToClubDTO(*club))
}

func (h *ClubHandler) UpdateClubPoints(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req pointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	club, err := h.clubService.UpdatePoints(id, *req.Delta)
	if err != nil {
		respondClubError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToClubDTO(*club))
}

// DeleteClub removes the club, its events and everything attached to them.
func (h *ClubHandler) DeleteClub(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.clubService.Delete(id); err != nil {
		respondClubError(c, err)
		return
	}
	respondDeleted(c, "Club deleted successfully")
}

func respondClubError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrClubNameRequired),
		errors.Is(err, services.ErrClubEmailRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrClubExists):
		apierrors.Conflict(c, err.Error())
	default:
		respondCommonError(c, err)
	}
}
