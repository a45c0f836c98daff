package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	userdomain "github.com/haixin886/recharge-hub-system-sub001/internal/user/domain"
)

type createUserRequest struct {
	Username       string `json:"username"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	Balance        *int64 `json:"balance,omitempty"`
	CommissionRate *int64 `json:"commission_rate,omitempty"`
}

type updateUserRequest struct {
	Email          *string `json:"email,omitempty"`
	Role           *string `json:"role,omitempty"`
	Balance        *int64  `json:"balance,omitempty"`
	CommissionRate *int64  `json:"commission_rate,omitempty"`
	Disabled       *bool   `json:"disabled,omitempty"`
}

// @Summary      Create User
// @Description  Register a storefront account
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        request body createUserRequest true "Create User Request"
// @Success      200  {object}  userdomain.User
// @Router       /users [post]
func (s *Server) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.userSvc.Create(c.Request.Context(), userdomain.CreateRequest{
		Username:       strings.TrimSpace(req.Username),
		Email:          strings.TrimSpace(req.Email),
		Role:           userdomain.Role(strings.TrimSpace(req.Role)),
		Balance:        req.Balance,
		CommissionRate: req.CommissionRate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      List Users
// @Description  List accounts with optional filters
// @Tags         users
// @Produce      json
// @Security     ApiKeyAuth
// @Param        role      query  string  false  "Role filter"
// @Param        username  query  string  false  "Username prefix"
// @Success      200  {object}  userdomain.ListResponse
// @Router       /users [get]
func (s *Server) ListUsers(c *gin.Context) {
	var query struct {
		Role     string `form:"role"`
		Username string `form:"username"`
		Limit    int    `form:"limit"`
		Offset   int    `form:"offset"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.userSvc.List(c.Request.Context(), userdomain.ListRequest{
		Role:     userdomain.Role(strings.TrimSpace(query.Role)),
		Username: strings.TrimSpace(query.Username),
		Limit:    query.Limit,
		Offset:   query.Offset,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Get User
// @Description  Get account by ID
// @Tags         users
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  userdomain.User
// @Router       /users/{id} [get]
func (s *Server) GetUser(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.userSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Update User
// @Description  Patch account fields
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id       path  string             true  "User ID"
// @Param        request  body  updateUserRequest  true  "Update User Request"
// @Success      200  {object}  userdomain.User
// @Router       /users/{id} [patch]
func (s *Server) UpdateUser(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	update := userdomain.UpdateRequest{
		Email:          req.Email,
		Balance:        req.Balance,
		CommissionRate: req.CommissionRate,
		Disabled:       req.Disabled,
	}
	if req.Role != nil {
		role := userdomain.Role(strings.TrimSpace(*req.Role))
		update.Role = &role
	}

	resp, err := s.userSvc.Update(c.Request.Context(), id, update)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Delete User
// @Description  Remove an account
// @Tags         users
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  map[string]string
// @Router       /users/{id} [delete]
func (s *Server) DeleteUser(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.userSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
