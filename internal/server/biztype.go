package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	biztypedomain "github.com/haixin886/recharge-hub-system-sub001/internal/biztype/domain"
)

type createBusinessTypeRequest struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	Carrier   string `json:"carrier"`
	FaceValue int64  `json:"face_value"`
	Price     int64  `json:"price"`
	Active    *bool  `json:"active,omitempty"`
}

type updateBusinessTypeRequest struct {
	Name      *string `json:"name,omitempty"`
	Carrier   *string `json:"carrier,omitempty"`
	FaceValue *int64  `json:"face_value,omitempty"`
	Price     *int64  `json:"price,omitempty"`
	Active    *bool   `json:"active,omitempty"`
}

// @Summary      Create Business Type
// @Description  Add a recharge product to the catalog
// @Tags         business-types
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        request body createBusinessTypeRequest true "Create Business Type Request"
// @Success      200  {object}  biztypedomain.BusinessType
// @Router       /business-types [post]
func (s *Server) CreateBusinessType(c *gin.Context) {
	var req createBusinessTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.biztypeSvc.Create(c.Request.Context(), biztypedomain.CreateRequest{
		Code:      strings.TrimSpace(req.Code),
		Name:      strings.TrimSpace(req.Name),
		Carrier:   strings.TrimSpace(req.Carrier),
		FaceValue: req.FaceValue,
		Price:     req.Price,
		Active:    req.Active,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      List Business Types
// @Description  List the recharge catalog
// @Tags         business-types
// @Produce      json
// @Security     ApiKeyAuth
// @Param        carrier  query  string  false  "Carrier filter"
// @Param        active   query  bool    false  "Active filter"
// @Success      200  {object}  []biztypedomain.BusinessType
// @Router       /business-types [get]
func (s *Server) ListBusinessTypes(c *gin.Context) {
	var query struct {
		Carrier string `form:"carrier"`
		Active  string `form:"active"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	active, err := parseOptionalBool(query.Active)
	if err != nil {
		AbortWithError(c, newValidationError("active", "invalid_active", "invalid active"))
		return
	}

	resp, err := s.biztypeSvc.List(c.Request.Context(), biztypedomain.ListRequest{
		Carrier: strings.TrimSpace(query.Carrier),
		Active:  active,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Get Business Type
// @Description  Get catalog entry by ID
// @Tags         business-types
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id   path      string  true  "Business Type ID"
// @Success      200  {object}  biztypedomain.BusinessType
// @Router       /business-types/{id} [get]
func (s *Server) GetBusinessType(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.biztypeSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Update Business Type
// @Description  Patch catalog entry fields
// @Tags         business-types
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id       path  string                     true  "Business Type ID"
// @Param        request  body  updateBusinessTypeRequest  true  "Update Business Type Request"
// @Success      200  {object}  biztypedomain.BusinessType
// @Router       /business-types/{id} [patch]
func (s *Server) UpdateBusinessType(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req updateBusinessTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.biztypeSvc.Update(c.Request.Context(), id, biztypedomain.UpdateRequest{
		Name:      req.Name,
		Carrier:   req.Carrier,
		FaceValue: req.FaceValue,
		Price:     req.Price,
		Active:    req.Active,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Delete Business Type
// @Description  Remove a catalog entry
// @Tags         business-types
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id   path      string  true  "Business Type ID"
// @Success      200  {object}  map[string]string
// @Router       /business-types/{id} [delete]
func (s *Server) DeleteBusinessType(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.biztypeSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func parseOptionalBool(raw string) (*bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, err
	}
	return &value, nil
}
