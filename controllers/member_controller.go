// controllers/member_controller.go
package controllers

import (
	"net/http"
	"strconv"

	"librarysystem/app"
	"librarysystem/db"
	"librarysystem/models"

	"github.com/gin-gonic/gin"
)

type MemberController struct{ *Srv }

func NewMemberController(s *Srv) *MemberController { return &MemberController{Srv: s} }

func memberID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid member id"})
		return 0, false
	}
	return uint(id), true
}

type memberInput struct {
	Name    string `json:"name" binding:"required,min=2,max=100"`
	Email   string `json:"email" binding:"required,email,max=150"`
	Phone   string `json:"phone" binding:"required,max=20"`
	Address string `json:"address" binding:"required,max=250"`
	Status  string `json:"status" binding:"omitempty,oneof=Active Suspended"`
}

// GET /api/members
func (mc *MemberController) ListMembers(c *gin.Context) {
	res, err := mc.Repo.ListMembers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/members/:id
func (mc *MemberController) GetMember(c *gin.Context) {
	id, ok := memberID(c)
	if !ok {
		return
	}
	m, err := mc.Repo.FindMemberByID(c.Request.Context(), id)
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// POST /api/members
func (mc *MemberController) CreateMember(c *gin.Context) {
	var in memberInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	m := &models.Member{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Address: in.Address,
		Status:  in.Status,
	}
	if err := mc.Repo.CreateMember(c.Request.Context(), m); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, m)
}

// PUT /api/members/:id
func (mc *MemberController) UpdateMember(c *gin.Context) {
	id, ok := memberID(c)
	if !ok {
		return
	}
	var in memberInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	status := in.Status
	if status == "" {
		status = models.MemberActive
	}
	m, err := mc.Repo.UpdateMember(c.Request.Context(), id, db.UpdateMemberInput{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Address: in.Address,
		Status:  status,
	})
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// DELETE /api/members/:id
func (mc *MemberController) DeleteMember(c *gin.Context) {
	id, ok := memberID(c)
	if !ok {
		return
	}
	if err := mc.Repo.DeleteMember(c.Request.Context(), id); err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}
